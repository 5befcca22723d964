// Package seed provides the static candidate pool.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"swipematch/backend/internal/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

type file struct {
	Profiles []models.Profile `yaml:"profiles"`
}

// Default returns the embedded seed pool.
func Default() ([]models.Profile, error) {
	return Parse(defaultProfiles)
}

// LoadFile reads a pool from a YAML file with the same layout as the
// embedded one. An empty path returns the default pool.
func LoadFile(path string) ([]models.Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML pool. Profile ids must be unique.
func Parse(data []byte) ([]models.Profile, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed profiles: %w", err)
	}

	validate := validator.New()
	seen := make(map[string]bool, len(f.Profiles))
	for i, p := range f.Profiles {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("seed profile %d (%s): %w", i, p.ID, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("seed profile %d: duplicate id %s", i, p.ID)
		}
		seen[p.ID] = true
	}
	return f.Profiles, nil
}
