package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process-level configuration read from the environment.
type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	// Storage selects the persistence backend: "redis" (Redis + PostgreSQL) or "memory".
	Storage string

	LikeProbability      float64
	SuperLikeProbability float64

	SeedFile string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file loaded, using process environment")
	}

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=swipematchdb port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Storage:     getEnv("STORAGE", "redis"),
		SeedFile:    getEnv("SEED_FILE", ""),
		TokenTTL:    72 * time.Hour,
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.LikeProbability, err = getProbability("LIKE_MATCH_PROBABILITY", LikeMatchProbability); err != nil {
		return nil, err
	}
	if cfg.SuperLikeProbability, err = getProbability("SUPERLIKE_MATCH_PROBABILITY", SuperLikeMatchProbability); err != nil {
		return nil, err
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if cfg.TokenTTL, err = time.ParseDuration(ttl); err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.Storage != "redis" && cfg.Storage != "memory" {
		return nil, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getProbability(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("%s must be within [0,1], got %v", key, p)
	}
	return p, nil
}
