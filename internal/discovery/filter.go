// Package discovery decides which candidates a user sees and in what order,
// and turns swipe decisions into match outcomes.
package discovery

import (
	"slices"
	"strconv"
	"strings"

	"swipematch/backend/internal/models"
)

// ParseDistance derives a distance from a location descriptor such as
// "10 miles away". It reads the leading integer of the first field.
// Anything unparseable, or negative, resolves to 0.
func ParseDistance(location string) int {
	fields := strings.Fields(location)
	if len(fields) == 0 {
		return 0
	}

	first := fields[0]
	end := 0
	for end < len(first) && first[end] >= '0' && first[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	d, err := strconv.Atoi(first[:end])
	if err != nil {
		// overflow
		return 0
	}
	return d
}

// Matches reports whether profile is visible under criteria: age within the
// inclusive range, distance within the limit, and gender accepted (an empty
// accepted set accepts everyone).
func Matches(profile models.Profile, criteria models.FilterCriteria) bool {
	if profile.Age < criteria.AgeMin || profile.Age > criteria.AgeMax {
		return false
	}
	if ParseDistance(profile.Location) > criteria.MaxDistance {
		return false
	}
	if len(criteria.AcceptedGenders) > 0 && !slices.Contains(criteria.AcceptedGenders, profile.Gender) {
		return false
	}
	return true
}

// Filter returns the profiles of pool that match criteria, in pool order.
func Filter(pool []models.Profile, criteria models.FilterCriteria) []models.Profile {
	out := make([]models.Profile, 0, len(pool))
	for _, p := range pool {
		if Matches(p, criteria) {
			out = append(out, p)
		}
	}
	return out
}
