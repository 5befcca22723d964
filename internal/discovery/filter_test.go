package discovery_test

import (
	"testing"

	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseDistance(t *testing.T) {
	tests := []struct {
		location string
		want     int
	}{
		{"10 miles away", 10},
		{"5 miles away", 5},
		{"0 miles away", 0},
		{"12km", 12},
		{"7.5 miles", 7},
		{"  3 miles", 3},
		{"", 0},
		{"nearby", 0},
		{"-5 miles away", 0},
		{"miles 10", 0},
		{"99999999999999999999999 miles", 0},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, discovery.ParseDistance(tt.location))
		})
	}
}

func TestMatches_AgeBoundaries(t *testing.T) {
	criteria := models.FilterCriteria{AgeMin: 18, AgeMax: 65, MaxDistance: 100}

	tests := []struct {
		age  int
		want bool
	}{
		{17, false},
		{18, true},
		{40, true},
		{65, true},
		{66, false},
	}

	for _, tt := range tests {
		p := models.Profile{Age: tt.age, Location: "1 miles away"}
		assert.Equal(t, tt.want, discovery.Matches(p, criteria), "age %d", tt.age)
	}
}

func TestMatches_DistanceThreshold(t *testing.T) {
	criteria := models.FilterCriteria{AgeMin: 18, AgeMax: 65, MaxDistance: 10}

	assert.True(t, discovery.Matches(models.Profile{Age: 30, Location: "10 miles away"}, criteria), "exact threshold is visible")
	assert.False(t, discovery.Matches(models.Profile{Age: 30, Location: "11 miles away"}, criteria))
	assert.True(t, discovery.Matches(models.Profile{Age: 30, Location: "somewhere"}, criteria), "malformed location fails open to 0")

	zero := models.FilterCriteria{AgeMin: 18, AgeMax: 65, MaxDistance: 0}
	assert.True(t, discovery.Matches(models.Profile{Age: 30, Location: "0 miles away"}, zero))
	assert.False(t, discovery.Matches(models.Profile{Age: 30, Location: "1 miles away"}, zero))
}

func TestMatches_Gender(t *testing.T) {
	p := models.Profile{Age: 30, Location: "1 miles away", Gender: "female"}

	tests := []struct {
		name     string
		accepted []string
		want     bool
	}{
		{"nil set accepts all", nil, true},
		{"empty set accepts all", []string{}, true},
		{"member", []string{"male", "female"}, true},
		{"not a member", []string{"male"}, false},
		{"case sensitive", []string{"Female"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.FilterCriteria{AgeMin: 18, AgeMax: 65, MaxDistance: 10, AcceptedGenders: tt.accepted}
			assert.Equal(t, tt.want, discovery.Matches(p, c))
		})
	}
}

// TestFilter_Scenario keeps the 28/10mi and 26/8mi profiles in pool order.
func TestFilter_Scenario(t *testing.T) {
	pool := []models.Profile{
		{ID: "1", Age: 28, Location: "10 miles away"},
		{ID: "2", Age: 32, Location: "5 miles away"},
		{ID: "3", Age: 26, Location: "8 miles away"},
	}
	criteria := models.FilterCriteria{AgeMin: 18, AgeMax: 30, MaxDistance: 10, AcceptedGenders: []string{}}

	got := discovery.Filter(pool, criteria)

	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Len(t, pool, 3, "pool must not be modified")
}
