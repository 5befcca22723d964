package models

import "github.com/lib/pq"

// DatingIntent describes what a profile is looking for.
type DatingIntent string

const (
	IntentSerious  DatingIntent = "serious"
	IntentMarriage DatingIntent = "marriage"
)

// Profile is a candidate shown in discovery. The engine never mutates it;
// it is source data for filtering and for the snapshot copied into a Match.
type Profile struct {
	ID           string         `json:"id" yaml:"id" validate:"required"`
	Name         string         `json:"name" yaml:"name" validate:"required"`
	Age          int            `json:"age" yaml:"age" validate:"gte=18"`
	Bio          string         `json:"bio" yaml:"bio"`
	Location     string         `json:"location" yaml:"location"` // e.g. "10 miles away"
	Gender       string         `json:"gender" yaml:"gender"`
	Interests    pq.StringArray `json:"interests" yaml:"interests"`
	DatingIntent DatingIntent   `json:"dating_intent" yaml:"dating_intent" validate:"oneof=serious marriage"`
	Photos       pq.StringArray `json:"photos" yaml:"photos"`
}
