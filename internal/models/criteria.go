package models

// FilterCriteria is the caller's preference set. It is read-only to the
// discovery package; an empty AcceptedGenders means "no preference".
type FilterCriteria struct {
	AgeMin          int      `json:"age_min" validate:"gte=18"`
	AgeMax          int      `json:"age_max" validate:"gtefield=AgeMin"`
	MaxDistance     int      `json:"max_distance" validate:"gte=0"`
	AcceptedGenders []string `json:"accepted_genders"`
}
