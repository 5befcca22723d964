package models

// DecisionKind is the action a user takes on the current candidate.
type DecisionKind string

const (
	DecisionPass      DecisionKind = "pass"
	DecisionLike      DecisionKind = "like"
	DecisionSuperLike DecisionKind = "superlike"
)

// IsValid reports whether k is one of the known decision kinds.
func (k DecisionKind) IsValid() bool {
	switch k {
	case DecisionPass, DecisionLike, DecisionSuperLike:
		return true
	default:
		return false
	}
}
