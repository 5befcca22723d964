package discovery

import (
	"errors"

	"swipematch/backend/internal/models"
)

var (
	// ErrDecisionInProgress is returned when a decision starts before the
	// previous one settled.
	ErrDecisionInProgress = errors.New("decision already in progress")
	// ErrExhausted means there is no candidate at the cursor.
	ErrExhausted = errors.New("no more candidates")
)

// State is the decision state of a Queue.
type State int

const (
	// StateIdle accepts a new decision.
	StateIdle State = iota
	// StateDeciding holds a decision until Advance or Cancel.
	StateDeciding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDeciding:
		return "deciding"
	default:
		return "unknown"
	}
}

// Queue is an ordered, filtered view over the candidate pool with a cursor.
// The cursor only moves through BeginDecision followed by Advance, so a
// duplicated decision can never skip a candidate.
//
// Queue is not safe for concurrent use; its owner serializes access.
type Queue struct {
	pool       []models.Profile
	candidates []models.Profile
	cursor     int
	state      State
}

// NewQueue builds a queue over pool filtered by criteria. The pool slice is
// never modified.
func NewQueue(pool []models.Profile, criteria models.FilterCriteria) *Queue {
	q := &Queue{pool: pool}
	q.Reset(criteria)
	return q
}

// Reset recomputes the candidate list under criteria, rewinds the cursor to
// 0 and drops any in-flight decision.
func (q *Queue) Reset(criteria models.FilterCriteria) {
	q.candidates = Filter(q.pool, criteria)
	q.cursor = 0
	q.state = StateIdle
}

// Current returns the candidate at the cursor. ok is false when exhausted.
func (q *Queue) Current() (profile models.Profile, ok bool) {
	if q.cursor >= len(q.candidates) {
		return models.Profile{}, false
	}
	return q.candidates[q.cursor], true
}

// BeginDecision moves idle -> deciding and returns the candidate being
// decided on.
func (q *Queue) BeginDecision() (models.Profile, error) {
	if q.state == StateDeciding {
		return models.Profile{}, ErrDecisionInProgress
	}
	p, ok := q.Current()
	if !ok {
		return models.Profile{}, ErrExhausted
	}
	q.state = StateDeciding
	return p, nil
}

// Advance moves the cursor by exactly one and returns to idle. Outside a
// decision it does nothing and returns false.
func (q *Queue) Advance() bool {
	if q.state != StateDeciding {
		return false
	}
	q.cursor++
	q.state = StateIdle
	return true
}

// Cancel abandons the in-flight decision without moving the cursor.
func (q *Queue) Cancel() {
	q.state = StateIdle
}

// State reports whether a decision is in flight.
func (q *Queue) State() State { return q.state }

// Position is the zero-based cursor.
func (q *Queue) Position() int { return q.cursor }

// Len is the number of candidates that passed the filter.
func (q *Queue) Len() int { return len(q.candidates) }

// Remaining is the number of candidates at or after the cursor.
func (q *Queue) Remaining() int {
	if q.cursor >= len(q.candidates) {
		return 0
	}
	return len(q.candidates) - q.cursor
}
