// Package matching holds the per-session match registry and the message
// threads attached to its entries.
package matching

import (
	"slices"
	"time"

	"swipematch/backend/internal/models"

	"github.com/google/uuid"
)

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

// Registry is the ordered collection of matches formed in a session.
// Insertion order is chronological and is the canonical display order.
//
// Registry is not safe for concurrent use; the owning session serializes
// access.
type Registry struct {
	matches []models.Match
	index   map[string]int
	now     Clock
}

// NewRegistry returns an empty registry. A nil clock uses time.Now.
func NewRegistry(now Clock) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		index: make(map[string]int),
		now:   now,
	}
}

// AddMatch appends a match snapshotting profile. It never fails and never
// de-duplicates: matching the same profile twice yields two entries.
func (r *Registry) AddMatch(profile models.Profile, superLike bool) models.Match {
	m := models.Match{
		ID:        newID(),
		ProfileID: profile.ID,
		Name:      profile.Name,
		Age:       profile.Age,
		Bio:       profile.Bio,
		Photos:    slices.Clone(profile.Photos),
		MatchedAt: r.now(),
		SuperLike: superLike,
	}

	r.index[m.ID] = len(r.matches)
	r.matches = append(r.matches, m)
	return m
}

// List returns a copy of all matches in insertion order.
func (r *Registry) List() []models.Match {
	out := make([]models.Match, len(r.matches))
	for i, m := range r.matches {
		out[i] = m
		out[i].Photos = slices.Clone(m.Photos)
	}
	return out
}

// Find looks a match up by id. A miss is an ordinary outcome.
func (r *Registry) Find(id string) (models.Match, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.Match{}, false
	}
	m := r.matches[i]
	m.Photos = slices.Clone(m.Photos)
	return m, true
}

// Has reports whether id is a known match.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Len is the number of matches.
func (r *Registry) Len() int { return len(r.matches) }

// UpdateSummary records text as the last message and adds unreadDelta to
// the unread counter (never below zero). Unknown ids are ignored.
func (r *Registry) UpdateSummary(id, text string, unreadDelta int) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	m := &r.matches[i]
	m.LastMessage = text
	m.UnreadCount = max(m.UnreadCount+unreadDelta, 0)
}

// ResetUnread zeroes the unread counter. Unknown ids are ignored.
func (r *Registry) ResetUnread(id string) {
	if i, ok := r.index[id]; ok {
		r.matches[i].UnreadCount = 0
	}
}

// Clear drops every match.
func (r *Registry) Clear() {
	r.matches = nil
	r.index = make(map[string]int)
}

// Restore replaces the registry contents with a persisted snapshot, kept in
// the given order. Entries with an empty or repeated id are skipped.
func (r *Registry) Restore(matches []models.Match) {
	r.Clear()
	for _, m := range matches {
		if m.ID == "" {
			continue
		}
		if _, dup := r.index[m.ID]; dup {
			continue
		}
		r.index[m.ID] = len(r.matches)
		r.matches = append(r.matches, m)
	}
}

func newID() string {
	id, err := models.NewID()
	if err != nil {
		return uuid.NewString()
	}
	return id
}
