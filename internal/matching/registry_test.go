package matching_test

import (
	"fmt"
	"testing"
	"time"

	"swipematch/backend/internal/matching"
	"swipematch/backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock advancing by one second per call.
func stepClock() matching.Clock {
	t := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func sarah() models.Profile {
	return models.Profile{
		ID:     "1",
		Name:   "Sarah",
		Age:    28,
		Bio:    "Adventure seeker",
		Photos: pq.StringArray{"https://picsum.photos/400/600?random=1"},
	}
}

func TestRegistry_AddMatchAppendsInOrder(t *testing.T) {
	r := matching.NewRegistry(stepClock())

	const n = 5
	ids := make(map[string]bool)
	for i := 0; i < n; i++ {
		p := sarah()
		p.ID = fmt.Sprintf("p%d", i)
		m := r.AddMatch(p, false)
		ids[m.ID] = true
	}

	list := r.List()
	require.Len(t, list, n)
	assert.Len(t, ids, n, "identifiers must be distinct")
	for i, m := range list {
		assert.Equal(t, fmt.Sprintf("p%d", i), m.ProfileID)
		if i > 0 {
			assert.True(t, m.MatchedAt.After(list[i-1].MatchedAt))
		}
	}
}

func TestRegistry_AddMatchSnapshotsProfile(t *testing.T) {
	r := matching.NewRegistry(nil)
	p := sarah()

	m := r.AddMatch(p, true)
	p.Photos[0] = "changed"

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Sarah", m.Name)
	assert.Equal(t, 28, m.Age)
	assert.Equal(t, "Adventure seeker", m.Bio)
	assert.True(t, m.SuperLike)
	assert.Empty(t, m.LastMessage)
	assert.Zero(t, m.UnreadCount)

	found, ok := r.Find(m.ID)
	require.True(t, ok)
	assert.Equal(t, "https://picsum.photos/400/600?random=1", found.Photos[0])
}

// TestRegistry_NoDeduplication documents that repeated matches with one profile stay distinct.
func TestRegistry_NoDeduplication(t *testing.T) {
	r := matching.NewRegistry(nil)

	a := r.AddMatch(sarah(), false)
	b := r.AddMatch(sarah(), false)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_FindUnknown(t *testing.T) {
	r := matching.NewRegistry(nil)

	_, ok := r.Find("stale-link")

	assert.False(t, ok)
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	r := matching.NewRegistry(nil)
	m := r.AddMatch(sarah(), false)

	list := r.List()
	list[0].Name = "Mallory"
	list[0].Photos[0] = "mutated"

	found, _ := r.Find(m.ID)
	assert.Equal(t, "Sarah", found.Name)
	assert.Equal(t, "https://picsum.photos/400/600?random=1", found.Photos[0])
}

func TestRegistry_UpdateSummary(t *testing.T) {
	r := matching.NewRegistry(nil)
	m := r.AddMatch(sarah(), false)

	r.UpdateSummary(m.ID, "hello", 2)
	found, _ := r.Find(m.ID)
	assert.Equal(t, "hello", found.LastMessage)
	assert.Equal(t, 2, found.UnreadCount)

	r.UpdateSummary(m.ID, "again", -5)
	found, _ = r.Find(m.ID)
	assert.Equal(t, "again", found.LastMessage)
	assert.Equal(t, 0, found.UnreadCount, "unread never drops below zero")

	r.ResetUnread(m.ID)
	r.UpdateSummary("unknown", "ignored", 1)
	r.ResetUnread("unknown")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ClearAndRestore(t *testing.T) {
	r := matching.NewRegistry(nil)
	a := r.AddMatch(sarah(), false)
	b := r.AddMatch(sarah(), true)
	saved := r.List()

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Has(a.ID))

	r.Restore(append(saved, models.Match{}, saved[0]))

	list := r.List()
	require.Len(t, list, 2, "empty and repeated ids are skipped")
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.True(t, r.Has(b.ID))
}
