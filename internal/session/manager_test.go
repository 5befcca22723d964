package session_test

import (
	"sync"
	"testing"

	"swipematch/backend/internal/models"
	"swipematch/backend/internal/session"
	"swipematch/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetReturnsSameSession(t *testing.T) {
	mgr := session.NewManager(testPool(), &fixedPolicy{}, storage.NewMemory(), nil)

	a, err := mgr.Get("alice")
	require.NoError(t, err)
	b, err := mgr.Get("alice")
	require.NoError(t, err)
	c, err := mgr.Get("bob")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, mgr.Len())
	assert.Equal(t, "alice", a.ID())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	mgr := session.NewManager(testPool(), &fixedPolicy{match: true}, storage.NewMemory(), nil)
	alice, _ := mgr.Get("alice")
	bob, _ := mgr.Get("bob")

	_, err := alice.Decide(models.DecisionLike)
	require.NoError(t, err)

	assert.Len(t, alice.Matches(), 1)
	assert.Empty(t, bob.Matches())
	p, _ := bob.Current()
	assert.Equal(t, "1", p.ID)
}

// TestSession_ConcurrentDecisionsNeverSkip fires decisions from many goroutines at one session.
func TestSession_ConcurrentDecisionsNeverSkip(t *testing.T) {
	pool := make([]models.Profile, 50)
	for i := range pool {
		pool[i] = models.Profile{ID: string(rune('A' + i)), Name: "P", Age: 30, Location: "1 miles away"}
	}
	mgr := session.NewManager(pool, &fixedPolicy{match: true}, nil, nil)
	s, err := mgr.Get("alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Decide(models.DecisionLike)
		}()
	}
	wg.Wait()

	matches := s.Matches()
	require.Len(t, matches, 50)
	seen := make(map[string]bool)
	for _, m := range matches {
		seen[m.ProfileID] = true
	}
	assert.Len(t, seen, 50, "every candidate decided exactly once")
	assert.Equal(t, 0, s.Remaining())
}
