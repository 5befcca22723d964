package session

import (
	"sync"

	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/matching"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// Manager creates sessions on first use and keeps them for the life of the
// process. All sessions share the candidate pool, the policy and the storage.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	pool   []models.Profile
	policy discovery.Policy
	store  storage.Storage
	clock  matching.Clock
}

// NewManager builds a manager. policy must be safe for concurrent use
// across sessions.
func NewManager(pool []models.Profile, policy discovery.Policy, store storage.Storage, clock matching.Clock) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		pool:     pool,
		policy:   policy,
		store:    store,
		clock:    clock,
	}
}

// Get returns the session for id, creating and loading it if needed.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	s, err := New(id, m.pool, Options{Policy: m.policy, Storage: m.store, Clock: m.clock})
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	log.Info().Str("session", id).Int("matches", s.registry.Len()).Msg("session started")
	return s, nil
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
