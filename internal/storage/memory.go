package storage

import (
	"slices"
	"sync"

	"swipematch/backend/internal/models"
)

// Memory is an in-process Storage used in development mode and tests.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*Snapshot
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*Snapshot)}
}

func (m *Memory) LoadSession(sessionID string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.sessions[sessionID]
	if !ok {
		return &Snapshot{}, nil
	}
	return &Snapshot{
		Matches:  cloneMatches(snap.Matches),
		Messages: slices.Clone(snap.Messages),
	}, nil
}

func (m *Memory) SaveMatches(sessionID string, matches []models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(sessionID).Matches = cloneMatches(matches)
	return nil
}

func (m *Memory) SaveMessages(sessionID string, messages []models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(sessionID).Messages = slices.Clone(messages)
	return nil
}

func (m *Memory) ClearSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *Memory) entry(sessionID string) *Snapshot {
	snap, ok := m.sessions[sessionID]
	if !ok {
		snap = &Snapshot{}
		m.sessions[sessionID] = snap
	}
	return snap
}

func cloneMatches(in []models.Match) []models.Match {
	out := slices.Clone(in)
	for i := range out {
		out[i].Photos = slices.Clone(out[i].Photos)
	}
	return out
}
