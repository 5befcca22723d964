package session_test

import (
	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) LoadSession(sessionID string) (*storage.Snapshot, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Snapshot), args.Error(1)
}

func (m *MockStorage) SaveMatches(sessionID string, matches []models.Match) error {
	args := m.Called(sessionID, matches)
	return args.Error(0)
}

func (m *MockStorage) SaveMessages(sessionID string, messages []models.Message) error {
	args := m.Called(sessionID, messages)
	return args.Error(0)
}

func (m *MockStorage) ClearSession(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

// fixedPolicy returns the same outcome for every non-pass decision.
type fixedPolicy struct {
	match bool
}

func (p *fixedPolicy) Decide(kind models.DecisionKind) discovery.Outcome {
	if kind == models.DecisionPass {
		return discovery.Outcome{}
	}
	return discovery.Outcome{IsMatch: p.match}
}
