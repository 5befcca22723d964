package discovery_test

import (
	"testing"

	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRand is a testify mock of discovery.Rand.
type MockRand struct {
	mock.Mock
}

func (m *MockRand) Float64() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

// fixedRand always returns the same draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestProbabilityPolicy_PassNeverDraws(t *testing.T) {
	rnd := new(MockRand)
	policy, err := discovery.NewProbabilityPolicy(rnd, 0.5, 0.8)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		assert.False(t, policy.Decide(models.DecisionPass).IsMatch)
	}

	rnd.AssertNotCalled(t, "Float64")
}

// TestProbabilityPolicy_PassIgnoresDraw holds for any draw, even with certain-match probabilities.
func TestProbabilityPolicy_PassIgnoresDraw(t *testing.T) {
	for _, draw := range []float64{0, 0.1, 0.5, 0.999} {
		policy, err := discovery.NewProbabilityPolicy(fixedRand(draw), 1, 1)
		require.NoError(t, err)
		assert.False(t, policy.Decide(models.DecisionPass).IsMatch, "draw %v", draw)
	}
}

func TestProbabilityPolicy_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		kind models.DecisionKind
		draw float64
		want bool
	}{
		{"like below threshold", models.DecisionLike, 0.49, true},
		{"like at threshold", models.DecisionLike, 0.5, false},
		{"like above threshold", models.DecisionLike, 0.9, false},
		{"superlike below threshold", models.DecisionSuperLike, 0.79, true},
		{"superlike at threshold", models.DecisionSuperLike, 0.8, false},
		{"superlike zero draw", models.DecisionSuperLike, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := new(MockRand)
			rnd.On("Float64").Return(tt.draw).Once()
			policy, err := discovery.NewProbabilityPolicy(rnd, 0.5, 0.8)
			require.NoError(t, err)

			assert.Equal(t, tt.want, policy.Decide(tt.kind).IsMatch)
			rnd.AssertExpectations(t)
		})
	}
}

func TestProbabilityPolicy_UnknownKindNeverMatches(t *testing.T) {
	rnd := new(MockRand)
	policy, err := discovery.NewProbabilityPolicy(rnd, 1, 1)
	require.NoError(t, err)

	assert.False(t, policy.Decide("maybe").IsMatch)
	rnd.AssertNotCalled(t, "Float64")
}

func TestNewProbabilityPolicy_RejectsOutOfRange(t *testing.T) {
	_, err := discovery.NewProbabilityPolicy(nil, 1.2, 0.8)
	assert.Error(t, err)

	_, err = discovery.NewProbabilityPolicy(nil, 0.5, -0.1)
	assert.Error(t, err)
}

func TestProbabilityPolicy_DefaultSourceRoughRate(t *testing.T) {
	policy, err := discovery.NewProbabilityPolicy(nil, 0.5, 0.8)
	require.NoError(t, err)
	assert.Equal(t, 0.8, policy.Probability(models.DecisionSuperLike))

	matches := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if policy.Decide(models.DecisionSuperLike).IsMatch {
			matches++
		}
	}
	assert.InDelta(t, 0.8, float64(matches)/n, 0.05)
}
