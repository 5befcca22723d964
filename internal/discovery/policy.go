package discovery

import (
	"fmt"
	"math/rand/v2"

	"swipematch/backend/internal/models"
)

// Outcome is the result of a decision.
type Outcome struct {
	IsMatch bool
}

// Policy turns a decision into an outcome. It is the extension point for a
// real mutual-interest computation; the queue and the registry never look
// past it.
type Policy interface {
	Decide(kind models.DecisionKind) Outcome
}

// Rand is a uniform source of draws in [0,1).
type Rand interface {
	Float64() float64
}

// ProbabilityPolicy matches with a fixed probability per decision kind.
type ProbabilityPolicy struct {
	rnd   Rand
	table map[models.DecisionKind]float64
}

// NewProbabilityPolicy builds a policy with the given like/superlike
// probabilities. A nil rnd uses the math/rand/v2 global source.
func NewProbabilityPolicy(rnd Rand, like, superLike float64) (*ProbabilityPolicy, error) {
	for _, p := range []float64{like, superLike} {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("match probability %v outside [0,1]", p)
		}
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	return &ProbabilityPolicy{
		rnd: rnd,
		table: map[models.DecisionKind]float64{
			models.DecisionPass:      0,
			models.DecisionLike:      like,
			models.DecisionSuperLike: superLike,
		},
	}, nil
}

// Decide draws once for like/superlike; pass never draws and never matches.
func (p *ProbabilityPolicy) Decide(kind models.DecisionKind) Outcome {
	if kind == models.DecisionPass {
		return Outcome{}
	}

	threshold, ok := p.table[kind]
	if !ok || threshold == 0 {
		return Outcome{}
	}
	return Outcome{IsMatch: p.rnd.Float64() < threshold}
}

// Probability returns the configured match probability for kind.
func (p *ProbabilityPolicy) Probability(kind models.DecisionKind) float64 {
	return p.table[kind]
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
