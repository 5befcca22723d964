// Package metrics holds the Prometheus collectors for discovery, matching
// and persistence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal counts swipe decisions by kind and outcome
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipematch_decisions_total",
		Help: "Total swipe decisions by kind and outcome",
	}, []string{"kind", "outcome"})

	MatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swipematch_matches_total",
		Help: "Total matches formed",
	})

	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swipematch_messages_sent_total",
		Help: "Total messages sent",
	})

	// PersistenceFailuresTotal counts swallowed storage errors by operation
	PersistenceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipematch_persistence_failures_total",
		Help: "Total best-effort persistence failures by operation",
	}, []string{"op"})
)

// ObserveDecision records one decision and its outcome.
func ObserveDecision(kind string, isMatch bool) {
	outcome := "no_match"
	if isMatch {
		outcome = "match"
		MatchesTotal.Inc()
	}
	DecisionsTotal.WithLabelValues(kind, outcome).Inc()
}
