// Package session owns the per-user discovery and matching state. A Session
// is the only writer of its registry and message store; callers reach them
// through its methods, never directly.
package session

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"swipematch/backend/internal/config"
	"swipematch/backend/internal/discovery"
	"swipematch/backend/internal/matching"
	"swipematch/backend/internal/metrics"
	"swipematch/backend/internal/models"
	"swipematch/backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCriteria = errors.New("invalid filter criteria")
	ErrInvalidDecision = errors.New("invalid decision kind")
)

var validate = validator.New()

// DefaultCriteria is the preference set of a fresh session.
func DefaultCriteria() models.FilterCriteria {
	return models.FilterCriteria{
		AgeMin:      config.DefaultAgeMin,
		AgeMax:      config.DefaultAgeMax,
		MaxDistance: config.DefaultMaxDistance,
	}
}

// ValidateCriteria checks the structural rules of a preference set.
func ValidateCriteria(c models.FilterCriteria) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	return nil
}

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Policy   discovery.Policy
	Storage  storage.Storage
	Clock    matching.Clock
	Criteria *models.FilterCriteria
}

// DecisionResult describes a decision taken on a candidate.
type DecisionResult struct {
	Candidate models.Profile
	Kind      models.DecisionKind
	Outcome   discovery.Outcome
	// Match is set when the outcome formed a match.
	Match *models.Match
}

// Session serializes every operation with a mutex, so each call runs to
// completion before the next one starts.
type Session struct {
	mu sync.Mutex

	id       string
	criteria models.FilterCriteria
	queue    *discovery.Queue
	policy   discovery.Policy
	registry *matching.Registry
	messages *matching.MessageStore
	store    storage.Storage

	// pending is the decision held between StartDecision and Settle/Cancel.
	pending *DecisionResult
}

// New builds a session over pool and loads its persisted matches and
// messages. A load failure is logged and the session starts empty.
func New(id string, pool []models.Profile, opts Options) (*Session, error) {
	criteria := DefaultCriteria()
	if opts.Criteria != nil {
		if err := ValidateCriteria(*opts.Criteria); err != nil {
			return nil, err
		}
		criteria = *opts.Criteria
	}

	policy := opts.Policy
	if policy == nil {
		p, err := discovery.NewProbabilityPolicy(nil, config.LikeMatchProbability, config.SuperLikeMatchProbability)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	registry := matching.NewRegistry(opts.Clock)
	s := &Session{
		id:       id,
		criteria: cloneCriteria(criteria),
		queue:    discovery.NewQueue(pool, criteria),
		policy:   policy,
		registry: registry,
		messages: matching.NewMessageStore(registry, opts.Clock),
		store:    opts.Storage,
	}
	s.load()
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Criteria returns the preference set the queue was last reset with.
func (s *Session) Criteria() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCriteria(s.criteria)
}

// UpdateCriteria validates c, stores it, and rebuilds the candidate queue.
func (s *Session) UpdateCriteria(c models.FilterCriteria) error {
	if err := ValidateCriteria(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = cloneCriteria(c)
	s.pending = nil
	s.queue.Reset(c)
	return nil
}

// StartOver rewinds the queue under the current criteria.
func (s *Session) StartOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.queue.Reset(s.criteria)
}

// Current returns the candidate awaiting a decision; ok is false once the
// queue is exhausted.
func (s *Session) Current() (profile models.Profile, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

// Remaining is the number of candidates not yet decided on.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Remaining()
}

// Decide takes a decision on the current candidate and settles it.
func (s *Session) Decide(kind models.DecisionKind) (DecisionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startDecision(kind); err != nil {
		return DecisionResult{}, err
	}
	res, _ := s.settle()
	return res, nil
}

// StartDecision holds a decision on the current candidate. The outcome is
// drawn, but no match is recorded and the queue stays deciding until Settle
// or Cancel; any decision started before then fails with
// discovery.ErrDecisionInProgress.
func (s *Session) StartDecision(kind models.DecisionKind) (DecisionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startDecision(kind); err != nil {
		return DecisionResult{}, err
	}
	return *s.pending, nil
}

// Settle commits the held decision, forming its match if any, and moves to
// the next candidate. ok is false when no decision was held.
func (s *Session) Settle() (res DecisionResult, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settle()
}

// Cancel drops the held decision; the candidate stays current and no match
// is formed. It reports false when no decision was held.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	s.pending = nil
	s.queue.Cancel()
	return true
}

func (s *Session) startDecision(kind models.DecisionKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, kind)
	}

	candidate, err := s.queue.BeginDecision()
	if err != nil {
		return err
	}

	s.pending = &DecisionResult{
		Candidate: candidate,
		Kind:      kind,
		Outcome:   s.policy.Decide(kind),
	}
	return nil
}

func (s *Session) settle() (DecisionResult, bool) {
	if s.pending == nil || !s.queue.Advance() {
		return DecisionResult{}, false
	}
	res := *s.pending
	s.pending = nil
	metrics.ObserveDecision(string(res.Kind), res.Outcome.IsMatch)

	if res.Outcome.IsMatch {
		m := s.registry.AddMatch(res.Candidate, res.Kind == models.DecisionSuperLike)
		res.Match = &m
		log.Info().
			Str("session", s.id).
			Str("match", m.ID).
			Str("profile", res.Candidate.ID).
			Str("kind", string(res.Kind)).
			Msg("match formed")
		s.persistMatches()
	}
	return res, true
}

// Matches lists the session's matches, oldest first.
func (s *Session) Matches() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List()
}

// FindMatch looks up a match; a miss is not an error.
func (s *Session) FindMatch(id string) (models.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Find(id)
}

// ClearMatches drops every match and message of the session, in memory and
// in storage.
func (s *Session) ClearMatches() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages.Clear()
	s.registry.Clear()
	if s.store == nil {
		return
	}
	if err := s.store.ClearSession(s.id); err != nil {
		s.persistFailed("clear", err)
	}
}

// Send appends a message to a match's thread. It fails with
// matching.ErrUnknownMatch for ids this session never issued.
func (s *Session) Send(matchID, body string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.messages.Send(matchID, body)
	if err != nil {
		return msg, err
	}
	metrics.MessagesSentTotal.Inc()
	s.persistMessages()
	s.persistMatches()
	return msg, nil
}

// Messages returns the thread of a match, oldest first.
func (s *Session) Messages(matchID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.MessagesFor(matchID)
}

// MarkRead marks a thread read; unknown ids are ignored.
func (s *Session) MarkRead(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Has(matchID) {
		return
	}
	s.messages.MarkRead(matchID)
	s.persistMessages()
	s.persistMatches()
}

func (s *Session) load() {
	if s.store == nil {
		return
	}
	snap, err := s.store.LoadSession(s.id)
	if err != nil {
		s.persistFailed("load", err)
		return
	}
	s.registry.Restore(snap.Matches)
	s.messages.Restore(snap.Messages)
}

func (s *Session) persistMatches() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveMatches(s.id, s.registry.List()); err != nil {
		s.persistFailed("save_matches", err)
	}
}

func (s *Session) persistMessages() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveMessages(s.id, s.messages.All()); err != nil {
		s.persistFailed("save_messages", err)
	}
}

// persistFailed logs a storage error; it is never surfaced to the caller.
func (s *Session) persistFailed(op string, err error) {
	metrics.PersistenceFailuresTotal.WithLabelValues(op).Inc()
	log.Warn().Err(err).Str("session", s.id).Str("op", op).Msg("persistence failed")
}

func cloneCriteria(c models.FilterCriteria) models.FilterCriteria {
	c.AcceptedGenders = slices.Clone(c.AcceptedGenders)
	return c
}
