package matching

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"swipematch/backend/internal/models"
)

var (
	// ErrUnknownMatch is returned by Send for an id the registry never issued.
	ErrUnknownMatch = errors.New("unknown match")
	// ErrEmptyMessage is returned by Send for a blank body.
	ErrEmptyMessage = errors.New("message body is empty")
)

// MessageStore keeps one ordered thread per match. Messages are only ever
// appended and flipped to read; nothing is edited or deleted.
//
// MessageStore is not safe for concurrent use.
type MessageStore struct {
	registry *Registry
	threads  map[string][]models.Message
	order    []string // message ids in global send order, for All
	now      Clock
}

// NewMessageStore returns a store validating match ids against registry.
func NewMessageStore(registry *Registry, now Clock) *MessageStore {
	if now == nil {
		now = time.Now
	}
	return &MessageStore{
		registry: registry,
		threads:  make(map[string][]models.Message),
		now:      now,
	}
}

// Send appends a self-authored, unread message to the thread of matchID and
// records it as the match's last message. The sender's own unread counter
// does not change.
func (s *MessageStore) Send(matchID, body string) (models.Message, error) {
	if !s.registry.Has(matchID) {
		return models.Message{}, fmt.Errorf("send to %s: %w", matchID, ErrUnknownMatch)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Message{}, ErrEmptyMessage
	}

	thread := s.threads[matchID]
	createdAt := s.now()
	// keep the thread strictly ordered even if the clock stalls or steps back
	if n := len(thread); n > 0 && !createdAt.After(thread[n-1].CreatedAt) {
		createdAt = thread[n-1].CreatedAt.Add(time.Nanosecond)
	}

	msg := models.Message{
		ID:        newID(),
		MatchID:   matchID,
		SenderID:  models.SelfSenderID,
		Content:   body,
		CreatedAt: createdAt,
	}
	s.threads[matchID] = append(thread, msg)
	s.order = append(s.order, msg.ID)

	s.registry.UpdateSummary(matchID, body, 0)
	return msg, nil
}

// MessagesFor returns a copy of the thread, oldest first. A match with no
// messages, or an unknown id, yields an empty slice.
func (s *MessageStore) MessagesFor(matchID string) []models.Message {
	thread := s.threads[matchID]
	out := make([]models.Message, len(thread))
	copy(out, thread)
	return out
}

// MarkRead marks every message of matchID as read and zeroes the match's
// unread counter. Unknown ids are ignored; repeating the call is harmless.
func (s *MessageStore) MarkRead(matchID string) {
	if !s.registry.Has(matchID) {
		return
	}
	thread := s.threads[matchID]
	for i := range thread {
		thread[i].Read = true
	}
	s.registry.ResetUnread(matchID)
}

// UnreadCount is the number of unread messages in the thread.
func (s *MessageStore) UnreadCount(matchID string) int {
	n := 0
	for _, m := range s.threads[matchID] {
		if !m.Read {
			n++
		}
	}
	return n
}

// All returns every message across threads in send order.
func (s *MessageStore) All() []models.Message {
	byID := make(map[string]models.Message, len(s.order))
	for _, thread := range s.threads {
		for _, m := range thread {
			byID[m.ID] = m
		}
	}
	out := make([]models.Message, 0, len(s.order))
	for _, id := range s.order {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Clear drops every thread. It is used together with Registry.Clear.
func (s *MessageStore) Clear() {
	s.threads = make(map[string][]models.Message)
	s.order = nil
}

// Restore replaces the store contents with persisted messages. Messages of
// matches unknown to the registry are dropped; threads are ordered by
// creation time.
func (s *MessageStore) Restore(messages []models.Message) {
	s.Clear()
	seen := make(map[string]bool, len(messages))
	for _, m := range messages {
		if m.ID == "" || seen[m.ID] || !s.registry.Has(m.MatchID) {
			continue
		}
		seen[m.ID] = true
		s.threads[m.MatchID] = append(s.threads[m.MatchID], m)
		s.order = append(s.order, m.ID)
	}
	for id, thread := range s.threads {
		slices.SortStableFunc(thread, func(a, b models.Message) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		s.threads[id] = thread
	}
}
