package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"swipematch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is everything persisted for one session.
type Snapshot struct {
	Matches  []models.Match
	Messages []models.Message
}

// Storage persists session snapshots. Implementations only need round-trip
// fidelity of matches and messages.
type Storage interface {
	LoadSession(sessionID string) (*Snapshot, error)
	SaveMatches(sessionID string, matches []models.Match) error
	SaveMessages(sessionID string, messages []models.Message) error
	ClearSession(sessionID string) error
}

// Service keeps the latest snapshot of each session in Redis and mirrors
// the rows into PostgreSQL. Either backend may be nil.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Migrate creates the match and message tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Match{}, &models.Message{})
}

func matchesKey(sessionID string) string  { return "session:" + sessionID + ":matches" }
func messagesKey(sessionID string) string { return "session:" + sessionID + ":messages" }

// LoadSession reads the Redis snapshot, falling back to PostgreSQL when the
// cache has no entry for the session. An unknown session is an empty snapshot.
func (s *Service) LoadSession(sessionID string) (*Snapshot, error) {
	snap, found, err := s.loadFromRedis(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("redis load failed, falling back to database")
	}
	if found {
		return snap, nil
	}
	return s.loadFromDB(sessionID)
}

func (s *Service) loadFromRedis(sessionID string) (*Snapshot, bool, error) {
	if s.Redis == nil {
		return nil, false, nil
	}

	snap := &Snapshot{}
	rawMatches, err := s.Redis.Get(s.Ctx, matchesKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(rawMatches, &snap.Matches); err != nil {
		return nil, false, fmt.Errorf("failed to decode matches for %s: %w", sessionID, err)
	}

	rawMessages, err := s.Redis.Get(s.Ctx, messagesKey(sessionID)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, false, err
	}
	if len(rawMessages) > 0 {
		if err := json.Unmarshal(rawMessages, &snap.Messages); err != nil {
			return nil, false, fmt.Errorf("failed to decode messages for %s: %w", sessionID, err)
		}
	}
	return snap, true, nil
}

func (s *Service) loadFromDB(sessionID string) (*Snapshot, error) {
	snap := &Snapshot{}
	if s.DB == nil {
		return snap, nil
	}

	if err := s.DB.Where("session_id = ?", sessionID).Order("matched_at asc, id asc").Find(&snap.Matches).Error; err != nil {
		return nil, fmt.Errorf("failed to load matches for %s: %w", sessionID, err)
	}
	if err := s.DB.Where("session_id = ?", sessionID).Order("created_at asc, id asc").Find(&snap.Messages).Error; err != nil {
		return nil, fmt.Errorf("failed to load messages for %s: %w", sessionID, err)
	}
	return snap, nil
}

// SaveMatches writes the full match list of a session.
func (s *Service) SaveMatches(sessionID string, matches []models.Match) error {
	rows := make([]models.Match, len(matches))
	for i, m := range matches {
		m.SessionID = sessionID
		rows[i] = m
	}
	return errors.Join(
		s.putJSON(matchesKey(sessionID), matches),
		s.upsert(&rows, len(rows)),
	)
}

// SaveMessages writes the full message log of a session.
func (s *Service) SaveMessages(sessionID string, messages []models.Message) error {
	rows := make([]models.Message, len(messages))
	for i, m := range messages {
		m.SessionID = sessionID
		rows[i] = m
	}
	return errors.Join(
		s.putJSON(messagesKey(sessionID), messages),
		s.upsert(&rows, len(rows)),
	)
}

// ClearSession removes every persisted match and message of a session.
func (s *Service) ClearSession(sessionID string) error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Del(s.Ctx, matchesKey(sessionID), messagesKey(sessionID)).Err())
	}
	if s.DB != nil {
		errs = append(errs,
			s.DB.Where("session_id = ?", sessionID).Delete(&models.Message{}).Error,
			s.DB.Where("session_id = ?", sessionID).Delete(&models.Match{}).Error,
		)
	}
	return errors.Join(errs...)
}

func (s *Service) putJSON(key string, v any) error {
	if s.Redis == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, key, data, 0).Err()
}

func (s *Service) upsert(rows any, n int) error {
	if s.DB == nil || n == 0 {
		return nil
	}
	return s.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error
}
