package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Match is a registry entry formed when a decision's outcome is mutual.
// Name, Age, Bio and Photos are copied from the profile at match time.
type Match struct {
	// ID is a UUIDv7, so lexical order follows creation order.
	ID string `gorm:"primaryKey" json:"id"`
	// SessionID scopes the row to the session that owns the registry.
	SessionID string `gorm:"type:text;not null;index:idx_session_match" json:"-"`
	ProfileID string `gorm:"type:text;not null" json:"profile_id"`

	Name   string         `json:"name"`
	Age    int            `json:"age"`
	Bio    string         `gorm:"type:text" json:"bio"`
	Photos pq.StringArray `gorm:"type:text[]" json:"photos"`

	MatchedAt   time.Time `gorm:"index:idx_session_match" json:"matched_at"`
	LastMessage string    `gorm:"type:text" json:"last_message,omitempty"`
	UnreadCount int       `json:"unread_count,omitempty"`
	SuperLike   bool      `json:"super_like,omitempty"`
}

// BeforeCreate fills in a time-ordered ID for rows written without one.
func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID, err = NewID()
	}
	return
}

// NewID returns a fresh UUIDv7 string.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
