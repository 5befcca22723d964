package models

import (
	"time"

	"gorm.io/gorm"
)

// SelfSenderID marks a message authored by the session's own user.
// Counterpart-authored messages are never produced by this backend.
const SelfSenderID = "current-user"

// Message is one entry in a match's thread. Only Read ever changes after
// creation, and only from false to true.
type Message struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:text;not null;index:idx_session_thread" json:"-"`
	MatchID   string    `gorm:"type:text;not null;index:idx_session_thread" json:"match_id"`
	SenderID  string    `gorm:"type:text;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_session_thread" json:"created_at"`
	Read      bool      `json:"read"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID, err = NewID()
	}
	return
}
