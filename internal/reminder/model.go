package reminder

import (
	"encoding/json"
	"time"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// MaxAttempts caps delivery attempts per reminder; the ceiling is terminal.
const MaxAttempts = 3

type Reminder struct {
	ID            uint64  `gorm:"primaryKey"`
	TenantID      string  `gorm:"index;not null"`
	ReservationID *uint64 `gorm:"index"`

	RemindAt time.Time `gorm:"index;not null"`
	Method   string    `gorm:"not null;default:'notification'"`
	Status   string    `gorm:"index;not null;default:'pending'"`
	Attempts int       `gorm:"not null;default:0"`

	// Raw optionally carries an explicit destination/message; when absent
	// both are derived from the linked reservation.
	Raw         json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`
	RawResponse string          `gorm:"type:text;not null;default:''"`

	SentAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"not null;default:now()"`
	UpdatedAt time.Time  `gorm:"not null;default:now()"`
}
