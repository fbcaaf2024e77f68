package jobs

import (
	"encoding/json"
	"time"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is a durable unit of background work. Completed and failed rows are
// kept for observability; recurring jobs cycle pending->processing->pending
// on the same row forever.
type Job struct {
	ID     uint64 `gorm:"primaryKey"`
	Status string `gorm:"index;not null;default:'pending'"`

	// Payload may carry a job_type discriminant, a message_id, and an
	// optional _recurring block (see Recurring).
	Payload json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	ScheduledAt time.Time `gorm:"index;not null"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   *string   `gorm:"type:text"`

	RunCount  int        `gorm:"not null;default:0"`
	LastRunAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
