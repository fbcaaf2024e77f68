package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is written by domain logic inside its own transaction and
// drained into the public events table by the Dispatcher. Delivered rows are
// kept for audit.
type OutboxEvent struct {
	ID          uint64          `gorm:"primaryKey"`
	Type        string          `gorm:"not null"`
	TenantID    string          `gorm:"index;not null"`
	LocationID  *string         `gorm:"type:text"`
	Payload     json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`
	CreatedAt   time.Time       `gorm:"index;not null;default:now()"`
	DeliveredAt *time.Time      `gorm:"type:timestamptz"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }

// Event is the public record consumers read. Delivery is at-least-once;
// consumers dedupe on ID.
type Event struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Event      string          `gorm:"index;not null"`
	Version    int             `gorm:"not null;default:1"`
	TenantID   string          `gorm:"index;not null"`
	LocationID *string         `gorm:"type:text"`
	Payload    json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (Event) TableName() string { return "events" }
