package reservation

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation occupies the half-open interval [StartAt, EndAt) for its
// tenant. Rows are only created through Service.Create, which enforces the
// per-tenant no-overlap invariant.
type Reservation struct {
	ID       uint64 `gorm:"primaryKey"`
	TenantID string `gorm:"index;not null"`

	StartAt time.Time `gorm:"index;not null"`
	EndAt   time.Time `gorm:"index;not null"`
	Status  string    `gorm:"not null;default:'confirmed'"`

	CustomerName string  `gorm:"type:text;not null;default:''"`
	Phone        string  `gorm:"type:text;not null;default:''"`
	Service      string  `gorm:"type:text;not null;default:''"`
	StaffID      *uint64 `gorm:"index"`

	Tags     pq.StringArray  `gorm:"type:text[];not null;default:'{}'"`
	Metadata json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// ServiceAssignment links a reservation to a bookable service definition.
type ServiceAssignment struct {
	ID            uint64    `gorm:"primaryKey"`
	TenantID      string    `gorm:"index;not null"`
	ReservationID uint64    `gorm:"index;not null"`
	ServiceID     uint64    `gorm:"index;not null"`
	CreatedAt     time.Time `gorm:"not null;default:now()"`
}

// AuditLog is a best-effort trail of booking activity.
type AuditLog struct {
	ID        uint64          `gorm:"primaryKey"`
	TenantID  string          `gorm:"index;not null"`
	Action    string          `gorm:"not null"`
	Detail    json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`
	CreatedAt time.Time       `gorm:"not null;default:now()"`
}

const (
	MessagePending = "pending"
	MessageSent    = "sent"
	MessageFailed  = "failed"
)

// Message is an outbound reservation message (e.g. a booking confirmation)
// dispatched through the background job pipeline.
type Message struct {
	ID            uint64  `gorm:"primaryKey"`
	TenantID      string  `gorm:"index;not null"`
	ReservationID *uint64 `gorm:"index"`

	To     string `gorm:"type:text;not null"`
	Body   string `gorm:"type:text;not null"`
	Status string `gorm:"index;not null;default:'pending'"`

	RawResponse string     `gorm:"type:text;not null;default:''"`
	SentAt      *time.Time `gorm:"type:timestamptz"`
	CreatedAt   time.Time  `gorm:"not null;default:now()"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()"`
}
