package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookd/internal/jobs"
	"bookd/internal/outbox"
	"bookd/internal/reminder"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrConflict     = errors.New("slot unavailable")
	ErrInvalidInput = errors.New("invalid reservation input")
)

// Reminder lead times derived for every new reservation.
const (
	longLead  = 24 * time.Hour
	shortLead = 2 * time.Hour
)

type Service struct {
	DB  *gorm.DB
	Log *zap.Logger
}

type CreateInput struct {
	TenantID string
	StartAt  time.Time
	EndAt    time.Time

	CustomerName string
	Phone        string
	Service      string
	ServiceID    *uint64
	StaffID      *uint64
	Status       string
	Tags         []string
	Metadata     json.RawMessage
}

func (in *CreateInput) validate() error {
	if in.TenantID == "" || in.StartAt.IsZero() || in.EndAt.IsZero() {
		return ErrInvalidInput
	}
	if !in.StartAt.Before(in.EndAt) {
		return ErrInvalidInput
	}
	return nil
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. The SQL conflict check mirrors this predicate.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Create checks the per-tenant no-overlap invariant and inserts the
// reservation inside one serializable transaction, so the check and the
// insert cannot interleave with a concurrent creation. Derived side-writes
// (audit, reminders, service assignment, confirmation message) are
// best-effort: the reservation is the primary durable fact.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Reservation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = StatusConfirmed
	}
	meta := in.Metadata
	if len(meta) == 0 {
		meta = json.RawMessage(`{}`)
	}

	res := &Reservation{
		TenantID:     in.TenantID,
		StartAt:      in.StartAt,
		EndAt:        in.EndAt,
		Status:       status,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Service:      in.Service,
		StaffID:      in.StaffID,
		Tags:         in.Tags,
		Metadata:     meta,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Reservation
		err := tx.
			Where("tenant_id = ? and start_at < ? and end_at > ?", in.TenantID, in.EndAt, in.StartAt).
			First(&existing).Error
		switch {
		case err == nil:
			return fmt.Errorf("%w: overlaps reservation %d", ErrConflict, existing.ID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Create(res).Error; err != nil {
			return err
		}

		return outbox.Append(tx, "booking.created", in.TenantID, nil, map[string]any{
			"reservation_id": res.ID,
			"start_at":       res.StartAt.Format(time.RFC3339),
			"end_at":         res.EndAt.Format(time.RFC3339),
			"status":         res.Status,
		})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, res)
	s.deriveReminders(ctx, res)
	s.attachService(ctx, res, in.ServiceID)
	s.queueConfirmation(ctx, res)

	return res, nil
}

func (s *Service) writeAudit(ctx context.Context, res *Reservation) {
	detail, _ := json.Marshal(map[string]any{
		"reservation_id": res.ID,
		"start_at":       res.StartAt.Format(time.RFC3339),
		"end_at":         res.EndAt.Format(time.RFC3339),
	})
	entry := AuditLog{TenantID: res.TenantID, Action: "reservation.created", Detail: detail}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		s.Log.Warn("audit write failed", zap.Uint64("reservation_id", res.ID), zap.Error(err))
	}
}

// ReminderTimes returns the derived lead times for a reservation start.
func ReminderTimes(startAt time.Time) (long, short time.Time) {
	return startAt.Add(-longLead), startAt.Add(-shortLead)
}

func (s *Service) deriveReminders(ctx context.Context, res *Reservation) {
	long, short := ReminderTimes(res.StartAt)
	for _, at := range []time.Time{long, short} {
		r := reminder.Reminder{
			TenantID:      res.TenantID,
			ReservationID: &res.ID,
			RemindAt:      at,
			Method:        "notification",
			Status:        reminder.StatusPending,
			Raw:           json.RawMessage(`{}`),
		}
		if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
			s.Log.Warn("reminder derivation failed",
				zap.Uint64("reservation_id", res.ID), zap.Time("remind_at", at), zap.Error(err))
		}
	}
}

func (s *Service) attachService(ctx context.Context, res *Reservation, serviceID *uint64) {
	if serviceID == nil {
		return
	}
	assoc := ServiceAssignment{TenantID: res.TenantID, ReservationID: res.ID, ServiceID: *serviceID}
	if err := s.DB.WithContext(ctx).Create(&assoc).Error; err != nil {
		s.Log.Warn("service attach failed", zap.Uint64("reservation_id", res.ID), zap.Error(err))
	}
}

// queueConfirmation stages a confirmation message and a job to dispatch it.
// Skipped when the reservation carries no destination.
func (s *Service) queueConfirmation(ctx context.Context, res *Reservation) {
	if res.Phone == "" {
		return
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		msg := Message{
			TenantID:      res.TenantID,
			ReservationID: &res.ID,
			To:            res.Phone,
			Body:          fmt.Sprintf("Your booking on %s is confirmed", res.StartAt.Format("Mon, 02 Jan 2006 15:04 MST")),
			Status:        MessagePending,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		payload, _ := json.Marshal(map[string]any{"message_id": msg.ID})
		j := jobs.Job{
			Status:      jobs.StatusPending,
			Payload:     payload,
			ScheduledAt: time.Now(),
		}
		return tx.Create(&j).Error
	})
	if err != nil {
		s.Log.Warn("confirmation enqueue failed", zap.Uint64("reservation_id", res.ID), zap.Error(err))
	}
}

func (s *Service) Get(ctx context.Context, tenantID string, id uint64) (*Reservation, error) {
	var res Reservation
	err := s.DB.WithContext(ctx).
		Where("id = ? and tenant_id = ?", id, tenantID).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

func (s *Service) List(ctx context.Context, tenantID string, f ListFilter) ([]Reservation, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.DB.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if f.From != nil {
		q = q.Where("end_at > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_at < ?", *f.To)
	}
	var rows []Reservation
	err := q.Order("start_at asc").Limit(limit).Find(&rows).Error
	return rows, err
}
