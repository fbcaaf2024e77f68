package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookd/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errUnresolvable = errors.New("reminder has no destination or message")

// reservationRow is a read-only projection of the reservations table, enough
// to derive a default reminder without importing the reservation package.
type reservationRow struct {
	ID           uint64    `gorm:"column:id"`
	TenantID     string    `gorm:"column:tenant_id"`
	StartAt      time.Time `gorm:"column:start_at"`
	CustomerName string    `gorm:"column:customer_name"`
	Phone        string    `gorm:"column:phone"`
}

func (reservationRow) TableName() string { return "reservations" }

type Sweeper struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Log      *zap.Logger

	// Pace is the pause between consecutive sends within one sweep, a
	// self-imposed limit so the channel is not hammered.
	Pace time.Duration
	// Limit is the default batch size when a caller passes none.
	Limit int
}

type SweepResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Retried   int `json:"retried"`
	Failed    int `json:"failed"`
}

type delivery struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// DefaultMessage is the text used when a reminder carries no explicit one.
func DefaultMessage(startAt time.Time) string {
	return fmt.Sprintf("Reminder: your booking is scheduled for %s", startAt.Format("Mon, 02 Jan 2006 15:04 MST"))
}

// resolveDelivery fills destination and message from the raw payload first,
// then from the linked reservation. Missing data is unrecoverable: no number
// of retries manufactures a phone number.
func resolveDelivery(raw json.RawMessage, res *reservationRow) (delivery, error) {
	var d delivery
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &d)
	}
	if d.To != "" && d.Message != "" {
		return d, nil
	}
	if res != nil {
		if d.To == "" {
			d.To = res.Phone
		}
		if d.Message == "" {
			d.Message = DefaultMessage(res.StartAt)
		}
	}
	if d.To == "" || d.Message == "" {
		return delivery{}, errUnresolvable
	}
	return d, nil
}

// nextState decides a reminder's status after one send attempt.
func nextState(attempts int, ok bool) (status string, newAttempts int) {
	if ok {
		return StatusSent, attempts
	}
	newAttempts = attempts + 1
	if newAttempts >= MaxAttempts {
		return StatusFailed, newAttempts
	}
	return StatusPending, newAttempts
}

// SweepDue delivers pending reminders whose remind_at has passed, oldest
// first, optionally scoped to one tenant.
func (s *Sweeper) SweepDue(ctx context.Context, limit int, tenantID string) (SweepResult, error) {
	if limit <= 0 {
		limit = s.Limit
	}
	if limit <= 0 {
		limit = 50
	}

	q := s.DB.WithContext(ctx).
		Where("status = ? and remind_at <= now()", StatusPending).
		Order("remind_at asc").
		Limit(limit)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	var due []Reminder
	if err := q.Find(&due).Error; err != nil {
		return SweepResult{}, err
	}

	var res SweepResult
	for i := range due {
		if i > 0 && s.Pace > 0 {
			time.Sleep(s.Pace)
		}
		res.Processed++
		switch s.process(ctx, &due[i]) {
		case StatusSent:
			res.Sent++
		case StatusFailed:
			res.Failed++
		default:
			res.Retried++
		}
	}
	return res, nil
}

// process attempts one delivery and returns the reminder's new status.
func (s *Sweeper) process(ctx context.Context, r *Reminder) string {
	d, err := s.resolve(ctx, r)
	if err != nil {
		s.Log.Warn("reminder unresolvable, failing",
			zap.Uint64("reminder_id", r.ID), zap.Error(err))
		s.update(ctx, r.ID, map[string]any{
			"status":       StatusFailed,
			"raw_response": err.Error(),
			"updated_at":   time.Now(),
		})
		return StatusFailed
	}

	ok, response := s.Notifier.Send(ctx, r.TenantID, d.To, d.Message)
	status, attempts := nextState(r.Attempts, ok)

	updates := map[string]any{
		"status":       status,
		"attempts":     attempts,
		"raw_response": response,
		"updated_at":   time.Now(),
	}
	if status == StatusSent {
		updates["sent_at"] = time.Now()
	}
	s.update(ctx, r.ID, updates)

	if status == StatusFailed {
		s.Log.Warn("reminder exhausted attempts",
			zap.Uint64("reminder_id", r.ID), zap.Int("attempts", attempts))
	}
	return status
}

func (s *Sweeper) resolve(ctx context.Context, r *Reminder) (delivery, error) {
	var res *reservationRow
	if r.ReservationID != nil {
		var row reservationRow
		err := s.DB.WithContext(ctx).
			Where("id = ? and tenant_id = ?", *r.ReservationID, r.TenantID).
			First(&row).Error
		switch {
		case err == nil:
			res = &row
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fall through; raw payload may still resolve
		default:
			return delivery{}, err
		}
	}
	return resolveDelivery(r.Raw, res)
}

func (s *Sweeper) update(ctx context.Context, id uint64, updates map[string]any) {
	if err := s.DB.WithContext(ctx).Model(&Reminder{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.Log.Error("reminder update failed", zap.Uint64("reminder_id", id), zap.Error(err))
	}
}

// sweepParams is the payload shape of a process_reminders job.
type sweepParams struct {
	Limit    int    `json:"limit"`
	TenantID string `json:"tenant_id"`
}

// Handle lets the sweeper run as a background job handler.
func (s *Sweeper) Handle(ctx context.Context, payload json.RawMessage) error {
	var p sweepParams
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("bad sweep payload: %w", err)
		}
	}
	res, err := s.SweepDue(ctx, p.Limit, p.TenantID)
	if err != nil {
		return err
	}
	if res.Processed > 0 {
		s.Log.Info("reminder sweep done",
			zap.Int("processed", res.Processed), zap.Int("sent", res.Sent),
			zap.Int("retried", res.Retried), zap.Int("failed", res.Failed))
	}
	return nil
}
