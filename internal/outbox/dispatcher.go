package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dispatcher drains undelivered outbox rows into the public events table.
// Delivery is at-least-once: a crash between the event insert and the
// delivered_at update replays the row on the next batch, and consumers
// dedupe on the event id.
type Dispatcher struct {
	DB        *gorm.DB
	BatchSize int
	Log       *zap.Logger
}

type Result struct {
	Dispatched int
	Failed     int
}

// newEvent maps an outbox row onto its public event record.
func newEvent(row *OutboxEvent, now time.Time) *Event {
	return &Event{
		ID:         uuid.New(),
		Event:      row.Type,
		Version:    1,
		TenantID:   row.TenantID,
		LocationID: row.LocationID,
		Payload:    row.Payload,
		CreatedAt:  now,
	}
}

// DispatchBatch publishes up to BatchSize undelivered rows in created_at
// order. Rows fail independently; a bad row never aborts the batch.
func (d *Dispatcher) DispatchBatch(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	limit := d.BatchSize
	if limit <= 0 {
		limit = 100
	}

	var rows []OutboxEvent
	err := d.DB.WithContext(ctx).
		Where("delivered_at is null").
		Order("created_at asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range rows {
		if err := d.dispatchOne(ctx, &rows[i]); err != nil {
			res.Failed++
			failedTotal.Inc()
			d.Log.Warn("outbox row not delivered",
				zap.Uint64("outbox_id", rows[i].ID), zap.String("type", rows[i].Type), zap.Error(err))
			continue
		}
		res.Dispatched++
		dispatchedTotal.Inc()
	}

	if len(rows) > 0 {
		d.Log.Info("outbox batch done",
			zap.Int("dispatched", res.Dispatched), zap.Int("failed", res.Failed),
			zap.Duration("took", time.Since(start)))
	}
	return res, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, row *OutboxEvent) error {
	now := time.Now()
	ev := newEvent(row, now)

	// delivered_at is only set after the event insert is known to have
	// succeeded. The reverse order would risk dropping events.
	if err := d.DB.WithContext(ctx).Create(ev).Error; err != nil {
		return err
	}
	return d.DB.WithContext(ctx).Model(&OutboxEvent{}).
		Where("id = ?", row.ID).
		Update("delivered_at", now).Error
}
