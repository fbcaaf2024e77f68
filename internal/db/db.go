package db

import (
	"fmt"

	"bookd/internal/auth"
	"bookd/internal/jobs"
	"bookd/internal/outbox"
	"bookd/internal/reminder"
	"bookd/internal/reservation"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.Account{},
		&jobs.Job{},
		&outbox.OutboxEvent{},
		&outbox.Event{},
		&reservation.Reservation{},
		&reservation.ServiceAssignment{},
		&reservation.AuditLog{},
		&reservation.Message{},
		&reminder.Reminder{},
	); err != nil {
		return err
	}

	// Claim scans hit (status, scheduled_at); the dispatcher only ever reads
	// undelivered outbox rows, so that index is partial.
	stmts := []string{
		`create index if not exists idx_jobs_due on jobs(status, scheduled_at);`,
		`create index if not exists idx_outbox_undelivered on outbox_events(created_at) where delivered_at is null;`,
		`create index if not exists idx_reservations_window on reservations(tenant_id, start_at, end_at);`,
		`create index if not exists idx_reservations_tags on reservations using gin (tags);`,
		`create index if not exists idx_reminders_due on reminders(status, remind_at);`,
		`create index if not exists idx_messages_pending on messages(status) where status = 'pending';`,
		`create index if not exists idx_events_tenant_created on events(tenant_id, created_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
