package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookd_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.WorkerPollInterval != 2*time.Second {
		t.Errorf("WorkerPollInterval = %v, want 2s", cfg.WorkerPollInterval)
	}
	if cfg.JobLeaseTimeout != 5*time.Minute {
		t.Errorf("JobLeaseTimeout = %v, want 5m", cfg.JobLeaseTimeout)
	}
	if cfg.OutboxBatchSize != 100 {
		t.Errorf("OutboxBatchSize = %d, want 100", cfg.OutboxBatchSize)
	}
	if cfg.OutboxSchedule != "@every 30s" {
		t.Errorf("OutboxSchedule = %q", cfg.OutboxSchedule)
	}
	if cfg.ReminderSweepLimit != 50 {
		t.Errorf("ReminderSweepLimit = %d, want 50", cfg.ReminderSweepLimit)
	}
	if cfg.ReminderSendPace != 150*time.Millisecond {
		t.Errorf("ReminderSendPace = %v, want 150ms", cfg.ReminderSendPace)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bookd_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("WORKER_POLL_INTERVAL", "500ms")
	t.Setenv("OUTBOX_BATCH_SIZE", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.WorkerPollInterval != 500*time.Millisecond {
		t.Errorf("WorkerPollInterval = %v, want 500ms", cfg.WorkerPollInterval)
	}
	if cfg.OutboxBatchSize != 25 {
		t.Errorf("OutboxBatchSize = %d, want 25", cfg.OutboxBatchSize)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want 2 entries", cfg.CORSAllowedOrigins)
	}
}
