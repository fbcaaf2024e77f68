package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET,notEmpty"`

	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"2s"`
	JobLeaseTimeout    time.Duration `env:"JOB_LEASE_TIMEOUT" envDefault:"5m"`

	OutboxBatchSize int    `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxSchedule  string `env:"OUTBOX_SCHEDULE" envDefault:"@every 30s"`

	ReminderSweepLimit int           `env:"REMINDER_SWEEP_LIMIT" envDefault:"50"`
	ReminderSendPace   time.Duration `env:"REMINDER_SEND_PACE" envDefault:"150ms"`

	// Optional webhook for outbound notifications. When empty, sends are
	// logged instead of delivered.
	NotifyWebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
