package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookd/internal/auth"
	"bookd/internal/config"
	"bookd/internal/db"
	httpx "bookd/internal/http"
	"bookd/internal/jobs"
	"bookd/internal/notify"
	"bookd/internal/outbox"
	"bookd/internal/reminder"
	"bookd/internal/reservation"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	var notifier notify.Notifier
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhook(cfg.NotifyWebhookURL)
	} else {
		notifier = &notify.LogOnly{Log: logger.Named("notify")}
	}

	sweeper := &reminder.Sweeper{
		DB:       gdb,
		Notifier: notifier,
		Log:      logger.Named("reminder"),
		Pace:     cfg.ReminderSendPace,
		Limit:    cfg.ReminderSweepLimit,
	}
	msgDispatcher := &reservation.MessageDispatcher{
		DB:       gdb,
		Notifier: notifier,
		Log:      logger.Named("message"),
	}

	registry := jobs.NewRegistry()
	registry.Register("process_reminders", sweeper)
	registry.Register("emit_event", &outbox.EmitHandler{DB: gdb})
	registry.RegisterMessage(msgDispatcher)

	jobRepo := &jobs.Repo{DB: gdb, LeaseTimeout: cfg.JobLeaseTimeout}
	worker := &jobs.Worker{
		ID:       "worker-1",
		Repo:     jobRepo,
		Registry: registry,
		Poll:     cfg.WorkerPollInterval,
		Log:      logger.Named("worker"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	// The outbox dispatcher runs on its own schedule, independent of the
	// job worker.
	dispatcher := &outbox.Dispatcher{DB: gdb, BatchSize: cfg.OutboxBatchSize, Log: logger.Named("outbox")}
	c := cron.New()
	if _, err := c.AddFunc(cfg.OutboxSchedule, func() {
		if _, err := dispatcher.DispatchBatch(context.Background()); err != nil {
			logger.Error("outbox dispatch", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("outbox schedule", zap.Error(err))
	}
	c.Start()

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	resSvc := &reservation.Service{DB: gdb, Log: logger.Named("reservation")}
	r := httpx.NewRouter(cfg, gdb, jwtSvc, resSvc, jobRepo)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	<-c.Stop().Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
