package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookd_outbox_dispatched_total",
		Help: "Outbox rows successfully published to the events table.",
	})
	failedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookd_outbox_failed_total",
		Help: "Outbox rows that failed to publish and remain undelivered.",
	})
	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookd_outbox_batch_duration_seconds",
		Help:    "Duration of one outbox dispatch batch.",
		Buckets: prometheus.DefBuckets,
	})
)
