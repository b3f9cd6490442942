package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"content-calendar/internal/pkg/config"
)

// WorkerMetrics holds the Prometheus metrics for the publish worker.
// Construct once per process; promauto panics on duplicate registration.
type WorkerMetrics struct {
	// Embedded configuration metrics (worker_config_*).
	*config.ConfigMetrics

	// PublishRunsTotal counts sweep runs by status (success/failure).
	PublishRunsTotal *prometheus.CounterVec

	// PublishRunDurationSeconds measures sweep duration.
	PublishRunDurationSeconds prometheus.Histogram

	// ItemsPublishedTotal counts items moved to posted across all sweeps.
	ItemsPublishedTotal prometheus.Counter

	// LastSuccessTimestamp is the Unix time of the last successful sweep.
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metric set.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		PublishRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_publish_runs_total",
			Help: "Total number of publish sweep runs by status",
		}, []string{"status"}),

		PublishRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_publish_run_duration_seconds",
			Help:    "Duration of publish sweep execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		ItemsPublishedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_items_published_total",
			Help: "Total number of content items moved to posted",
		}),

		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_publish_last_success_timestamp",
			Help: "Unix timestamp of the last successful publish sweep",
		}),
	}
}

// RecordRun counts one sweep with status "success" or "failure".
func (m *WorkerMetrics) RecordRun(status string) {
	m.PublishRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes the duration of one sweep in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.PublishRunDurationSeconds.Observe(seconds)
}

// RecordItemsPublished adds the number of items published by one sweep.
func (m *WorkerMetrics) RecordItemsPublished(count int) {
	m.ItemsPublishedTotal.Add(float64(count))
}

// RecordLastSuccess marks now as the last successful sweep.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
