// Package metrics provides centralized Prometheus metrics for scheduling,
// publishing and notification operations shared by the API server and the
// publish worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scheduling metrics track the content item lifecycle.
var (
	// ContentItemsTotal tracks the total number of content items stored.
	ContentItemsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "content_items_total",
			Help: "Total number of content items in the database",
		},
	)

	// ContentItemsByStatus tracks item counts per workflow status.
	ContentItemsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_items_by_status",
			Help: "Number of content items per status",
		},
		[]string{"status"},
	)

	// ContentItemsCreatedTotal counts item creations per platform.
	ContentItemsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_items_created_total",
			Help: "Total number of content items created",
		},
		[]string{"platform"},
	)

	// BulkOperationsTotal counts bulk scheduling operations by outcome.
	BulkOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_operations_total",
			Help: "Total number of bulk scheduling operations",
		},
		[]string{"operation", "result"}, // operation: create, reschedule
	)
)

// Publish metrics track the worker that moves due items to posted.
var (
	// PublishAttemptsTotal counts publish attempts by result.
	PublishAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_attempts_total",
			Help: "Total number of publish attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// PublishRunDuration measures the duration of one publish sweep.
	PublishRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "publish_run_duration_seconds",
			Help:    "Time taken for one sweep over due content items",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// PublishBacklog tracks how many items were due at the start of a sweep.
	PublishBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "publish_backlog_items",
			Help: "Number of due content items found at the start of a sweep",
		},
	)

	// NotificationsSentTotal counts delivery notifications by channel and result.
	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of publish notifications sent",
		},
		[]string{"channel", "result"},
	)
)

// Database metrics track connection pool health.
var (
	// DBConnectionsActive tracks in-use database connections.
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections.
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
