package metrics

import (
	"time"
)

// RecordContentItemCreated records that an item was scheduled on a platform.
func RecordContentItemCreated(platform string) {
	ContentItemsCreatedTotal.WithLabelValues(platform).Inc()
}

// RecordBulkOperation records one bulk operation with its overall outcome.
// Operation is "create" or "reschedule"; result is "success", "partial" or
// "failure".
func RecordBulkOperation(operation, result string) {
	BulkOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateContentItemsTotal updates the stored item gauge. Called periodically,
// not on every write.
func UpdateContentItemsTotal(count int64) {
	ContentItemsTotal.Set(float64(count))
}

// UpdateContentItemsByStatus updates the per-status gauges from a counts map.
func UpdateContentItemsByStatus(counts map[string]int64) {
	for status, count := range counts {
		ContentItemsByStatus.WithLabelValues(status).Set(float64(count))
	}
}

// RecordPublishAttempt records the result of publishing one due item.
func RecordPublishAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	PublishAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordPublishRun records a completed publish sweep: how long it took and
// how many items were due when it started.
func RecordPublishRun(duration time.Duration, dueItems int) {
	PublishRunDuration.Observe(duration.Seconds())
	PublishBacklog.Set(float64(dueItems))
}

// RecordNotification records a notification delivery attempt for a channel
// such as "slack" or "discord".
func RecordNotification(channel string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	NotificationsSentTotal.WithLabelValues(channel, result).Inc()
}

// UpdateDBConnectionStats updates connection pool gauges.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
