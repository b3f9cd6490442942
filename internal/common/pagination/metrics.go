package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts paginated list requests by status code and page.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_requests_total",
			Help: "Paginated list requests by status code and requested page",
		},
		[]string{"status", "page"},
	)

	// requestDuration tracks paginated request duration by stage.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_duration_seconds",
			Help:    "Paginated request duration by stage",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"stage"},
	)

	// errorsTotal counts pagination errors by kind.
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_errors_total",
			Help: "Pagination errors by kind",
		},
		[]string{"kind"}, // kind: validation | database
	)

	// totalCount mirrors the last reported total row count.
	totalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagination_total_count",
			Help: "Total row count reported by the most recent paginated query",
		},
	)
)

// RecordRequest records a completed paginated request.
func RecordRequest(statusCode, page int) {
	requestsTotal.WithLabelValues(strconv.Itoa(statusCode), strconv.Itoa(page)).Inc()
}

// RecordDuration records the duration of one pagination stage.
func RecordDuration(stage string, durationSeconds float64) {
	requestDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordError records a pagination error.
func RecordError(kind string) {
	errorsTotal.WithLabelValues(kind).Inc()
}

// UpdateTotalCount records the total row count of the latest query.
func UpdateTotalCount(total int64) {
	totalCount.Set(float64(total))
}
