// Package worker provides the operational shell of the publish worker:
// configuration loading, health endpoints and Prometheus metrics.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"content-calendar/internal/pkg/config"
)

// WorkerConfig controls the publish worker: when the sweep runs, how it
// is bounded, and how the worker exposes its health.
//
// Loading is fail-open: an invalid environment value falls back to the
// default with a warning instead of stopping the worker.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for publish sweeps.
	// Default: "* * * * *" (every minute); scheduled items should move
	// to posted close to their scheduled time.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC". Scheduled dates are stored in UTC.
	Timezone string

	// NotifyMaxConcurrent caps concurrent notification deliveries.
	// Range 1-50. Default: 10.
	NotifyMaxConcurrent int

	// PublishTimeout bounds a single sweep over due items.
	// Range 10s-1h. Default: 5 minutes.
	PublishTimeout time.Duration

	// BatchSize caps how many due items one sweep picks up.
	// Range 1-1000. Default: 100.
	BatchSize int

	// HealthPort serves the liveness and readiness probes.
	// Range 1024-65535. Default: 9091.
	HealthPort int

	// MetricsPort serves the Prometheus endpoint.
	// Range 1024-65535. Default: 9092.
	MetricsPort int
}

// DefaultConfig returns production-ready worker defaults.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:        "* * * * *",
		Timezone:            "UTC",
		NotifyMaxConcurrent: 10,
		PublishTimeout:      5 * time.Minute,
		BatchSize:           100,
		HealthPort:          9091,
		MetricsPort:         9092,
	}
}

// Validate checks all fields, collecting every violation so an operator
// sees the full picture at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.NotifyMaxConcurrent, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("notify max concurrent: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.PublishTimeout); err != nil {
		errs = append(errs, fmt.Errorf("publish timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.BatchSize, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("batch size: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with fail-open fallback. It never returns an error; each invalid value
// is replaced by its default, logged and counted in metrics.
//
// Environment variables:
//   - CRON_SCHEDULE
//   - WORKER_TIMEZONE
//   - NOTIFY_MAX_CONCURRENT
//   - PUBLISH_TIMEOUT (Go duration string, e.g. "5m")
//   - PUBLISH_BATCH_SIZE
//   - WORKER_HEALTH_PORT
//   - WORKER_METRICS_PORT
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()

	applyFallback := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning),
			)
		}
	}

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	applyFallback("cron_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	applyFallback("timezone", result)

	result = config.LoadEnvInt("NOTIFY_MAX_CONCURRENT", cfg.NotifyMaxConcurrent, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.NotifyMaxConcurrent = result.Value.(int)
	applyFallback("notify_max_concurrent", result)

	result = config.LoadEnvDuration("PUBLISH_TIMEOUT", cfg.PublishTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, time.Hour)
	})
	cfg.PublishTimeout = result.Value.(time.Duration)
	applyFallback("publish_timeout", result)

	result = config.LoadEnvInt("PUBLISH_BATCH_SIZE", cfg.BatchSize, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000)
	})
	cfg.BatchSize = result.Value.(int)
	applyFallback("publish_batch_size", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	applyFallback("health_port", result)

	result = config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	applyFallback("metrics_port", result)

	metrics.RecordLoadTimestamp()
	return &cfg, nil
}
