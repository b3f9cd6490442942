package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "content-calendar/internal/infra/adapter/persistence/postgres"
	"content-calendar/internal/infra/db"
	"content-calendar/internal/infra/notifier"
	workerPkg "content-calendar/internal/infra/worker"
	"content-calendar/internal/observability/logging"
	obsmetrics "content-calendar/internal/observability/metrics"
	"content-calendar/internal/usecase/publish"
)

// waitForMigrations blocks until the API container has applied the schema.
// The worker does not run migrations itself.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM content_items LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("notify_max_concurrent", cfg.NotifyMaxConcurrent),
		slog.Duration("publish_timeout", cfg.PublishTimeout),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Int("health_port", cfg.HealthPort),
		slog.Int("metrics_port", cfg.MetricsPort))

	channels := setupChannels(logger)

	startMetricsServer(ctx, logger, cfg.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	svc := &publish.Service{
		Repo:              pgRepo.NewContentRepo(database),
		Channels:          channels,
		BatchLimit:        cfg.BatchSize,
		NotifyConcurrency: cfg.NotifyMaxConcurrent,
	}

	runCronWorker(logger, svc, cfg, workerMetrics, healthServer, cancel)
}

// initDatabase opens the database connection and waits for the schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// setupChannels builds the notification channel list from the environment.
// A misconfigured webhook URL stops the worker; an unset one just disables
// the channel. With no channels configured a no-op channel is used so the
// publish path stays uniform.
func setupChannels(logger *slog.Logger) []notifier.Channel {
	var channels []notifier.Channel

	slackConfig, err := notifier.LoadSlackConfigFromEnv()
	if err != nil {
		logger.Error("invalid Slack configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if slackConfig.Enabled {
		channels = append(channels, notifier.NewSlackChannel(slackConfig))
		logger.Info("Slack channel initialized")
	} else {
		logger.Info("Slack channel disabled")
	}

	discordConfig, err := notifier.LoadDiscordConfigFromEnv()
	if err != nil {
		logger.Error("invalid Discord configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if discordConfig.Enabled {
		channels = append(channels, notifier.NewDiscordChannel(discordConfig))
		logger.Info("Discord channel initialized")
	} else {
		logger.Info("Discord channel disabled")
	}

	if len(channels) == 0 {
		logger.Info("no notification channels configured, notifications disabled")
		channels = append(channels, notifier.NewNoOpChannel())
	}
	return channels
}

// runCronWorker runs publish sweeps on the configured schedule and blocks
// until SIGINT/SIGTERM, then drains gracefully.
func runCronWorker(logger *slog.Logger, svc *publish.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer, cancel context.CancelFunc) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runPublishJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker")

	// Stop accepting traffic first, then let the running sweep finish.
	healthServer.SetReady(false)
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.PublishTimeout):
		logger.Warn("publish sweep did not finish before shutdown deadline")
	}

	cancel()
	logger.Info("worker stopped")
}

// runPublishJob executes a single publish sweep with timeout and metrics.
func runPublishJob(logger *slog.Logger, svc *publish.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PublishTimeout)
	defer cancel()

	stats, err := svc.PublishDue(ctx, time.Now().UTC())
	duration := time.Since(startTime)
	metrics.RecordRunDuration(duration.Seconds())
	obsmetrics.RecordPublishRun(duration, stats.Scanned)

	if err != nil {
		logger.Error("publish sweep failed", slog.Any("error", err))
		metrics.RecordRun("failure")
		return
	}

	metrics.RecordRun("success")
	metrics.RecordItemsPublished(stats.Published)
	metrics.RecordLastSuccess()

	logger.Info("publish sweep completed",
		slog.Int("scanned", stats.Scanned),
		slog.Int("published", stats.Published),
		slog.Int("failed", stats.Failed),
		slog.Duration("duration", duration))
}
