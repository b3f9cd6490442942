// Package publish moves due content items from scheduled to posted.
// The cron worker invokes it on every tick; notification channels are told
// about each item that went live.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/infra/notifier"
	"content-calendar/internal/observability/metrics"
	"content-calendar/internal/repository"
)

// defaultBatchLimit caps how many due items one run will publish.
// A backlog larger than this drains over successive ticks.
const defaultBatchLimit = 100

// Stats summarizes one publish run.
type Stats struct {
	Scanned   int // due items found
	Published int // items transitioned to posted
	Failed    int // items whose transition failed
}

// Service publishes due content items and fans out notifications.
type Service struct {
	Repo     repository.ContentRepository
	Channels []notifier.Channel
	// BatchLimit caps items per run; zero means the default.
	BatchLimit int
	// NotifyConcurrency bounds parallel notification sends; zero means 4.
	NotifyConcurrency int
}

// PublishDue transitions every item that is scheduled at or before now to
// posted. Items that vanished mid-run are skipped silently; other failures
// count as failed and leave the item scheduled for the next tick.
// Notification failures never fail the publish.
func (s *Service) PublishDue(ctx context.Context, now time.Time) (Stats, error) {
	limit := s.BatchLimit
	if limit <= 0 {
		limit = defaultBatchLimit
	}

	due, err := s.Repo.ListDue(ctx, now, limit)
	if err != nil {
		return Stats{}, fmt.Errorf("list due items: %w", err)
	}

	stats := Stats{Scanned: len(due)}
	for _, item := range due {
		if err := s.Repo.MarkPosted(ctx, item.ID, now); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				// Deleted between the scan and the update.
				continue
			}
			stats.Failed++
			metrics.RecordPublishAttempt(false)
			slog.Error("failed to publish content item",
				slog.Int64("item_id", item.ID),
				slog.Int64("user_id", item.UserID),
				slog.Any("error", err))
			continue
		}
		stats.Published++
		metrics.RecordPublishAttempt(true)
		item.Status = entity.StatusPosted

		s.notify(ctx, item)
	}

	slog.Info("publish run finished",
		slog.Int("scanned", stats.Scanned),
		slog.Int("published", stats.Published),
		slog.Int("failed", stats.Failed))
	return stats, nil
}

// notify fans the published item out to every channel with bounded
// concurrency. Errors are logged per channel and swallowed.
func (s *Service) notify(ctx context.Context, item *entity.ContentItem) {
	if len(s.Channels) == 0 {
		return
	}

	concurrency := s.NotifyConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, ch := range s.Channels {
		g.Go(func() error {
			err := ch.Send(gctx, item)
			metrics.RecordNotification(ch.Name(), err == nil)
			if err != nil {
				slog.Warn("publish notification failed",
					slog.String("channel", ch.Name()),
					slog.Int64("item_id", item.ID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
