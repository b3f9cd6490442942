// Package analytics provides aggregate views over a user's content items:
// totals, per-platform and per-status breakdowns, and the scheduled load for
// the upcoming week.
package analytics

import (
	"context"
	"fmt"
	"time"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/repository"
)

// upcomingDays is the length of the scheduled-load window.
const upcomingDays = 7

// DayCount is the number of items scheduled on one UTC day.
type DayCount struct {
	Date  string `json:"date"` // "2006-01-02", UTC
	Count int64  `json:"count"`
}

// Summary is the analytics snapshot for one user.
type Summary struct {
	Total        int64                     `json:"total"`
	ByPlatform   map[entity.Platform]int64 `json:"by_platform"`
	ByStatus     map[entity.Status]int64   `json:"by_status"`
	UpcomingWeek []DayCount                `json:"upcoming_week"`
}

// Service computes analytics summaries from the content repository.
type Service struct {
	Repo repository.ContentRepository
	// Now returns the current time, overridable in tests.
	Now func() time.Time
}

// Summarize builds the analytics summary for the user. The upcoming-week
// window starts at the current UTC day and always contains seven entries,
// one per day, zero-filled.
func (s *Service) Summarize(ctx context.Context, userID int64) (*Summary, error) {
	byPlatform, err := s.Repo.CountByPlatform(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count by platform: %w", err)
	}
	byStatus, err := s.Repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	// Every enum member appears in the breakdown even when zero.
	platforms := make(map[entity.Platform]int64, len(entity.Platforms()))
	for _, p := range entity.Platforms() {
		platforms[p] = byPlatform[p]
	}
	statuses := make(map[entity.Status]int64, len(entity.Statuses()))
	for _, st := range entity.Statuses() {
		statuses[st] = byStatus[st]
	}

	var total int64
	for _, n := range platforms {
		total += n
	}

	upcoming, err := s.upcomingWeek(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Total:        total,
		ByPlatform:   platforms,
		ByStatus:     statuses,
		UpcomingWeek: upcoming,
	}, nil
}

func (s *Service) upcomingWeek(ctx context.Context, userID int64) ([]DayCount, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	from := now().UTC().Truncate(24 * time.Hour)
	to := from.Add(upcomingDays * 24 * time.Hour)

	items, err := s.Repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list upcoming items: %w", err)
	}

	counts := make(map[string]int64, len(items))
	for _, item := range items {
		counts[item.ScheduledAt.UTC().Format("2006-01-02")]++
	}

	week := make([]DayCount, 0, upcomingDays)
	for i := 0; i < upcomingDays; i++ {
		key := from.Add(time.Duration(i) * 24 * time.Hour).Format("2006-01-02")
		week = append(week, DayCount{Date: key, Count: counts[key]})
	}
	return week, nil
}
