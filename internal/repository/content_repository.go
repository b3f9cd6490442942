package repository

import (
	"context"
	"time"

	"content-calendar/internal/domain/entity"
)

// ContentFilters contains optional filters for content item queries.
// Empty slices mean "no filtering on that dimension".
type ContentFilters struct {
	Platforms []entity.Platform // Optional: only items on these platforms
	Statuses  []entity.Status   // Optional: only items in these statuses
	From      *time.Time        // Optional: items scheduled >= this time
	To        *time.Time        // Optional: items scheduled <= this time
}

// Empty reports whether no filter dimension is set.
func (f ContentFilters) Empty() bool {
	return len(f.Platforms) == 0 && len(f.Statuses) == 0 && f.From == nil && f.To == nil
}

// ContentRepository is the persistence contract for content items.
type ContentRepository interface {
	// List retrieves the user's items matching the filters, ordered by
	// scheduled_at ascending, with LIMIT/OFFSET pagination.
	List(ctx context.Context, userID int64, filters ContentFilters, offset, limit int) ([]*entity.ContentItem, error)
	// Count returns the number of the user's items matching the filters.
	// Used for pagination metadata.
	Count(ctx context.Context, userID int64, filters ContentFilters) (int64, error)
	Get(ctx context.Context, id int64) (*entity.ContentItem, error)
	// Create inserts the item and assigns its ID.
	Create(ctx context.Context, item *entity.ContentItem) error
	Update(ctx context.Context, item *entity.ContentItem) error
	Delete(ctx context.Context, id int64) error
	// ListRange retrieves the user's items scheduled within [from, to),
	// ordered by scheduled_at ascending. Backs the calendar view.
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*entity.ContentItem, error)
	// CountByPlatform returns per-platform item counts for the user.
	CountByPlatform(ctx context.Context, userID int64) (map[entity.Platform]int64, error)
	// CountByStatus returns per-status item counts for the user.
	CountByStatus(ctx context.Context, userID int64) (map[entity.Status]int64, error)
	// ListDue retrieves items in status "scheduled" whose scheduled_at is at
	// or before now, up to limit rows. Consumed by the publisher worker.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*entity.ContentItem, error)
	// MarkPosted transitions an item to status "posted".
	// Returns entity.ErrNotFound if the item no longer exists.
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
	// CountForUser returns the user's total item count. Used for plan quotas.
	CountForUser(ctx context.Context, userID int64) (int64, error)
}
