package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"content-calendar/internal/common/pagination"
	"content-calendar/internal/domain/entity"
	"content-calendar/internal/repository"
)

// MaxBulkItems caps the number of items accepted by a single bulk call.
const MaxBulkItems = 50

// bulkConcurrency bounds the number of parallel repository writes during
// bulk operations.
const bulkConcurrency = 4

// QuotaChecker reports the content item limit of a user's plan.
// A limit of zero or less means unlimited.
type QuotaChecker interface {
	ItemLimit(ctx context.Context, userID int64) (int64, error)
}

// CreateInput represents the input parameters for creating a content item.
type CreateInput struct {
	Title       string
	Description string
	Platform    entity.Platform
	Status      entity.Status
	ScheduledAt time.Time
}

// UpdateInput represents the input parameters for updating a content item.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID          int64
	Title       *string
	Description *string
	Platform    *entity.Platform
	Status      *entity.Status
	ScheduledAt *time.Time
}

// Service provides content item management use cases.
// Every operation is scoped to the calling user. Quota is optional; a nil
// checker disables quota enforcement.
type Service struct {
	Repo  repository.ContentRepository
	Quota QuotaChecker
}

// PaginatedResult represents the result of a paginated content query.
type PaginatedResult struct {
	Data       []*entity.ContentItem
	Pagination pagination.Metadata
}

// Day is one calendar bucket: all of a user's items scheduled on one UTC day.
type Day struct {
	Date  string // "2006-01-02", UTC
	Items []*entity.ContentItem
}

// BulkResult reports the outcome of one item in a bulk create call.
type BulkResult struct {
	Index int
	ID    int64
	Err   error
}

// BulkRescheduleInput moves a set of items. Exactly one of Shift or NewStart
// must be set: Shift moves every item by the duration, NewStart moves the
// earliest item onto the new start and keeps the relative offsets of the rest.
type BulkRescheduleInput struct {
	IDs      []int64
	Shift    *time.Duration
	NewStart *time.Time
}

// List retrieves one page of the user's items matching the filters.
func (s *Service) List(ctx context.Context, userID int64, filters repository.ContentFilters, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.Count(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("count content items: %w", err)
	}

	items, err := s.Repo.List(ctx, userID, filters, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}

	return &PaginatedResult{
		Data:       items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Get retrieves a single content item owned by the user.
// Returns ErrInvalidContentID if the ID is not positive.
// Returns ErrContentNotFound if the item does not exist or belongs to
// another user.
func (s *Service) Get(ctx context.Context, userID, id int64) (*entity.ContentItem, error) {
	if id <= 0 {
		return nil, ErrInvalidContentID
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, ErrContentNotFound
	}
	return item, nil
}

// Create creates a new content item for the user.
// Status defaults to draft when empty. Returns a ValidationError for invalid
// fields and ErrQuotaExceeded when the user's plan limit is reached.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*entity.ContentItem, error) {
	if in.Status == "" {
		in.Status = entity.StatusDraft
	}

	now := time.Now()
	item := &entity.ContentItem{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Platform:    in.Platform,
		Status:      in.Status,
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := entity.ValidateDescription(in.Description); err != nil {
		return nil, err
	}

	if err := s.checkQuota(ctx, userID, 1); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content item: %w", err)
	}
	return item, nil
}

// Update modifies an existing content item owned by the user.
// Only non-nil fields in the input will be updated.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (*entity.ContentItem, error) {
	item, err := s.Get(ctx, userID, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		if err := entity.ValidateDescription(*in.Description); err != nil {
			return nil, err
		}
		item.Description = *in.Description
	}
	if in.Platform != nil {
		item.Platform = *in.Platform
	}
	if in.Status != nil {
		item.Status = *in.Status
	}
	if in.ScheduledAt != nil {
		item.ScheduledAt = *in.ScheduledAt
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update content item: %w", err)
	}
	return item, nil
}

// Delete removes a content item owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	return nil
}

// Calendar buckets the user's items in [from, to) by UTC day. Every day of
// the range appears in the result so the client can render a fixed grid.
// The range is capped at 100 days.
func (s *Service) Calendar(ctx context.Context, userID int64, from, to time.Time) ([]Day, error) {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC()
	if !to.After(from) {
		return nil, &entity.ValidationError{Field: "to", Message: "must be after from"}
	}
	if to.Sub(from) > 100*24*time.Hour {
		return nil, &entity.ValidationError{Field: "to", Message: "range must not exceed 100 days"}
	}

	items, err := s.Repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list content items in range: %w", err)
	}

	byDay := make(map[string][]*entity.ContentItem, len(items))
	for _, item := range items {
		key := item.ScheduledAt.UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], item)
	}

	days := make([]Day, 0, int(to.Sub(from)/(24*time.Hour))+1)
	for d := from; d.Before(to); d = d.Add(24 * time.Hour) {
		key := d.Format("2006-01-02")
		days = append(days, Day{Date: key, Items: byDay[key]})
	}
	return days, nil
}

// BulkCreate creates up to MaxBulkItems items in one call. Items are created
// concurrently and each gets its own result entry, so one invalid item does
// not abort the rest. The quota is checked once against the full batch.
func (s *Service) BulkCreate(ctx context.Context, userID int64, inputs []CreateInput) ([]BulkResult, error) {
	if len(inputs) == 0 {
		return nil, &entity.ValidationError{Field: "items", Message: "is required"}
	}
	if len(inputs) > MaxBulkItems {
		return nil, &entity.ValidationError{
			Field:   "items",
			Message: fmt.Sprintf("must not exceed %d items", MaxBulkItems),
		}
	}

	if err := s.checkQuota(ctx, userID, int64(len(inputs))); err != nil {
		return nil, err
	}

	results := make([]BulkResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)

	for i, in := range inputs {
		g.Go(func() error {
			item, err := s.createOne(gctx, userID, in)
			if err != nil {
				results[i] = BulkResult{Index: i, Err: err}
				return nil
			}
			results[i] = BulkResult{Index: i, ID: item.ID}
			return nil
		})
	}

	// Closures never return errors, per-item failures live in results.
	_ = g.Wait()
	return results, nil
}

// createOne is Create without the per-item quota check, used by BulkCreate
// where the quota covers the whole batch.
func (s *Service) createOne(ctx context.Context, userID int64, in CreateInput) (*entity.ContentItem, error) {
	if in.Status == "" {
		in.Status = entity.StatusDraft
	}

	now := time.Now()
	item := &entity.ContentItem{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Platform:    in.Platform,
		Status:      in.Status,
		ScheduledAt: in.ScheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := entity.ValidateDescription(in.Description); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content item: %w", err)
	}
	return item, nil
}

// BulkReschedule moves a set of the user's items in one call.
// All items are loaded and ownership-checked before any write happens, so a
// bad ID fails the whole call instead of moving half the set.
func (s *Service) BulkReschedule(ctx context.Context, userID int64, in BulkRescheduleInput) ([]*entity.ContentItem, error) {
	if len(in.IDs) == 0 {
		return nil, &entity.ValidationError{Field: "ids", Message: "is required"}
	}
	if len(in.IDs) > MaxBulkItems {
		return nil, &entity.ValidationError{
			Field:   "ids",
			Message: fmt.Sprintf("must not exceed %d items", MaxBulkItems),
		}
	}
	if (in.Shift == nil) == (in.NewStart == nil) {
		return nil, &entity.ValidationError{
			Field:   "shift",
			Message: "exactly one of shift and new_start must be set",
		}
	}

	items := make([]*entity.ContentItem, 0, len(in.IDs))
	for _, id := range in.IDs {
		item, err := s.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var delta time.Duration
	if in.Shift != nil {
		delta = *in.Shift
	} else {
		earliest := items[0].ScheduledAt
		for _, item := range items[1:] {
			if item.ScheduledAt.Before(earliest) {
				earliest = item.ScheduledAt
			}
		}
		delta = in.NewStart.Sub(earliest)
	}

	now := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	var mu sync.Mutex
	var firstErr error

	for _, item := range items {
		g.Go(func() error {
			item.ScheduledAt = item.ScheduledAt.Add(delta)
			item.UpdatedAt = now
			if err := s.Repo.Update(gctx, item); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("reschedule content items: %w", firstErr)
	}
	return items, nil
}

// checkQuota verifies that adding n items keeps the user within the plan
// limit. A nil checker or non-positive limit means unlimited.
func (s *Service) checkQuota(ctx context.Context, userID, n int64) error {
	if s.Quota == nil {
		return nil
	}
	limit, err := s.Quota.ItemLimit(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve item quota: %w", err)
	}
	if limit <= 0 {
		return nil
	}
	count, err := s.Repo.CountForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count content items: %w", err)
	}
	if count+n > limit {
		return ErrQuotaExceeded
	}
	return nil
}
