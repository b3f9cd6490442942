package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"content-calendar/internal/domain/entity"
	"content-calendar/internal/repository"
)

type ContentRepo struct {
	db           *sql.DB
	queryBuilder *ContentQueryBuilder
}

func NewContentRepo(db *sql.DB) repository.ContentRepository {
	return &ContentRepo{
		db:           db,
		queryBuilder: NewContentQueryBuilder(),
	}
}

// scanContentItem scans one content item row.
func scanContentItem(rows *sql.Rows) (*entity.ContentItem, error) {
	var item entity.ContentItem
	if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description,
		&item.Platform, &item.Status, &item.ScheduledAt, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func (repo *ContentRepo) List(ctx context.Context, userID int64, filters repository.ContentFilters, offset, limit int) ([]*entity.ContentItem, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(userID, filters)

	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT id, user_id, title, description, platform, status, scheduled_at, created_at, updated_at
FROM content_items
%s
ORDER BY scheduled_at ASC, id ASC
LIMIT $%d OFFSET $%d`, whereClause, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.ContentItem, 0, limit)
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repo *ContentRepo) Count(ctx context.Context, userID int64, filters repository.ContentFilters) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(userID, filters)

	query := "SELECT COUNT(*) FROM content_items " + whereClause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ContentRepo) Get(ctx context.Context, id int64) (*entity.ContentItem, error) {
	const query = `
SELECT id, user_id, title, description, platform, status, scheduled_at, created_at, updated_at
FROM content_items
WHERE id = $1
LIMIT 1`
	var item entity.ContentItem
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.Platform, &item.Status, &item.ScheduledAt, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &item, nil
}

func (repo *ContentRepo) Create(ctx context.Context, item *entity.ContentItem) error {
	const query = `
INSERT INTO content_items
       (user_id, title, description, platform, status, scheduled_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		item.UserID, item.Title, item.Description,
		item.Platform, item.Status, item.ScheduledAt,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ContentRepo) Update(ctx context.Context, item *entity.ContentItem) error {
	const query = `
UPDATE content_items SET
       title        = $1,
       description  = $2,
       platform     = $3,
       status       = $4,
       scheduled_at = $5,
       updated_at   = $6
WHERE id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		item.Title, item.Description, item.Platform,
		item.Status, item.ScheduledAt, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ContentRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM content_items WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ContentRepo) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*entity.ContentItem, error) {
	const query = `
SELECT id, user_id, title, description, platform, status, scheduled_at, created_at, updated_at
FROM content_items
WHERE user_id = $1
  AND scheduled_at >= $2
  AND scheduled_at < $3
ORDER BY scheduled_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ListRange: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.ContentItem, 0, 100)
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRange: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repo *ContentRepo) CountByPlatform(ctx context.Context, userID int64) (map[entity.Platform]int64, error) {
	const query = `
SELECT platform, COUNT(*)
FROM content_items
WHERE user_id = $1
GROUP BY platform`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("CountByPlatform: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[entity.Platform]int64)
	for rows.Next() {
		var platform entity.Platform
		var count int64
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, fmt.Errorf("CountByPlatform: Scan: %w", err)
		}
		counts[platform] = count
	}
	return counts, rows.Err()
}

func (repo *ContentRepo) CountByStatus(ctx context.Context, userID int64) (map[entity.Status]int64, error) {
	const query = `
SELECT status, COUNT(*)
FROM content_items
WHERE user_id = $1
GROUP BY status`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[entity.Status]int64)
	for rows.Next() {
		var status entity.Status
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("CountByStatus: Scan: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (repo *ContentRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]*entity.ContentItem, error) {
	const query = `
SELECT id, user_id, title, description, platform, status, scheduled_at, created_at, updated_at
FROM content_items
WHERE status = 'scheduled'
  AND scheduled_at <= $1
ORDER BY scheduled_at ASC, id ASC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("ListDue: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.ContentItem, 0, limit)
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("ListDue: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repo *ContentRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	const query = `
UPDATE content_items SET
       status     = 'posted',
       updated_at = $1
WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, postedAt, id)
	if err != nil {
		return fmt.Errorf("MarkPosted: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("MarkPosted: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ContentRepo) CountForUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM content_items WHERE user_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountForUser: %w", err)
	}
	return count, nil
}
