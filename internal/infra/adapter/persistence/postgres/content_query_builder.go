// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"content-calendar/internal/repository"
)

// ContentQueryBuilder builds WHERE clauses for content item queries in PostgreSQL.
// The builder is shared between COUNT and SELECT queries to eliminate duplication.
// It uses numbered placeholders ($1, $2, etc.).
type ContentQueryBuilder struct{}

// NewContentQueryBuilder creates a new query builder instance.
func NewContentQueryBuilder() *ContentQueryBuilder {
	return &ContentQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for a content item
// query. The user_id condition always comes first so every query stays scoped
// to its owner. Platform and status filters expand into IN lists, the date
// range filters compare against scheduled_at.
func (qb *ContentQueryBuilder) BuildWhereClause(userID int64, filters repository.ContentFilters) (clause string, args []interface{}) {
	conditions := []string{"user_id = $1"}
	args = append(args, userID)
	paramIndex := 2

	if len(filters.Platforms) > 0 {
		placeholders := make([]string, 0, len(filters.Platforms))
		for _, platform := range filters.Platforms {
			placeholders = append(placeholders, fmt.Sprintf("$%d", paramIndex))
			args = append(args, string(platform))
			paramIndex++
		}
		conditions = append(conditions, fmt.Sprintf("platform IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(filters.Statuses) > 0 {
		placeholders := make([]string, 0, len(filters.Statuses))
		for _, status := range filters.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", paramIndex))
			args = append(args, string(status))
			paramIndex++
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_at >= $%d", paramIndex))
		args = append(args, *filters.From)
		paramIndex++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_at <= $%d", paramIndex))
		args = append(args, *filters.To)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
