// Package repository defines persistence interfaces for the domain entities.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"content-calendar/internal/domain/entity"
)

// UserRepository is the persistence contract for user accounts.
// Lookup methods return (nil, nil) when no row matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// Create inserts the user and assigns its ID.
	Create(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdatePlan(ctx context.Context, id int64, plan string) error
}
