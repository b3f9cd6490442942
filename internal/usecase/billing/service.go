package billing

import (
	"context"
	"errors"
	"fmt"

	"content-calendar/internal/repository"
)

// Sentinel errors for billing operations.
var (
	// ErrUnknownPlan indicates the requested plan code is not in the catalog.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrUserNotFound indicates the user no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// Subscription is a user's current plan.
type Subscription struct {
	Plan Plan `json:"plan"`
}

// Service provides plan catalog lookups and plan switching.
type Service struct {
	Users   repository.UserRepository
	Catalog Catalog
}

// Plans returns the full plan catalog, cheapest first.
func (s *Service) Plans() []Plan {
	return s.Catalog.Plans
}

// SubscriptionFor returns the user's current subscription. Users whose
// stored plan code has been removed from the catalog fall back to the first
// (cheapest) plan.
func (s *Service) SubscriptionFor(ctx context.Context, userID int64) (*Subscription, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	plan := s.Catalog.Find(user.Plan)
	if plan == nil {
		plan = &s.Catalog.Plans[0]
	}
	return &Subscription{Plan: *plan}, nil
}

// Subscribe switches the user onto the named plan.
// Returns ErrUnknownPlan for codes outside the catalog.
func (s *Service) Subscribe(ctx context.Context, userID int64, planCode string) (*Subscription, error) {
	plan := s.Catalog.Find(planCode)
	if plan == nil {
		return nil, ErrUnknownPlan
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.Users.UpdatePlan(ctx, userID, plan.Code); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return &Subscription{Plan: *plan}, nil
}

// ItemLimit reports the content item limit of the user's plan.
// Satisfies the content use case's quota contract: 0 means unlimited.
func (s *Service) ItemLimit(ctx context.Context, userID int64) (int64, error) {
	sub, err := s.SubscriptionFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	return sub.Plan.ItemLimit, nil
}
