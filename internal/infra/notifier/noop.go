package notifier

import (
	"context"

	"content-calendar/internal/domain/entity"
)

// NoOpChannel is a Channel that discards every notification.
// Used when no webhook is configured so callers never branch on nil.
type NoOpChannel struct{}

// NewNoOpChannel creates a new NoOpChannel instance.
func NewNoOpChannel() *NoOpChannel {
	return &NoOpChannel{}
}

func (n *NoOpChannel) Name() string { return "noop" }

// Send does nothing and returns nil immediately.
func (n *NoOpChannel) Send(ctx context.Context, item *entity.ContentItem) error {
	return nil
}
