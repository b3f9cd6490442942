// Package notifier delivers publish notifications to chat webhooks.
// It defines the Channel interface so different destinations (Discord,
// Slack, or nothing) can be used interchangeably, and webhook senders with
// rate limiting, retries, and a circuit breaker.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"content-calendar/internal/domain/entity"
)

// Channel sends a notification when a content item is published.
// Implementations handle rate limiting, retries, and error logging
// internally.
type Channel interface {
	// Name identifies the channel in logs and metrics.
	Name() string
	// Send notifies the channel that the item went live.
	Send(ctx context.Context, item *entity.ContentItem) error
}

// RateLimitError represents a 429 response from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx response from a webhook service.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx response from a webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// isRetryableError reports whether the error is worth retrying.
// Server and network errors are, client errors are not; rate limits are
// handled separately via RetryAfter.
func isRetryableError(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return false
	}
	return true
}

// truncate shortens text to maxLength, appending suffix when cut.
func truncate(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return text[:cut] + suffix
}

// validateWebhookURL rejects webhook URLs that are not absolute HTTPS URLs.
// Webhook URLs embed the authentication token, plain HTTP would leak it.
func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("webhook URL must use https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook URL has no host")
	}
	return nil
}
