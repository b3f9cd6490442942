package notifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	maxAttempts = 3
	baseDelay   = 500 * time.Millisecond

	defaultRetryAfter = 2 * time.Second
)

// webhookSender posts JSON payloads to one webhook URL. It applies, in
// order: a token bucket rate limit, a circuit breaker shared across
// attempts, and bounded retries with linear backoff for retryable errors.
type webhookSender struct {
	name       string
	webhookURL string
	httpClient *http.Client
	limiter    *RateLimiter
	breaker    *gobreaker.CircuitBreaker
}

func newWebhookSender(name, webhookURL string, timeout time.Duration, requestsPerSecond float64, burst int) *webhookSender {
	return &webhookSender{
		name:       name,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    NewRateLimiter(requestsPerSecond, burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name + "-webhook",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("webhook circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		}),
	}
}

// send posts the payload, retrying retryable failures and honoring 429
// Retry-After. An open circuit breaker fails fast without touching the
// network.
func (w *webhookSender) send(ctx context.Context, itemID int64, payload []byte) error {
	requestID := uuid.New().String()

	if err := w.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := w.breaker.Execute(func() (interface{}, error) {
			return nil, w.post(ctx, payload)
		})
		if err == nil {
			slog.Info("webhook notification delivered",
				slog.String("channel", w.name),
				slog.String("request_id", requestID),
				slog.Int64("item_id", itemID),
				slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			slog.Warn("webhook rate limit hit, backing off",
				slog.String("channel", w.name),
				slog.String("request_id", requestID),
				slog.Int64("item_id", itemID),
				slog.Duration("retry_after", rateLimitErr.RetryAfter))
			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s webhook circuit open: %w", w.name, err)
		}

		if !isRetryableError(err) {
			slog.Error("webhook notification failed with non-retryable error",
				slog.String("channel", w.name),
				slog.String("request_id", requestID),
				slog.Int64("item_id", itemID),
				slog.Any("error", err))
			return err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("webhook request failed, retrying",
				slog.String("channel", w.name),
				slog.String("request_id", requestID),
				slog.Int64("item_id", itemID),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("%s notification failed after %d attempts: %w", w.name, maxAttempts, lastErr)
}

func (w *webhookSender) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp)}
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s webhook returned %d: %s", w.name, resp.StatusCode, body),
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s webhook returned %d: %s", w.name, resp.StatusCode, body),
		}
	}
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return defaultRetryAfter
}
