// Package logging provides structured logging helpers built on log/slog.
// Loggers are configured once at startup and flow through the application
// either explicitly or via context.
package logging

import (
	"context"
	"log/slog"
	"os"

	"content-calendar/internal/handler/http/requestid"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// parseLevel maps the LOG_LEVEL environment variable to a slog level.
// Unknown values fall back to info.
func parseLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger with JSON output.
// The level is controlled via LOG_LEVEL (debug, info, warn, error; default info).
func NewLogger() *slog.Logger {
	level := parseLevel()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		// Source locations help debugging but are noisy at info level.
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// NewTextLogger creates a logger with human-readable text output for local
// development.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(),
	})
	return slog.New(handler)
}

// WithRequestID returns a logger carrying the request ID from the context,
// so all entries for one request can be correlated.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// FromContext retrieves the logger stored in the context, or the default
// logger if none was stored.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}
