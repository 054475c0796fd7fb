package logger

import (
	"context"
	"log/slog"
	"time"
)

// ContextKey is the type for context keys used in logging.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"
	FeedURLKey   ContextKey = "feed_url"
)

// GlobalContext is the global ContextLogger instance.
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging.
type ContextLogger struct {
	logger *slog.Logger
}

// NewContextLogger creates a new ContextLogger wrapping the provided logger.
func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext adds context values to log entries and returns a new logger.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		args = append(args, string(RequestIDKey), requestID.(string))
	}

	if operation := ctx.Value(OperationKey); operation != nil {
		args = append(args, string(OperationKey), operation.(string))
	}

	if feedURL := ctx.Value(FeedURLKey); feedURL != nil {
		args = append(args, string(FeedURLKey), feedURL.(string))
	}

	return cl.logger.With(args...)
}

// LogError logs an operation failure with error details.
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

// LogDuration logs an operation completion with its duration.
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, duration time.Duration) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	)
}

// WithFeedURL adds the feed URL to context for observability.
func WithFeedURL(ctx context.Context, feedURL string) context.Context {
	return context.WithValue(ctx, FeedURLKey, feedURL)
}

// WithOperation adds the operation name to context for observability.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}
