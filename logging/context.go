package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext extracts the logger from context. Returns the default logger
// if no logger is found or ctx is nil, so callers never need a nil check.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// FromContextOr is FromContext with an explicit fallback for callers that
// run before the transport adapter stores a request logger.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	if fallback != nil {
		return fallback
	}

	return defaultLogger
}

// WithContext stores a logger in the context. The transport adapter calls
// this once per request; context materializers then lift the handle into
// the typed context stack with FromContext.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID returns a new context whose logger is enriched with the
// request ID attribute.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	logger := FromContext(ctx).With(slog.String("request_id", requestID))
	return WithContext(ctx, logger)
}

// WithCorrelationID returns a new context whose logger is enriched with the
// correlation ID attribute.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	logger := FromContext(ctx).With(slog.String("correlation_id", correlationID))
	return WithContext(ctx, logger)
}

// WithTraceID returns a new context whose logger is enriched with the
// trace ID attribute.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	logger := FromContext(ctx).With(slog.String("trace_id", traceID))
	return WithContext(ctx, logger)
}

// WithSubject returns a new context whose logger is enriched with the
// verified caller subject. Called after authorization enrichment succeeds.
func WithSubject(ctx context.Context, subject string) context.Context {
	logger := FromContext(ctx).With(slog.String("subject", subject))
	return WithContext(ctx, logger)
}

// SetDefault sets the logger returned when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
