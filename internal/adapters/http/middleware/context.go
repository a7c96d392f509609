// Package middleware provides the Gin middleware pipeline that prepares a
// request for the typed context chain: ID assignment, credential parsing,
// logging, recovery, and timeouts.
package middleware

import "context"

// Unexported struct keys cannot collide with keys from other packages.
type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// ContextWithRequestID stores the per-request ID in the standard context so
// it survives past the Gin layer, into the chain materializer and the
// outbound client.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// ContextWithCorrelationID stores the cross-service correlation ID in the
// standard context.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// RequestIDFromContext returns the stored request ID, or "" when absent.
// The ambient context materializer and the outbound client both read it here.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// CorrelationIDFromContext returns the stored correlation ID, or "" when
// absent.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(correlationIDKey{}).(string)

	return id
}
