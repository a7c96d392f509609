// Package clients provides the outbound HTTP client used to call
// downstream deployments, with retries, a circuit breaker, and
// caller-credential propagation.
package clients

import "errors"

// Sentinel failures of the client layer. They describe transport-level
// outcomes only; the acl package translates them into domain errors.
var (
	// ErrCircuitOpen means the breaker is rejecting calls without
	// contacting the downstream at all.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once the
	// retry budget is spent.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
