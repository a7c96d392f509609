// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrNotFound, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/internal/domain"
)

// EchoRelay forwards an echo request to a downstream deployment of this
// service. Implementations are responsible for carrying the caller's
// credentials and request metadata on the outgoing request.
type EchoRelay interface {
	// Relay sends the request downstream and returns the downstream reply.
	// Returns domain.ErrUnavailable when the downstream cannot be reached.
	Relay(ctx context.Context, req domain.EchoRequest) (*domain.EchoReply, error)
}
