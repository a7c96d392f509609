// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and the typed context chain.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (business workflows)
//   - Consume the typed context shapes produced by the wrapper chain
//   - Handle cross-cutting concerns (logging)
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Context materialization and enrichment (that's the chain wrappers)
//   - Core domain logic (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
	"github.com/jsamuelsen/go-api-runtime/internal/apictx"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
)

// EchoService is the innermost service of the demo chain. By the time a
// request reaches it, the wrapper chain has already materialized the ambient
// context and verified the caller, so the service works against an
// apictx.Authed shape and never touches headers or raw credentials.
type EchoService struct {
	logger        *slog.Logger
	requiredScope string
}

// EchoServiceConfig contains configuration for the echo service.
type EchoServiceConfig struct {
	Logger *slog.Logger

	// RequiredScope, when non-empty, must be granted to the caller or the
	// request is rejected as forbidden.
	RequiredScope string
}

// NewEchoService creates a new echo service with the provided dependencies.
func NewEchoService(cfg EchoServiceConfig) *EchoService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &EchoService{
		logger:        logger.With(slog.String("component", "app.EchoService")),
		requiredScope: cfg.RequiredScope,
	}
}

// Call echoes the request body back along with the caller identity and
// request metadata carried in the typed context.
func (s *EchoService) Call(
	ctx context.Context,
	p ctxstack.Payload[domain.EchoRequest, apictx.Authed],
) (*domain.EchoReply, error) {
	logger := p.Context.Logger()
	if logger == nil {
		logger = s.logger
	}

	if p.Body.Message == "" {
		return nil, fmt.Errorf("validating input: %w",
			domain.NewValidationError("message", "cannot be empty"))
	}

	auth := p.Context.Authorization()
	if s.requiredScope != "" && !auth.HasScope(s.requiredScope) {
		return nil, fmt.Errorf("checking access: %w",
			domain.NewForbiddenError("echo", "missing scope "+s.requiredScope))
	}

	logger.InfoContext(ctx, "echoing message",
		slog.String("subject", auth.Subject),
		slog.String("request_id", p.Context.RequestID()),
	)

	return &domain.EchoReply{
		Message:   p.Body.Message,
		Subject:   auth.Subject,
		Scopes:    auth.Scopes.List(),
		RequestID: p.Context.RequestID(),
	}, nil
}
