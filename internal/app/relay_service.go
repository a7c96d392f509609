package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/go-api-runtime/ctxstack"
	"github.com/jsamuelsen/go-api-runtime/internal/apictx"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
	"github.com/jsamuelsen/go-api-runtime/internal/ports"
)

// RelayService forwards validated requests to a downstream deployment of
// this service. The caller's credentials travel on the request context, so
// the relay adapter can re-present them downstream and the next hop verifies
// them independently.
type RelayService struct {
	relay  ports.EchoRelay
	logger *slog.Logger
}

// NewRelayService creates a relay service backed by the given port.
func NewRelayService(relay ports.EchoRelay, logger *slog.Logger) *RelayService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RelayService{
		relay:  relay,
		logger: logger.With(slog.String("component", "app.RelayService")),
	}
}

// Call validates the request and forwards it downstream.
func (s *RelayService) Call(
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

	logger.InfoContext(ctx, "relaying message downstream",
		slog.String("subject", p.Context.Authorization().Subject),
	)

	reply, err := s.relay.Relay(ctx, p.Body)
	if err != nil {
		return nil, fmt.Errorf("relaying echo: %w", err)
	}

	return reply, nil
}
