package http

import (
	"context"

	"github.com/jsamuelsen/go-api-runtime/authz"
	"github.com/jsamuelsen/go-api-runtime/chain"
	"github.com/jsamuelsen/go-api-runtime/ctxstack"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/handlers"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/middleware"
	"github.com/jsamuelsen/go-api-runtime/internal/apictx"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/config"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// AuthedService is the inner service shape the authenticated chains wrap:
// it receives the request body together with a verified caller context.
type AuthedService = chain.Service[ctxstack.Payload[domain.EchoRequest, apictx.Authed], *domain.EchoReply]

// AuthEnricher produces the caller's authorization from the ambient context
// and whatever credentials the transport middleware parsed.
type AuthEnricher = chain.Enricher[domain.EchoRequest, apictx.Ambient, authz.Authorization]

// ambientContext materializes the ambient context from the request context
// the gin middleware populated: the request ID and the enriched logger.
func ambientContext(ctx context.Context, _ domain.EchoRequest) apictx.Ambient {
	return apictx.NewAmbient(
		middleware.RequestIDFromContext(ctx),
		logging.FromContext(ctx),
	)
}

// NewCredentialEnricher returns the authorization enricher for the
// configured auth mode: header-credential verification when enabled, a
// fixed anonymous grant otherwise.
func NewCredentialEnricher(cfg config.AuthConfig, verifier chain.Verifier) AuthEnricher {
	if !cfg.Enabled {
		subject := cfg.AnonymousSubject
		if subject == "" {
			subject = "anonymous"
		}

		return chain.AllowAll[domain.EchoRequest, apictx.Ambient](subject)
	}

	return chain.VerifyCredentials[domain.EchoRequest, apictx.Ambient](
		chain.AuthDataFromContext, verifier)
}

// NewAuthedChain assembles the full wrapper chain around an authenticated
// service: the outer wrapper materializes the ambient context, the next one
// verifies credentials and pushes the authorization, then the inner service
// runs with the complete typed context.
func NewAuthedChain(inner AuthedService, enrich AuthEnricher) handlers.EchoService {
	authed := chain.NewExtend[*domain.EchoReply](
		inner,
		enrich,
		apictx.WithAuthorization,
		"authorization",
	)

	return chain.NewAddContext[*domain.EchoReply](authed, ambientContext)
}

// NewPingChain mounts a context-free service behind a context dropper, so
// the same middleware pipeline and context materialization serve it without
// the handler ever seeing the typed context.
func NewPingChain() handlers.EchoService {
	pong := chain.Func[domain.EchoRequest, *domain.EchoReply](
		func(_ context.Context, req domain.EchoRequest) (*domain.EchoReply, error) {
			return &domain.EchoReply{Message: req.Message}, nil
		})

	dropped := chain.NewDropContext[domain.EchoRequest, *domain.EchoReply, apictx.Ambient](pong)

	return chain.NewAddContext[*domain.EchoReply](dropped, ambientContext)
}
