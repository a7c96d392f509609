package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/handlers"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/middleware"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/config"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds API requests when RouterConfig.Timeout is unset.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig carries everything SetupRouter needs to wire the engine.
type RouterConfig struct {
	Logger *slog.Logger

	// AuthConfig controls credential parsing on inbound requests.
	AuthConfig config.AuthConfig

	AppConfig *config.AppConfig

	HealthHandler *handlers.HealthHandler
	EchoHandler   *handlers.EchoHandler

	// Timeout is the per-request deadline for the /api/v1 group.
	Timeout time.Duration
}

// SetupRouter wires middleware and routes onto the engine. The global
// middleware order matters: recovery catches everything downstream of it,
// the tracking IDs must exist before tracing and logging can pick them up,
// and credential parsing runs last so its log lines carry the IDs.
//
// Health endpoints under /-/ take no credentials and no timeout; the
// /api/v1 group gets the request deadline, and credential verification
// happens inside the service chains rather than here.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
		middleware.Credentials(cfg.AuthConfig),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.EchoHandler != nil {
		cfg.EchoHandler.RegisterEchoRoutes(apiV1)
	}
}

// SetupMinimalRouter wires only panic recovery, request IDs, and health
// endpoints. Used by tests and probe-only deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig assembles a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg config.AuthConfig,
	healthHandler *handlers.HealthHandler,
	echoHandler *handlers.EchoHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AuthConfig:    authCfg,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		EchoHandler:   echoHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
