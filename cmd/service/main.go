// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/clients"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/clients/acl"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/handlers"
	"github.com/jsamuelsen/go-api-runtime/internal/app"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/config"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/telemetry"
	"github.com/jsamuelsen/go-api-runtime/internal/ports"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.Bool("auth_enabled", cfg.Auth.Enabled),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create credential verifier and the echo service
	verifier := app.NewStaticVerifier(cfg.Auth.Issuer, staticCredentials(&cfg.Auth))
	enrich := http.NewCredentialEnricher(cfg.Auth, verifier)

	echoService := app.NewEchoService(app.EchoServiceConfig{
		Logger:        logger,
		RequiredScope: cfg.Auth.RequiredScope,
	})

	// 7. Optionally create the downstream relay (ACL pattern)
	relayChain, err := setupRelay(cfg, logger, healthRegistry, enrich)
	if err != nil {
		return err
	}

	// 8. Create handlers with the assembled wrapper chains
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	echoHandler := handlers.NewEchoHandler(
		http.NewAuthedChain(echoService, enrich),
		http.NewPingChain(),
		relayChain,
		metrics,
	)

	// 9. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 10. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:        logger,
		AuthConfig:    cfg.Auth,
		AppConfig:     &cfg.App,
		HealthHandler: healthHandler,
		EchoHandler:   echoHandler,
		Timeout:       http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 11. Start server and wait for shutdown
	return serve(ctx, logger, server, cfg.Server.ShutdownTimeout)
}

// staticCredentials converts the configured credential entries to the
// verifier's representation.
func staticCredentials(cfg *config.AuthConfig) []app.Credential {
	creds := make([]app.Credential, 0, len(cfg.Credentials))
	for _, c := range cfg.Credentials {
		creds = append(creds, app.Credential{
			Subject:   c.Subject,
			APIKey:    c.APIKey,
			Username:  c.Username,
			Password:  c.Password,
			Token:     c.Token,
			Scopes:    c.Scopes,
			AllScopes: c.AllScopes,
		})
	}

	return creds
}

// setupRelay builds the downstream relay chain when a downstream deployment
// is configured. Returns nil when relaying is disabled, which leaves the
// relay route unregistered.
func setupRelay(
	cfg *config.Config,
	logger *slog.Logger,
	healthRegistry ports.HealthRegistry,
	enrich http.AuthEnricher,
) (handlers.EchoService, error) {
	if !cfg.Client.Downstream.Enabled {
		return nil, nil
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:              cfg.Client.Downstream.BaseURL,
		ServiceName:          cfg.Client.Downstream.Name,
		Timeout:              cfg.Client.Timeout,
		Retry:                cfg.Client.Retry,
		Circuit:              cfg.Client.CircuitBreaker,
		Transport:            cfg.Client.Transport,
		PropagateCredentials: true,
		APIKeyHeader:         cfg.Auth.APIKeyHeader,
		Logger:               logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating downstream client: %w", err)
	}

	relayClient := acl.NewRelayClient(acl.RelayClientConfig{
		Client:      httpClient,
		ServiceName: cfg.Client.Downstream.Name,
		Logger:      logger,
	})

	if err := healthRegistry.Register(relayClient); err != nil {
		return nil, fmt.Errorf("registering downstream health check: %w", err)
	}

	relayService := app.NewRelayService(relayClient, logger)

	return http.NewAuthedChain(relayService, enrich), nil
}

// serve runs the HTTP server until it fails or a shutdown signal arrives,
// then drains in-flight requests within the configured timeout.
func serve(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := server.Start()
	logger.Info("server started", slog.String("addr", server.Addr()))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err, ok := <-serverErr; ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			// Server failed, nothing left to shut down gracefully
			return nil

		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		}

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		logger.Info("initiating graceful shutdown",
			slog.Duration("timeout", shutdownTimeout),
		)

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}

		logger.Info("shutdown complete")

		return nil
	})

	return g.Wait()
}
