// Package acl implements the Anti-Corruption Layer for downstream services.
// Adapters here translate between downstream wire formats and domain models,
// so external representations and error envelopes never leak past this
// boundary.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/clients"
	"github.com/jsamuelsen/go-api-runtime/internal/domain"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// relay endpoint paths on the downstream deployment.
const (
	echoPath   = "/api/v1/echo"
	healthPath = "/-/live"
)

// RelayClientConfig contains configuration for the relay client.
type RelayClientConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL should
	// point at the downstream deployment.
	Client *clients.Client

	// ServiceName identifies the downstream deployment in errors and
	// health checks.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// RelayClient forwards echo requests to a downstream deployment of this
// service. It implements ports.EchoRelay. The HTTP client re-presents the
// caller's credentials from the request context, so the downstream
// deployment verifies the same identity that was verified here.
type RelayClient struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewRelayClient creates a new relay client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewRelayClient(cfg RelayClientConfig) *RelayClient {
	if cfg.Client == nil {
		panic("RelayClient: Client is required")
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "echo-relay"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RelayClient{
		client:      cfg.Client,
		serviceName: serviceName,
		logger:      logger,
	}
}

// echoWireRequest is the downstream request body. Internal to the ACL.
type echoWireRequest struct {
	Message string `json:"message"`
}

// echoWireResponse is the downstream response body. Internal to the ACL.
type echoWireResponse struct {
	Message   string   `json:"message"`
	Subject   string   `json:"subject,omitempty"`
	Scopes    []string `json:"scopes,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// Relay forwards the echo request downstream and translates the reply.
// Implements ports.EchoRelay.
func (c *RelayClient) Relay(ctx context.Context, req domain.EchoRequest) (*domain.EchoReply, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting relay", slog.String("path", echoPath))
	c.logger.DebugContext(ctx, "relaying echo downstream")

	body, err := json.Marshal(echoWireRequest{Message: req.Message})
	if err != nil {
		return nil, fmt.Errorf("encoding relay request: %w", err)
	}

	resp, err := c.client.Post(ctx, echoPath, bytes.NewReader(body))
	if err != nil {
		return nil, MapClientError(err, c.serviceName, "relay echo")
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "relay complete",
		slog.String("path", echoPath),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, MapHTTPError(resp, c.serviceName, "relay echo")
	}

	var wire echoWireResponse

	err = json.NewDecoder(resp.Body).Decode(&wire)
	if err != nil {
		return nil, fmt.Errorf("decoding relay response: %w", err)
	}

	return c.translateToDomain(&wire), nil
}

// translateToDomain converts the downstream response to a domain reply.
// This isolates the domain from downstream wire format changes.
func (c *RelayClient) translateToDomain(wire *echoWireResponse) *domain.EchoReply {
	return &domain.EchoReply{
		Message:   wire.Message,
		Subject:   wire.Subject,
		Scopes:    wire.Scopes,
		RequestID: wire.RequestID,
	}
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *RelayClient) Name() string {
	return c.serviceName
}

// Check verifies connectivity by probing the downstream liveness endpoint.
// Implements ports.HealthChecker.
func (c *RelayClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, healthPath)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downstream returned status %d", resp.StatusCode)
	}

	return nil
}
