package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-api-runtime/authz"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/middleware"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/config"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// instrumentationName is the OpenTelemetry instrumentation scope for this package.
const instrumentationName = "github.com/jsamuelsen/go-api-runtime/internal/adapters/clients"

const (
	// defaultTimeout bounds a single attempt when the config does not set one.
	defaultTimeout = 30 * time.Second

	// statusClassDivisor reduces a status code to its class (2xx, 4xx, 5xx).
	statusClassDivisor = 100

	// jitterFraction spreads backoff by up to ±25% so synchronized callers
	// do not hammer a recovering downstream in lockstep.
	jitterFraction = 0.25

	// jitterSpan maps rand [0,1) onto [-1,1).
	jitterSpan = 2
)

// Connection pool fallbacks when Config.Transport leaves a value unset.
const (
	poolMaxIdle        = 100
	poolMaxIdlePerHost = 10
	poolIdleTimeout    = 90 * time.Second
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the base URL for all requests (e.g., "https://api.example.com").
	BaseURL string

	// ServiceName identifies the downstream service for logging and tracing.
	ServiceName string

	// Timeout is the per-attempt request timeout.
	// Total wall-clock time may exceed this value due to retries and backoff.
	Timeout time.Duration

	// Retry configures retry behavior.
	Retry config.RetryConfig

	// Circuit configures circuit breaker behavior.
	Circuit config.CircuitBreakerConfig

	// Transport tunes the connection pool. Zero values fall back to the
	// package defaults.
	Transport config.TransportConfig

	// AuthFunc is an optional function to inject authentication into requests.
	// It is called for each request attempt (including retries).
	AuthFunc func(*http.Request)

	// PropagateCredentials re-presents the caller's parsed credentials on
	// outgoing requests when the request context carries them. API keys are
	// written to APIKeyHeader.
	PropagateCredentials bool

	// APIKeyHeader is the header name for propagated API key credentials.
	// Defaults to the configured inbound header name.
	APIKeyHeader string

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Client is the outbound half of the relay: it carries a caller's request
// onward to a downstream service with retry, circuit breaker protection,
// OpenTelemetry tracing and metrics, tracking-ID forwarding, and optional
// caller credential propagation.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer
	meter  metric.Meter

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	tracer := otel.Tracer(instrumentationName)
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          tracer,
		meter:           meter,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// newTransport builds the pooled transport from config, falling back to
// the package defaults for unset values.
func newTransport(cfg config.TransportConfig) *http.Transport {
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = poolMaxIdle
	}

	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = poolMaxIdlePerHost
	}

	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = poolIdleTimeout
	}

	return &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}
}

// Do executes an HTTP request with retry, circuit breaker, tracing, and logging.
//
// Retry only works correctly for requests with no body (GET, DELETE) or requests
// where req.GetBody is set so the body can be rewound. For POST/PUT with
// streaming bodies, set GetBody or limit MaxAttempts to 1.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	started := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.observe(ctx, req.Method, 0, time.Since(started), "circuit_open")
		logger.Warn("request blocked by circuit breaker")
		return nil, ErrCircuitOpen
	}

	c.decorateRequest(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.dispatch(ctx, req, logger, started)

	return c.finish(ctx, req, resp, err, span, logger, started)
}

// dispatch runs the attempt loop until a response is accepted, the attempt
// budget is spent, or the context ends during backoff.
func (c *Client) dispatch(ctx context.Context, req *http.Request, logger *slog.Logger, started time.Time) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.Retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, logger, started); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))

		again, attemptErr := c.verdict(resp, err, attempt, logger)
		if again {
			lastErr = attemptErr
			continue
		}

		if attemptErr != nil {
			return nil, attemptErr
		}

		return resp, nil
	}

	return nil, lastErr
}

// pause sleeps for the backoff of the given attempt, abandoning the request
// if the context ends first. Auth is refreshed afterwards since a token may
// have rotated while we slept.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger, started time.Time) error {
	delay := c.backoffFor(attempt)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", delay),
	)

	select {
	case <-ctx.Done():
		c.cb.RecordFailure()
		c.observe(ctx, req.Method, 0, time.Since(started), "context_canceled")
		return ctx.Err()
	case <-time.After(delay):
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}

	return nil
}

// verdict decides whether an attempt's outcome warrants another try.
// Transport-level failures and 5xx responses are retried; everything else
// is final. A retried 5xx response is closed here because the caller will
// never see it.
func (c *Client) verdict(resp *http.Response, err error, attempt int, logger *slog.Logger) (retryAgain bool, _ error) {
	if err != nil {
		if retryable(err) {
			logger.Debug("request failed with retryable error",
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)
			return true, err
		}
		return false, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Debug("request failed with server error",
			slog.Int("attempt", attempt+1),
			slog.Int("status", resp.StatusCode),
		)
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", slog.Any("error", closeErr))
		}
		return true, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return false, nil
}

// finish settles the circuit breaker, span, metrics, and log line for the
// request as a whole, and wraps terminal failures in ErrMaxRetriesExceeded.
func (c *Client) finish(ctx context.Context, req *http.Request, resp *http.Response, lastErr error, span trace.Span, logger *slog.Logger, started time.Time) (*http.Response, error) {
	duration := time.Since(started)

	if lastErr != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, lastErr.Error())
		c.observe(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", lastErr),
		)
		return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusClass := fmt.Sprintf("%dxx", resp.StatusCode/statusClassDivisor)
	c.observe(ctx, req.Method, resp.StatusCode, duration, statusClass)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.requestURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.requestURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// decorateRequest stamps tracking IDs, propagated caller credentials, and
// configured auth onto the outgoing request.
func (c *Client) decorateRequest(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	// Re-present the caller's credentials on the outgoing request.
	if c.cfg.PropagateCredentials {
		if data, ok := authz.AuthDataFromContext(ctx); ok {
			header := c.cfg.APIKeyHeader
			if header == "" {
				header = config.DefaultAPIKeyHeader
			}

			authz.SetHeader(req.Header, data, header)
		}
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

// requestURL joins the configured base URL with a request path.
func (c *Client) requestURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// backoffFor returns the jittered exponential backoff for an attempt,
// capped at the configured maximum interval.
func (c *Client) backoffFor(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))

	if backoff > float64(c.cfg.Retry.MaxInterval) {
		backoff = float64(c.cfg.Retry.MaxInterval)
	}

	spread := rand.Float64()*jitterSpan - 1 //nolint:gosec // No need for crypto-grade randomness
	backoff += backoff * jitterFraction * spread

	return time.Duration(backoff)
}

// observe records the request counter and duration histogram.
func (c *Client) observe(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// retryable reports whether a transport error is worth another attempt.
// Context cancellation and deadline expiry are terminal; network timeouts
// and connection-level failures are not.
func retryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
