package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// Timeout puts a deadline on the request context and answers 504 with a
// TIMEOUT envelope when it expires before the handler finishes. The
// deadline flows through the typed chain into the app services and the
// outbound client; a handler that ignores ctx.Done() keeps running, but
// its response is discarded.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return TimeoutWithSkipPaths(timeout, nil)
}

// TimeoutWithSkipPaths is Timeout with exact paths exempted, for endpoints
// that legitimately run long.
func TimeoutWithSkipPaths(timeout time.Duration, skipPaths []string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, skipped := skip[c.Request.URL.Path]; skipped {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				respondTimeout(c, timeout)
			}
		}
	}
}

// SimpleTimeout only sets the context deadline and trusts handlers to
// honor it. No watchdog goroutine, no forced 504.
func SimpleTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func respondTimeout(c *gin.Context, timeout time.Duration) {
	var traceID string
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		traceID = span.SpanContext().TraceID().String()
	}

	logging.FromContext(c.Request.Context()).Warn("request timeout",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Duration("timeout", timeout),
		slog.String("trace_id", traceID),
	)

	if c.Writer.Written() {
		c.Abort()
		return
	}

	errResp := dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded")
	errResp.TraceID = traceID
	c.AbortWithStatusJSON(dto.HTTPStatusFromCode(dto.ErrorCodeTimeout), errResp)
}
