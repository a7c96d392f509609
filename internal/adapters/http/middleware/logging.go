package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-api-runtime/logging"
)

// Logging emits one "request started" and one "request completed" line per
// request through the context logger, which at this point in the pipeline
// already carries the request and correlation IDs. Operational endpoints
// under /-/ are never logged.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return LoggingWithSkipPaths(logger, nil)
}

// LoggingWithSkipPaths is Logging with additional exact paths excluded.
func LoggingWithSkipPaths(fallback *slog.Logger, skipPaths []string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, skipped := skip[path]; skipped || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		logger := logging.FromContext(c.Request.Context())
		if logger == nil {
			logger = fallback
		}

		start := time.Now()
		logger.Info("request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger.Log(c.Request.Context(), completionLevel(status), "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}

// completionLevel maps the response status onto a log level: server faults
// are errors, client faults warnings, the rest info.
func completionLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
