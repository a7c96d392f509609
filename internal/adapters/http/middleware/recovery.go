package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-api-runtime/logging"
)

// Recovery converts a panic anywhere below it into a logged stack trace
// and a 500 INTERNAL envelope. Mount it first; everything after it in the
// pipeline, chain wrappers and services included, is covered.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return RecoveryWithWriter(logger, nil)
}

// RecoveryWithWriter is Recovery with a hook that receives the panic value
// and raw stack, for tests or crash reporters that want the stack
// somewhere besides the log. The logger covers panics that fire before the
// logging middleware has stored a request logger in the context.
func RecoveryWithWriter(logger *slog.Logger, stackHandler func(err any, stack []byte)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			stack := debug.Stack()
			if stackHandler != nil {
				stackHandler(r, stack)
			}

			var traceID string
			if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
				traceID = span.SpanContext().TraceID().String()
			}

			logging.FromContextOr(c.Request.Context(), logger).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(stack)),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			errResp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
			errResp.TraceID = traceID
			c.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
		}()

		c.Next()
	}
}
