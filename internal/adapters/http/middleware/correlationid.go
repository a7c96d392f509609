package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-api-runtime/logging"
)

const (
	// HeaderCorrelationID tracks a whole transaction across service hops,
	// unlike the per-request X-Request-ID.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin.Context storage key.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID propagates the transaction-wide ID: reused from the
// inbound X-Correlation-ID header when an upstream hop set it, minted here
// when this service is the transaction origin. Stored, echoed, and logged
// the same way as the request ID; the outbound client forwards it on relay
// calls.
func CorrelationID() gin.HandlerFunc {
	return trackID(trackingID{
		header:    HeaderCorrelationID,
		ginKey:    ContextKeyCorrelationID,
		logEnrich: logging.WithCorrelationID,
		ctxStore:  ContextWithCorrelationID,
	})
}

// GetCorrelationID reads the correlation ID from the gin.Context, "" when
// absent.
func GetCorrelationID(c *gin.Context) string {
	return ginString(c, ContextKeyCorrelationID)
}

// MustGetCorrelationID is GetCorrelationID with "unknown" standing in for
// absent.
func MustGetCorrelationID(c *gin.Context) string {
	if id := GetCorrelationID(c); id != "" {
		return id
	}

	return "unknown"
}
