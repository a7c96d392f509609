package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-api-runtime/logging"
)

const (
	// HeaderRequestID carries the per-request ID on the wire, inbound
	// and outbound.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin.Context storage key.
	ContextKeyRequestID = "request_id"
)

// RequestID assigns each request its ID: taken from the inbound
// X-Request-ID header when the caller sent one, otherwise a fresh UUID.
// The ID is echoed on the response, stored in both context layers, and
// folded into the context logger. The ambient context materializer reads
// it from here.
func RequestID() gin.HandlerFunc {
	return trackID(trackingID{
		header:    HeaderRequestID,
		ginKey:    ContextKeyRequestID,
		logEnrich: logging.WithRequestID,
		ctxStore:  ContextWithRequestID,
	})
}

// GetRequestID reads the request ID from the gin.Context, "" when absent.
func GetRequestID(c *gin.Context) string {
	return ginString(c, ContextKeyRequestID)
}

// MustGetRequestID is GetRequestID with "unknown" standing in for absent,
// for log fields that should never be empty.
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}
