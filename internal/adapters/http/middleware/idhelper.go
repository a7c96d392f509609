package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// trackingID describes one tracking identifier: the wire header it rides on,
// the gin.Context key it is parked under, and the hooks that fold it into the
// request context (logger enrichment and raw storage for the context
// materializers and the outbound client).
type trackingID struct {
	header    string
	ginKey    string
	logEnrich func(ctx context.Context, id string) context.Context
	ctxStore  func(ctx context.Context, id string) context.Context
}

// trackID is the shared middleware behind RequestID and CorrelationID.
// It adopts the caller's inbound value or mints a UUID, echoes it on the
// response, and threads it through both context layers.
func trackID(id trackingID) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.GetHeader(id.header)
		if value == "" {
			value = uuid.New().String()
		}

		c.Set(id.ginKey, value)
		c.Header(id.header, value)

		ctx := c.Request.Context()
		if id.logEnrich != nil {
			ctx = id.logEnrich(ctx, value)
		}

		if id.ctxStore != nil {
			ctx = id.ctxStore(ctx, value)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ginString reads a string value parked in the gin.Context, "" when absent
// or not a string.
func ginString(c *gin.Context, key string) string {
	if v, exists := c.Get(key); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}
