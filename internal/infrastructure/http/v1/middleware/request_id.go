package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"varotra/pkg/logger"
)

// HeaderRequestID carries the request identifier.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns each request an identifier and binds a logger
// carrying it to the request context.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.WithLogger(c.Request.Context(), log.With("request_id", requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
