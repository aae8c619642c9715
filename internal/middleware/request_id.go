package middleware

import (
	"verbena-be/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier, generating one when
// the client did not send its own, and threads it into the request
// context for structured logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
