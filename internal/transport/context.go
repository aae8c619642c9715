package transport

import (
	"verbena-be/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartIDHeader carries the stable cart identifier for a session/device.
// The server issues one on first touch and echoes it back so the client
// can persist it.
const CartIDHeader = "X-Cart-ID"

const cartIDKey = "cartID"

// EnsureCartID guarantees every cart request has a cart identifier,
// minting a fresh UUID for first-time shoppers.
func EnsureCartID() gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.GetHeader(CartIDHeader)
		if cartID == "" {
			cartID = uuid.NewString()
		}

		c.Header(CartIDHeader, cartID)
		c.Set(cartIDKey, cartID)
		c.Request = c.Request.WithContext(logger.WithCartID(c.Request.Context(), cartID))

		c.Next()
	}
}

// CartID returns the cart identifier established by EnsureCartID.
func CartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}
