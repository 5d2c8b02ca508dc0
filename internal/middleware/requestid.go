package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the canonical request ID.
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID back to the client.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a fresh server-generated UUID. An
// incoming X-Request-ID is never adopted as the canonical ID (clients
// could collide or forge it); it is kept as a separate correlation
// field for log searches.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			c.Set("client_request_id", clientID)
			log.WithFields(logrus.Fields{
				RequestIDKey:        id,
				"client_request_id": clientID,
			}).Debug("mapped client request id")
		}

		c.Next()
	}
}
