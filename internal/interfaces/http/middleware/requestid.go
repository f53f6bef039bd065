// Package middleware holds the gin middleware shared by every route:
// request IDs, structured request logging, CORS, and HTTP metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID propagates an incoming X-Request-ID or generates one, and
// echoes it on the response so clients can correlate logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation ID for the current request, or
// an empty string when the RequestID middleware is not installed.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
