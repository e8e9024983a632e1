package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier for log correlation. An
// identifier supplied by an upstream proxy is kept; otherwise a fresh one is
// generated. The identifier is echoed back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one line per request: id, client, verb, path, status,
// response size and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id, _ := c.Get("request_id")
		log.Printf("[%s] %s %s %s -> %d %dB %s",
			id,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start),
		)
	}
}

// Recovery turns panics into the API's flat 500 payload, logging the panic
// value under the request id instead of gin's default plain-text dump.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		id, _ := c.Get("request_id")
		log.Printf("[%s] panic recovered: %v", id, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Internal server error. Try again in a few moments."})
	})
}
