package middleware

import (
	"time"

	"whatshouldiread/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the structured logger
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := logging.Component("HTTP").Info()
		if status >= 500 {
			event = logging.Component("HTTP").Error()
		} else if status >= 400 {
			event = logging.Component("HTTP").Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
