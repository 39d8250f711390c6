package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		requestID := c.GetString("request_id")

		// The raw client IP never reaches a log line, only its hash is stored
		// with records; here we log method/path/status/latency.
		log.Printf("[%s] %s %s - %d - %v",
			requestID,
			method,
			path,
			statusCode,
			latency,
		)
	}
}
