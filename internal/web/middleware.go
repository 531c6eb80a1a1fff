package web

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/logger"
)

// RequestLogger assigns a request id and logs the start and end of every request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		log.Debug("request_started",
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      c.Request.Method,
				"path":        c.Request.URL.Path,
				"remote_addr": c.ClientIP(),
				"user_agent":  c.Request.UserAgent(),
			})

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			for _, e := range c.Errors {
				log.Error("request_failed", "Request failed", requestID, e.Err, map[string]interface{}{
					"path": c.Request.URL.Path,
				})
			}
		}

		log.Info("request_completed",
			fmt.Sprintf("%s %s - %d", c.Request.Method, c.Request.URL.Path, status),
			requestID,
			map[string]interface{}{
				"method":      c.Request.Method,
				"path":        c.FullPath(),
				"status_code": status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}

// Recovery turns a panic into the generic 500 response instead of dropping the connection
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered interface{}) {
		WriteError(c, fmt.Errorf("panic: %v", recovered))
	})
}
