package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asclegal/crm-api/internal/logger"
)

// Logging writes one structured line per request: method, path, status,
// duration, and the request id set by RequestID.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"requestId", c.GetString("requestID"),
		)
	}
}
