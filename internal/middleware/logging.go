package middleware

import (
	"time"

	"bingo-service/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if id := c.GetString("userID"); id != "" {
			fields["user_id"] = id
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request completed", fields)
			return
		}
		logger.Info("request completed", fields)
	}
}
