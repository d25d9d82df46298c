package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger tags every request with an id and logs method, path,
// status and latency once the handler chain finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if userID := c.GetInt64("user_id"); userID != 0 {
			entry = entry.WithField("user_id", userID)
		}

		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
		} else {
			entry.Info("request")
		}
	}
}
