// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stockadoodle/backend/internal/services"
)

// ActivityLogMiddleware records mutating API calls in the activity log so
// desktop clients and admins can review what changed and who changed it.
// Reads and health checks are skipped.
func ActivityLogMiddleware(activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		userID, _ := c.Get("user_id")
		var userUUID *uuid.UUID
		if userID != nil {
			if uid, ok := userID.(string); ok {
				if parsed, err := uuid.Parse(uid); err == nil {
					userUUID = &parsed
				}
			}
		}

		// Only record calls that reached the application; rejected auth
		// attempts and rate-limited requests are not API operations.
		if c.Writer.Status() < 400 {
			go activity.LogAPIOperation(c.Request.Method, c.Request.URL.Path, c.ClientIP(), userUUID)
		}

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
			"user_id":  userID,
		}).Info("Request processed")
	}
}
