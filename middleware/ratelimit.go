package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Limiter counts requests per key in a fixed window.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, maxRequests int, window time.Duration) (bool, int, error)
}

// RateLimit limits requests per authenticated user, falling back to the client IP.
// The limiter failing open keeps ownership toggles working while Redis is down.
func RateLimit(limiter Limiter, scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || maxRequests <= 0 {
			c.Next()
			return
		}

		subject := auth.UserID(c)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}

		allowed, remaining, err := limiter.CheckRateLimit(c.Request.Context(), scope+":"+subject, maxRequests, window)
		if err != nil {
			utils.Log.WithFields(logrus.Fields{
				"scope":   scope,
				"subject": subject,
				"error":   err.Error(),
			}).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Window", window.String())

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
