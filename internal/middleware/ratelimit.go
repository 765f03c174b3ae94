package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/ratelimit"
)

// RateLimit allows limit requests per client IP and window on the routes it wraps.
func RateLimit(limiter ratelimit.Limiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := scope + ":" + c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key, limit, window) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.String(http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}
