// Package middleware file: middleware/ratelimit.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"recruit-portal/logger"
	"recruit-portal/metrics"
	"recruit-portal/ratelimit"
)

const authAction = "auth"

// AuthRateLimit caps how often one client IP may hit the auth routes.
// Keyed by IP rather than session because these routes serve the not yet
// logged in.
func AuthRateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, retryAfter := limiter.Allow(authAction, ip, ratelimit.AuthLimit, ratelimit.Window)
		if !ok {
			metrics.RateLimitRejections.WithLabelValues(authAction).Inc()
			logger.Warn.Printf("AuthRateLimit: throttled %s", ip)
			seconds := int(retryAfter.Round(0).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests."})
			c.Abort()
			return
		}
		c.Next()
	}
}
