// Package middleware file: middleware/metrics.go
package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"recruit-portal/metrics"
)

// RequestMetrics counts handled requests by method, route and status.
// FullPath keeps the label cardinality bounded to registered routes.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
