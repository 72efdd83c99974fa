// Package middleware file: middleware/headers.go
package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders sets the usual defensive response headers on everything.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		c.Next()
	}
}
