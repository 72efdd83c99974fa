// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"recruit-portal/logger"
)

// Session keys for the client-visible claim. These are presentation hints
// for route gating only; services always re-verify role and ownership
// against the database.
const (
	SessionSRN   = "srn"
	SessionName  = "name"
	SessionEmail = "email"
	SessionRole  = "role"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the user is logged in. Requests without a session
// claim are bounced into the OAuth flow, carrying the original path so the
// callback can land them back where they started.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	srn := session.Get(SessionSRN)

	if srn == nil {
		logger.Warn.Printf("AuthRequired: no session for %s, redirecting to login", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/auth/login?returnUrl="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}

// SessionSRNValue returns the SRN claim for the current request, or "".
func SessionSRNValue(c *gin.Context) string {
	srn, _ := sessions.Default(c).Get(SessionSRN).(string)
	return srn
}
