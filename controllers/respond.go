// Package controllers provides HTTP handlers for the recruitment portal.
// File: controllers/respond.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-portal/middleware"
	"recruit-portal/models"
	"recruit-portal/services"
)

// statusFor maps an error kind to its HTTP status code.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindUnauthorized:
		return http.StatusForbidden
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a failed operation as {"error": message}. Messages
// from the service layer are already safe to show.
func respondError(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) && se.Kind == services.KindRateLimited {
		seconds := int(se.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
	}
	c.JSON(statusFor(services.KindOf(err)), gin.H{"error": err.Error()})
}

// currentUser resolves the session claim to the authoritative user row.
// On failure it writes the error response and reports false.
func currentUser(c *gin.Context, identity services.IdentityServiceInterface) (*models.User, bool) {
	user, err := identity.Resolve(c.Request.Context(), middleware.SessionSRNValue(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}
