// File: controllers/student_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-portal/logger"
	"recruit-portal/services"
)

// StudentController serves the applicant-facing operations: browsing
// domains, applying, withdrawing, and checking status.
type StudentController struct {
	Apps     services.ApplicationServiceInterface
	Identity services.IdentityServiceInterface
}

// NewStudentController initializes a new instance of StudentController.
func NewStudentController(apps services.ApplicationServiceInterface, identity services.IdentityServiceInterface) *StudentController {
	return &StudentController{Apps: apps, Identity: identity}
}

// ListDomains returns every recruitment domain. Public: prospective
// applicants browse before logging in.
func (sc *StudentController) ListDomains(c *gin.Context) {
	domains, err := sc.Apps.Domains(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

// Settings exposes the freeze/publish flags so the UI can grey things out.
func (sc *StudentController) Settings(c *gin.Context) {
	settings, err := sc.Apps.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type applyRequest struct {
	DomainID string `json:"domain_id" binding:"required"`
}

// Apply creates an application for the logged-in student.
func (sc *StudentController) Apply(c *gin.Context) {
	user, ok := currentUser(c, sc.Identity)
	if !ok {
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Println("Apply: malformed request body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain"})
		return
	}

	if err := sc.Apps.Apply(c.Request.Context(), user, req.DomainID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Withdraw deletes the student's application for the domain in the path.
func (sc *StudentController) Withdraw(c *gin.Context) {
	user, ok := currentUser(c, sc.Identity)
	if !ok {
		return
	}

	if err := sc.Apps.Withdraw(c.Request.Context(), user, c.Param("domainID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MyApplications lists the student's applications, masked while results
// are unpublished.
func (sc *StudentController) MyApplications(c *gin.Context) {
	user, ok := currentUser(c, sc.Identity)
	if !ok {
		return
	}

	apps, err := sc.Apps.MyApplications(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}
