// File: controllers/co_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-portal/logger"
	"recruit-portal/models"
	"recruit-portal/services"
)

// COController serves domain coordinators: applicant listings, interview
// bookkeeping, scoring and decisions, always scoped to their own domain.
type COController struct {
	Apps     services.ApplicationServiceInterface
	Identity services.IdentityServiceInterface
}

// NewCOController initializes a new instance of COController.
func NewCOController(apps services.ApplicationServiceInterface, identity services.IdentityServiceInterface) *COController {
	return &COController{Apps: apps, Identity: identity}
}

// Applicants returns one page of the coordinator's applicants.
func (cc *COController) Applicants(c *gin.Context) {
	user, ok := currentUser(c, cc.Identity)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := cc.Apps.ApplicantsPage(c.Request.Context(), user, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Summary returns the coordinator's own domain plus aggregate stats.
func (cc *COController) Summary(c *gin.Context) {
	user, ok := currentUser(c, cc.Identity)
	if !ok {
		return
	}

	summary, err := cc.Apps.DomainSummary(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type scoreRequest struct {
	Score int `json:"score" binding:"required"`
}

// Score records an interview score for one application.
func (cc *COController) Score(c *gin.Context) {
	user, ok := currentUser(c, cc.Identity)
	if !ok {
		return
	}

	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Println("Score: malformed request body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Score must be an integer between 1 and 10"})
		return
	}

	if err := cc.Apps.Score(c.Request.Context(), user, c.Param("id"), req.Score); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type interviewRequest struct {
	Score *int `json:"score"` // optional: record a score in the same call
}

// InterviewDone marks an interview complete, optionally with a score.
func (cc *COController) InterviewDone(c *gin.Context) {
	user, ok := currentUser(c, cc.Identity)
	if !ok {
		return
	}

	var req interviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Println("InterviewDone: malformed request body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := cc.Apps.MarkInterviewDone(c.Request.Context(), user, c.Param("id"), req.Score); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type decisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// Decide records an accept or reject decision.
func (cc *COController) Decide(c *gin.Context) {
	user, ok := currentUser(c, cc.Identity)
	if !ok {
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Println("Decide: malformed request body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := cc.Apps.Decide(c.Request.Context(), user, c.Param("id"), models.Status(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
