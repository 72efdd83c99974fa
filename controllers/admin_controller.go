// Package controllers provides HTTP handlers for various admin operations.
// File: controllers/admin_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-portal/logger"
	"recruit-portal/services"
)

// ---------------- Admin Controller ----------------

// AdminController provides super-admin operations: the freeze/publish
// workflow, reporting, exports and domain link upkeep.
type AdminController struct {
	Admin    services.AdminServiceInterface
	Identity services.IdentityServiceInterface
}

// NewAdminController initializes a new instance of AdminController.
func NewAdminController(admin services.AdminServiceInterface, identity services.IdentityServiceInterface) *AdminController {
	return &AdminController{Admin: admin, Identity: identity}
}

// ---------------- freeze / publish workflow ----------------

// Freeze blocks all further application mutations.
func (ac *AdminController) Freeze(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	if err := ac.Admin.Freeze(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unfreeze re-opens application mutations.
func (ac *AdminController) Unfreeze(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	if err := ac.Admin.Unfreeze(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Publish freezes and reveals decisions to students in one step.
func (ac *AdminController) Publish(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	if err := ac.Admin.Publish(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------------- reporting ----------------

// Overview returns portal-wide totals and per-domain counts.
func (ac *AdminController) Overview(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	overview, err := ac.Admin.OverviewStats(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// MultiDomain lists students accepted into two or more domains.
func (ac *AdminController) MultiDomain(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	students, err := ac.Admin.MultiDomainStudents(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// ---------------- domain upkeep ----------------

type whatsappRequest struct {
	Link string `json:"link"`
}

// UpdateWhatsAppLink sets or clears a domain's group link.
func (ac *AdminController) UpdateWhatsAppLink(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}

	var req whatsappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn.Println("UpdateWhatsAppLink: malformed request body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := ac.Admin.UpdateWhatsAppLink(c.Request.Context(), user, c.Param("id"), req.Link); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// WhatsAppQR renders the domain's group link as a PNG.
func (ac *AdminController) WhatsAppQR(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil {
		size = 256
	}

	png, err := ac.Admin.WhatsAppQR(c.Request.Context(), user, c.Param("id"), size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ---------------- exports ----------------

// ExportCSV downloads every application, unmasked.
func (ac *AdminController) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	out, err := ac.Admin.ExportCSV(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="applications.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(out))
}

// ExportXLSX downloads the same projection as a workbook.
func (ac *AdminController) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c, ac.Identity)
	if !ok {
		return
	}
	out, err := ac.Admin.ExportXLSX(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="applications.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
