// Package controllers file: controllers/page_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-portal/logger"
	"recruit-portal/metrics"
	"recruit-portal/store"
)

// PageController serves the non-domain endpoints.
type PageController struct {
	Store store.Store
}

// NewPageController initializes a new instance of PageController.
func NewPageController(st store.Store) *PageController {
	return &PageController{Store: st}
}

// Health answers load-balancer checks with a DB ping.
func (pc *PageController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
	defer cancel()

	t0 := time.Now()
	if err := pc.Store.Ping(ctx); err != nil {
		logger.Error.Println("Health: db ping failed:", err)
		c.String(http.StatusServiceUnavailable, "db not ok")
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	c.String(http.StatusOK, "OK")
}

// Root greets whoever lands on /.
func (pc *PageController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "recruit-portal"})
}
