// Package handlers provides HTTP handlers for admin analysis endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// AdminHandlers contains admin-only analysis HTTP handlers
type AdminHandlers struct {
	integrityService *services.IntegrityService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(integrityService *services.IntegrityService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AdminHandlers {
	return &AdminHandlers{
		integrityService: integrityService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetIntegrityAnalysis handles GET /api/v1/admin/integrity - reports orphan
// menus and broken internal links across the site
func (h *AdminHandlers) GetIntegrityAnalysis(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("integrity_analysis_request")
	defer marker.Complete()

	homeSlug := c.DefaultQuery("homeSlug", "home")
	report, err := h.integrityService.Analyze(homeSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Integrity analysis completed",
		"orphanMenus", len(report.OrphanMenus),
		"pagesWithBrokenLinks", len(report.BrokenLinks),
		"duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, report)
}
