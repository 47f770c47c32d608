// Package handlers provides HTTP handlers for database status endpoints
package handlers

import (
	"net/http"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// DBHandlers contains database status HTTP handlers
type DBHandlers struct {
	dbService   *services.DBService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewDBHandlers creates database handlers with injected dependencies
func NewDBHandlers(dbService *services.DBService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DBHandlers {
	return &DBHandlers{
		dbService:   dbService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetDatabaseStatus handles GET /api/v1/db/status - database health check
func (h *DBHandlers) GetDatabaseStatus(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_database_status_request")
	defer marker.Complete()

	status := h.dbService.CheckStatus()
	status["connections"] = h.dbService.GetConnectionStats()

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, status)
}
