// Package handlers provides HTTP handlers for slot composition endpoints
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// ComposePreviewRequest defines the structure for composing a page preview.
type ComposePreviewRequest struct {
	TemplateSlug string `json:"templateSlug" binding:"required"`
	Content      any    `json:"content"`
}

// DecomposeRequest defines the structure for splitting an edited composition.
type DecomposeRequest struct {
	TemplateSlug string `json:"templateSlug" binding:"required"`
	SlotID       string `json:"slotId"`
	Document     any    `json:"document" binding:"required"`
}

// CompositionHandlers contains the compose and decompose HTTP handlers
type CompositionHandlers struct {
	compositionService *services.CompositionService
	serializer         *domainservices.DocumentSerializer
	logger             *logging.ChanneledLogger
	perfTracker        *performance.Tracker
}

// NewCompositionHandlers creates composition handlers with injected dependencies
func NewCompositionHandlers(compositionService *services.CompositionService, serializer *domainservices.DocumentSerializer, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CompositionHandlers {
	return &CompositionHandlers{
		compositionService: compositionService,
		serializer:         serializer,
		logger:             logger,
		perfTracker:        perfTracker,
	}
}

// PostComposePreview handles POST /api/v1/compose/preview - merges page
// content into a template's slot and returns the composed document
func (h *CompositionHandlers) PostComposePreview(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("compose_preview_request")
	defer marker.Complete()

	var req ComposePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	composed, err := h.compositionService.ComposePreview(req.TemplateSlug, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Builder().Info("Compose preview request completed", "templateSlug", req.TemplateSlug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"templateSlug": req.TemplateSlug,
		"document":     h.serializer.Serialize(composed),
	})
}

// PostDecompose handles POST /api/v1/compose/decompose - splits an edited
// composed document back into page content and a template patch
func (h *CompositionHandlers) PostDecompose(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("decompose_request")
	defer marker.Complete()

	var req DecomposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.compositionService.Decompose(req.TemplateSlug, req.SlotID, req.Document)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		// The edited document no longer carries the slot container, so the
		// split cannot be computed.
		h.logger.Builder().Warn("Decompose request failed", "templateSlug", req.TemplateSlug, "error", err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	h.logger.Builder().Info("Decompose request completed", "templateSlug", req.TemplateSlug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"templateSlug":  req.TemplateSlug,
		"content":       h.serializer.Serialize(result.Content),
		"templatePatch": h.serializer.Serialize(result.TemplatePatch),
	})
}
