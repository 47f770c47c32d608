// Package handlers provides HTTP handlers for block template endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// CreateBlockTemplateRequest defines the structure for creating a block template.
type CreateBlockTemplateRequest struct {
	Title      string `json:"title" binding:"required"`
	Category   string `json:"category"`
	Definition any    `json:"definition"`
}

// UpdateBlockTemplateRequest defines the structure for updating a block template.
type UpdateBlockTemplateRequest struct {
	Title      string `json:"title" binding:"required"`
	Category   string `json:"category"`
	Definition any    `json:"definition"`
}

// BlockTemplateHandlers contains all block template HTTP handlers
type BlockTemplateHandlers struct {
	blockTemplateService *services.BlockTemplateService
	parser               *domainservices.DocumentParser
	logger               *logging.ChanneledLogger
	perfTracker          *performance.Tracker
}

// NewBlockTemplateHandlers creates block template handlers with injected dependencies
func NewBlockTemplateHandlers(blockTemplateService *services.BlockTemplateService, parser *domainservices.DocumentParser, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *BlockTemplateHandlers {
	return &BlockTemplateHandlers{
		blockTemplateService: blockTemplateService,
		parser:               parser,
		logger:               logger,
		perfTracker:          perfTracker,
	}
}

// GetAllBlockTemplates returns all block templates grouped for the editor palette
func (h *BlockTemplateHandlers) GetAllBlockTemplates(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_all_block_templates_request")
	defer marker.Complete()

	blockTemplates, err := h.blockTemplateService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Get all block templates request completed", "count", len(blockTemplates), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"blockTemplates": blockTemplates,
		"count":          len(blockTemplates),
	})
}

// GetBlockTemplateByID returns a specific block template by ID
func (h *BlockTemplateHandlers) GetBlockTemplateByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_block_template_by_id_request")
	defer marker.Complete()

	blockTemplate, err := h.blockTemplateService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if blockTemplate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "block template not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, blockTemplate)
}

// InstantiateBlockTemplate returns a fresh copy of the block template's nodes
// with new ids, ready to insert into a page document
func (h *BlockTemplateHandlers) InstantiateBlockTemplate(c *gin.Context) {
	marker := h.perfTracker.StartOperation("instantiate_block_template_request")
	defer marker.Complete()

	blockTemplateID := c.Param("id")
	nodes, err := h.blockTemplateService.Instantiate(blockTemplateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"blockTemplateId": blockTemplateID,
		"nodes":           nodes,
	})
}

// CreateBlockTemplate creates a new block template
func (h *BlockTemplateHandlers) CreateBlockTemplate(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_block_template_request")
	defer marker.Complete()

	var req CreateBlockTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	blockTemplate := &content.BlockTemplateNode{
		Title:    req.Title,
		Category: req.Category,
	}
	if req.Definition != nil {
		blockTemplate.Definition = h.parser.Parse(req.Definition)
	}

	if err := h.blockTemplateService.Create(blockTemplate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Create block template request completed", "blockTemplateId", blockTemplate.ID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{
		"message":         "block template created successfully",
		"blockTemplateId": blockTemplate.ID,
	})
}

// UpdateBlockTemplate updates an existing block template
func (h *BlockTemplateHandlers) UpdateBlockTemplate(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_block_template_request")
	defer marker.Complete()

	var req UpdateBlockTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	blockTemplate := &content.BlockTemplateNode{
		ID:       c.Param("id"),
		Title:    req.Title,
		Category: req.Category,
	}
	if req.Definition != nil {
		blockTemplate.Definition = h.parser.Parse(req.Definition)
	}

	if err := h.blockTemplateService.Update(blockTemplate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message":         "block template updated successfully",
		"blockTemplateId": blockTemplate.ID,
	})
}

// DeleteBlockTemplate deletes a block template
func (h *BlockTemplateHandlers) DeleteBlockTemplate(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_block_template_request")
	defer marker.Complete()

	blockTemplateID := c.Param("id")
	if err := h.blockTemplateService.Delete(blockTemplateID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message":         "block template deleted successfully",
		"blockTemplateId": blockTemplateID,
	})
}
