// Package handlers provides HTTP handlers for page template endpoints
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

// CreateTemplateRequest defines the structure for creating a page template.
type CreateTemplateRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Menu        string `json:"menu"`
	Footer      string `json:"footer"`
	Definition  any    `json:"definition"`
}

// UpdateTemplateRequest defines the structure for updating a page template.
type UpdateTemplateRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Menu        string `json:"menu"`
	Footer      string `json:"footer"`
	Definition  any    `json:"definition"`
}

// TemplateHandlers contains all page template HTTP handlers
type TemplateHandlers struct {
	templateService *services.TemplateService
	parser          *domainservices.DocumentParser
	serializer      *domainservices.DocumentSerializer
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewTemplateHandlers creates template handlers with injected dependencies
func NewTemplateHandlers(templateService *services.TemplateService, parser *domainservices.DocumentParser, serializer *domainservices.DocumentSerializer, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *TemplateHandlers {
	return &TemplateHandlers{
		templateService: templateService,
		parser:          parser,
		serializer:      serializer,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetAllTemplates returns all page templates
func (h *TemplateHandlers) GetAllTemplates(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_all_templates_request")
	defer marker.Complete()

	templates, err := h.templateService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Get all templates request completed", "count", len(templates), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"count":     len(templates),
	})
}

// GetTemplateByID returns a specific page template by ID
func (h *TemplateHandlers) GetTemplateByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_template_by_id_request")
	defer marker.Complete()

	template, err := h.templateService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if template == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, template)
}

// GetTemplateBySlug returns a specific page template by slug
func (h *TemplateHandlers) GetTemplateBySlug(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_template_by_slug_request")
	defer marker.Complete()

	template, err := h.templateService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if template == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, template)
}

// GetTemplateDefinition returns the definition a template contributes to
// composition, synthesizing the fallback layout for slotless templates.
func (h *TemplateHandlers) GetTemplateDefinition(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_template_definition_request")
	defer marker.Complete()

	template, err := h.templateService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if template == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	definition := h.templateService.EffectiveDefinition(template)
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, h.serializer.Serialize(definition))
}

// CreateTemplate creates a new page template
func (h *TemplateHandlers) CreateTemplate(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_template_request")
	defer marker.Complete()

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	template := &content.PageTemplateNode{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Menu:        req.Menu,
		Footer:      req.Footer,
	}
	if req.Definition != nil {
		template.Definition = h.parser.Parse(req.Definition)
	}

	if err := h.templateService.Create(template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Create template request completed", "templateId", template.ID, "slug", template.Slug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "template created successfully",
		"templateId": template.ID,
	})
}

// UpdateTemplate updates an existing page template
func (h *TemplateHandlers) UpdateTemplate(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("update_template_request")
	defer marker.Complete()

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	template := &content.PageTemplateNode{
		ID:          c.Param("id"),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Menu:        req.Menu,
		Footer:      req.Footer,
	}
	if req.Definition != nil {
		template.Definition = h.parser.Parse(req.Definition)
	}

	if err := h.templateService.Update(template); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Update template request completed", "templateId", template.ID, "slug", template.Slug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message":    "template updated successfully",
		"templateId": template.ID,
	})
}

// DeleteTemplate deletes a page template
func (h *TemplateHandlers) DeleteTemplate(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_template_request")
	defer marker.Complete()

	templateID := c.Param("id")
	if err := h.templateService.Delete(templateID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message":    "template deleted successfully",
		"templateId": templateID,
	})
}
