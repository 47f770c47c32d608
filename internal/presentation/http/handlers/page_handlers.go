// Package handlers provides HTTP handlers for page endpoints
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

// CreatePageRequest defines the structure for creating a new page.
type CreatePageRequest struct {
	Title          string `json:"title" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Status         string `json:"status"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	Blocks         any    `json:"blocks"`
}

// UpdatePageRequest defines the structure for updating an existing page.
type UpdatePageRequest struct {
	Title          string `json:"title" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Status         string `json:"status"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	Blocks         any    `json:"blocks"`
}

// PageHandlers contains all page-related HTTP handlers
type PageHandlers struct {
	pageService *services.PageService
	parser      *domainservices.DocumentParser
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, parser *domainservices.DocumentParser, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PageHandlers {
	return &PageHandlers{
		pageService: pageService,
		parser:      parser,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetAllPages returns all pages, drafts included, for the editor
func (h *PageHandlers) GetAllPages(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_all_pages_request")
	defer marker.Complete()

	pages, err := h.pageService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Get all pages request completed", "count", len(pages), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"pages": pages,
		"count": len(pages),
	})
}

// GetPublishedPages returns published pages only, for the public site
func (h *PageHandlers) GetPublishedPages(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_published_pages_request")
	defer marker.Complete()

	pages, err := h.pageService.GetPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"pages": pages,
		"count": len(pages),
	})
}

// GetPageByID returns a specific page by ID
func (h *PageHandlers) GetPageByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_page_by_id_request")
	defer marker.Complete()

	pageID := c.Param("id")
	page, err := h.pageService.GetByID(pageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, page)
}

// GetPageBySlug returns a specific page by slug
func (h *PageHandlers) GetPageBySlug(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_page_by_slug_request")
	defer marker.Complete()

	slug := c.Param("slug")
	page, err := h.pageService.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, page)
}

// GetPublishedPageBySlug returns a published page by slug for the public site.
// Drafts are indistinguishable from missing pages here.
func (h *PageHandlers) GetPublishedPageBySlug(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_published_page_by_slug_request")
	defer marker.Complete()

	slug := c.Param("slug")
	page, err := h.pageService.GetPublishedBySlug(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"page": page,
		"body": services.ExtractBody(page.Blocks),
	})
}

// CreatePage creates a new page
func (h *PageHandlers) CreatePage(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_page_request")
	defer marker.Complete()

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	page := &content.PageNode{
		Title:          req.Title,
		Slug:           req.Slug,
		Status:         req.Status,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Blocks:         h.parser.Parse(req.Blocks),
	}

	if err := h.pageService.Create(page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Create page request completed", "pageId", page.ID, "slug", page.Slug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{
		"message": "page created successfully",
		"pageId":  page.ID,
	})
}

// UpdatePage updates an existing page
func (h *PageHandlers) UpdatePage(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("update_page_request")
	defer marker.Complete()

	pageID := c.Param("id")

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	page := &content.PageNode{
		ID:             pageID,
		Title:          req.Title,
		Slug:           req.Slug,
		Status:         req.Status,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Blocks:         h.parser.Parse(req.Blocks),
	}

	if err := h.pageService.Update(page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Update page request completed", "pageId", page.ID, "slug", page.Slug, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message": "page updated successfully",
		"pageId":  page.ID,
	})
}

// DeletePage deletes a page
func (h *PageHandlers) DeletePage(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("delete_page_request")
	defer marker.Complete()

	pageID := c.Param("id")
	if err := h.pageService.Delete(pageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Delete page request completed", "pageId", pageID, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message": "page deleted successfully",
		"pageId":  pageID,
	})
}
