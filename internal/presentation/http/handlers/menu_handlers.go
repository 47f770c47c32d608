// Package handlers provides HTTP handlers for menu endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// CreateMenuRequest defines the structure for creating a new menu.
type CreateMenuRequest struct {
	Title string              `json:"title" binding:"required"`
	Theme string              `json:"theme"`
	Links []*content.MenuLink `json:"links"`
}

// UpdateMenuRequest defines the structure for updating an existing menu.
type UpdateMenuRequest struct {
	Title string              `json:"title" binding:"required"`
	Theme string              `json:"theme"`
	Links []*content.MenuLink `json:"links"`
}

// MenuHandlers contains all menu-related HTTP handlers
type MenuHandlers struct {
	menuService *services.MenuService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMenuHandlers creates menu handlers with injected dependencies
func NewMenuHandlers(menuService *services.MenuService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MenuHandlers {
	return &MenuHandlers{
		menuService: menuService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetAllMenus returns all menus
func (h *MenuHandlers) GetAllMenus(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_all_menus_request")
	defer marker.Complete()

	menus, err := h.menuService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Get all menus request completed", "count", len(menus), "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"menus": menus,
		"count": len(menus),
	})
}

// GetMenuByID returns a specific menu by ID
func (h *MenuHandlers) GetMenuByID(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_menu_by_id_request")
	defer marker.Complete()

	menuNode, err := h.menuService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if menuNode == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, menuNode)
}

// CreateMenu creates a new menu
func (h *MenuHandlers) CreateMenu(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_menu_request")
	defer marker.Complete()

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	menu := &content.MenuNode{
		Title: req.Title,
		Theme: req.Theme,
		Links: req.Links,
	}

	if err := h.menuService.Create(menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Create menu request completed", "menuId", menu.ID, "title", menu.Title, "duration", time.Since(start))
	marker.SetSuccess(true)
	c.JSON(http.StatusCreated, gin.H{
		"message": "menu created successfully",
		"menuId":  menu.ID,
	})
}

// UpdateMenu updates an existing menu
func (h *MenuHandlers) UpdateMenu(c *gin.Context) {
	marker := h.perfTracker.StartOperation("update_menu_request")
	defer marker.Complete()

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	menu := &content.MenuNode{
		ID:    c.Param("id"),
		Title: req.Title,
		Theme: req.Theme,
		Links: req.Links,
	}

	if err := h.menuService.Update(menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message": "menu updated successfully",
		"menuId":  menu.ID,
	})
}

// DeleteMenu deletes a menu
func (h *MenuHandlers) DeleteMenu(c *gin.Context) {
	marker := h.perfTracker.StartOperation("delete_menu_request")
	defer marker.Complete()

	menuID := c.Param("id")
	if err := h.menuService.Delete(menuID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.JSON(http.StatusOK, gin.H{
		"message": "menu deleted successfully",
		"menuId":  menuID,
	})
}
