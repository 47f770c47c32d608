// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/PageForgeHQ/pageforge-go/internal/application/container"
	"github.com/PageForgeHQ/pageforge-go/internal/presentation/http/handlers"
	"github.com/PageForgeHQ/pageforge-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	pageHandlers := handlers.NewPageHandlers(container.PageService, container.Parser, container.Logger, container.PerfTracker)
	templateHandlers := handlers.NewTemplateHandlers(container.TemplateService, container.Parser, container.Serializer, container.Logger, container.PerfTracker)
	blockTemplateHandlers := handlers.NewBlockTemplateHandlers(container.BlockTemplateService, container.Parser, container.Logger, container.PerfTracker)
	menuHandlers := handlers.NewMenuHandlers(container.MenuService, container.Logger, container.PerfTracker)
	compositionHandlers := handlers.NewCompositionHandlers(container.CompositionService, container.Serializer, container.Logger, container.PerfTracker)
	adminHandlers := handlers.NewAdminHandlers(container.IntegrityService, container.Logger, container.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	dbHandlers := handlers.NewDBHandlers(container.DBService, container.Logger, container.PerfTracker)
	editorWSHandlers := handlers.NewEditorWSHandlers(container.Broadcaster, container.AuthService, container.Logger)

	api := r.Group("/api/v1")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Database status
		api.GET("/db/status", dbHandlers.GetDatabaseStatus)

		// Public site routes (published content only)
		site := api.Group("/site")
		{
			site.GET("/pages", pageHandlers.GetPublishedPages)
			site.GET("/pages/slug/:slug", pageHandlers.GetPublishedPageBySlug)
			site.GET("/menus/:id", menuHandlers.GetMenuByID)
		}

		// Editor websocket for cross-session save notifications
		api.GET("/editor/ws", editorWSHandlers.GetEditorWS)

		// Content nodes
		nodes := api.Group("/nodes")
		nodes.Use(authHandlers.AuthMiddleware())
		{
			nodes.GET("/pages", pageHandlers.GetAllPages)
			nodes.GET("/pages/:id", pageHandlers.GetPageByID)
			nodes.GET("/pages/slug/:slug", pageHandlers.GetPageBySlug)
			nodes.POST("/pages/create", pageHandlers.CreatePage)
			nodes.PUT("/pages/:id", pageHandlers.UpdatePage)
			nodes.DELETE("/pages/:id", pageHandlers.DeletePage)

			nodes.GET("/templates", templateHandlers.GetAllTemplates)
			nodes.GET("/templates/:id", templateHandlers.GetTemplateByID)
			nodes.GET("/templates/slug/:slug", templateHandlers.GetTemplateBySlug)
			nodes.GET("/templates/slug/:slug/definition", templateHandlers.GetTemplateDefinition)
			nodes.POST("/templates/create", templateHandlers.CreateTemplate)
			nodes.PUT("/templates/:id", templateHandlers.UpdateTemplate)
			nodes.DELETE("/templates/:id", templateHandlers.DeleteTemplate)

			nodes.GET("/block-templates", blockTemplateHandlers.GetAllBlockTemplates)
			nodes.GET("/block-templates/:id", blockTemplateHandlers.GetBlockTemplateByID)
			nodes.POST("/block-templates/:id/instantiate", blockTemplateHandlers.InstantiateBlockTemplate)
			nodes.POST("/block-templates/create", blockTemplateHandlers.CreateBlockTemplate)
			nodes.PUT("/block-templates/:id", blockTemplateHandlers.UpdateBlockTemplate)
			nodes.DELETE("/block-templates/:id", blockTemplateHandlers.DeleteBlockTemplate)

			nodes.GET("/menus", menuHandlers.GetAllMenus)
			nodes.GET("/menus/:id", menuHandlers.GetMenuByID)
			nodes.POST("/menus/create", menuHandlers.CreateMenu)
			nodes.PUT("/menus/:id", menuHandlers.UpdateMenu)
			nodes.DELETE("/menus/:id", menuHandlers.DeleteMenu)
		}

		// Admin-only analysis endpoints
		admin := api.Group("/admin")
		admin.Use(authHandlers.AdminOnlyMiddleware())
		{
			admin.GET("/integrity", adminHandlers.GetIntegrityAnalysis)
		}

		// Slot composition endpoints
		compose := api.Group("/compose")
		compose.Use(authHandlers.AuthMiddleware())
		{
			compose.POST("/preview", compositionHandlers.PostComposePreview)
			compose.POST("/decompose", compositionHandlers.PostDecompose)
		}
	}

	return r
}
