// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/manager"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/messaging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	persistence "github.com/PageForgeHQ/pageforge-go/internal/infrastructure/persistence/content"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/persistence/database"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/security"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Content Services (stateless singletons)
	PageService          *services.PageService
	TemplateService      *services.TemplateService
	BlockTemplateService *services.BlockTemplateService
	MenuService          *services.MenuService
	CompositionService   *services.CompositionService
	IntegrityService     *services.IntegrityService
	AuthService          *services.AuthService
	DBService            *services.DBService

	// Domain Services
	Parser     *domainservices.DocumentParser
	Serializer *domainservices.DocumentSerializer
	Composer   *domainservices.SlotComposer
	Decomposer *domainservices.SlotDecomposer

	// Infrastructure Dependencies
	DB           *database.DB
	CacheManager *manager.Manager
	Broadcaster  *messaging.EditorBroadcaster
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, cacheManager *manager.Manager, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	ids := builder.IDSource(security.GenerateULID)

	parser := domainservices.NewDocumentParser(ids)
	serializer := domainservices.NewDocumentSerializer()
	composer := domainservices.NewSlotComposer(ids)
	decomposer := domainservices.NewSlotDecomposer()

	broadcaster := messaging.NewEditorBroadcaster()

	pageRepo := persistence.NewPageRepository(db.DB, cacheManager, parser, serializer, logger)
	templateRepo := persistence.NewTemplateRepository(db.DB, cacheManager, parser, serializer, logger)
	blockTemplateRepo := persistence.NewBlockTemplateRepository(db.DB, cacheManager, parser, serializer, logger)
	menuRepo := persistence.NewMenuRepository(db.DB, cacheManager, logger)

	pageService := services.NewPageService(pageRepo, ids, broadcaster)
	templateService := services.NewTemplateService(templateRepo, composer, ids, broadcaster)
	menuService := services.NewMenuService(menuRepo, ids, broadcaster)

	return &Container{
		PageService:          pageService,
		TemplateService:      templateService,
		BlockTemplateService: services.NewBlockTemplateService(blockTemplateRepo, ids, broadcaster),
		MenuService:          menuService,
		CompositionService:   services.NewCompositionService(templateService, parser, composer, decomposer),
		IntegrityService:     services.NewIntegrityService(pageService, templateService, menuService),
		AuthService:          services.NewAuthService(logger),
		DBService:            services.NewDBService(db, logger),

		Parser:     parser,
		Serializer: serializer,
		Composer:   composer,
		Decomposer: decomposer,

		DB:           db,
		CacheManager: cacheManager,
		Broadcaster:  broadcaster,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}
}
