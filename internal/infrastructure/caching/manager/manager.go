// Package manager provides centralized cache operations by delegating to
// specialized stores.
package manager

import (
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/interfaces"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/stores"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/pkg/config"
)

// Interface assertion to ensure Manager implements the cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager provides centralized cache operations
type Manager struct {
	contentStore *stores.ContentStore
	logger       *logging.ChanneledLogger
}

func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager",
			"contentTTL", config.ContentCacheTTL.String())
	}

	return &Manager{
		contentStore: stores.NewContentStore(logger, config.ContentCacheTTL),
		logger:       logger,
	}
}

func (m *Manager) GetPage(id string) (*content.PageNode, bool) { return m.contentStore.GetPage(id) }
func (m *Manager) SetPage(page *content.PageNode)              { m.contentStore.SetPage(page) }
func (m *Manager) GetPageIDBySlug(slug string) (string, bool) {
	return m.contentStore.GetPageIDBySlug(slug)
}
func (m *Manager) GetAllPageIDs() ([]string, bool) { return m.contentStore.GetAllPageIDs() }
func (m *Manager) SetAllPageIDs(ids []string)      { m.contentStore.SetAllPageIDs(ids) }
func (m *Manager) InvalidatePage(id string)        { m.contentStore.InvalidatePage(id) }
func (m *Manager) AddPageID(id string)             { m.contentStore.AddPageID(id) }
func (m *Manager) RemovePageID(id string)          { m.contentStore.RemovePageID(id) }

func (m *Manager) GetTemplate(id string) (*content.PageTemplateNode, bool) {
	return m.contentStore.GetTemplate(id)
}
func (m *Manager) SetTemplate(template *content.PageTemplateNode) {
	m.contentStore.SetTemplate(template)
}
func (m *Manager) GetTemplateIDBySlug(slug string) (string, bool) {
	return m.contentStore.GetTemplateIDBySlug(slug)
}
func (m *Manager) GetAllTemplateIDs() ([]string, bool) { return m.contentStore.GetAllTemplateIDs() }
func (m *Manager) SetAllTemplateIDs(ids []string)      { m.contentStore.SetAllTemplateIDs(ids) }
func (m *Manager) InvalidateTemplate(id string)        { m.contentStore.InvalidateTemplate(id) }
func (m *Manager) AddTemplateID(id string)             { m.contentStore.AddTemplateID(id) }
func (m *Manager) RemoveTemplateID(id string)          { m.contentStore.RemoveTemplateID(id) }

func (m *Manager) GetBlockTemplate(id string) (*content.BlockTemplateNode, bool) {
	return m.contentStore.GetBlockTemplate(id)
}
func (m *Manager) SetBlockTemplate(blockTemplate *content.BlockTemplateNode) {
	m.contentStore.SetBlockTemplate(blockTemplate)
}
func (m *Manager) GetAllBlockTemplateIDs() ([]string, bool) {
	return m.contentStore.GetAllBlockTemplateIDs()
}
func (m *Manager) SetAllBlockTemplateIDs(ids []string) { m.contentStore.SetAllBlockTemplateIDs(ids) }
func (m *Manager) InvalidateBlockTemplate(id string)   { m.contentStore.InvalidateBlockTemplate(id) }
func (m *Manager) AddBlockTemplateID(id string)        { m.contentStore.AddBlockTemplateID(id) }
func (m *Manager) RemoveBlockTemplateID(id string)     { m.contentStore.RemoveBlockTemplateID(id) }

func (m *Manager) GetMenu(id string) (*content.MenuNode, bool) { return m.contentStore.GetMenu(id) }
func (m *Manager) SetMenu(menu *content.MenuNode)              { m.contentStore.SetMenu(menu) }
func (m *Manager) GetAllMenuIDs() ([]string, bool)             { return m.contentStore.GetAllMenuIDs() }
func (m *Manager) SetAllMenuIDs(ids []string)                  { m.contentStore.SetAllMenuIDs(ids) }
func (m *Manager) InvalidateMenu(id string)                    { m.contentStore.InvalidateMenu(id) }
func (m *Manager) AddMenuID(id string)                         { m.contentStore.AddMenuID(id) }
func (m *Manager) RemoveMenuID(id string)                      { m.contentStore.RemoveMenuID(id) }

func (m *Manager) InvalidateAll() {
	start := time.Now()
	m.contentStore.InvalidateAll()
	if m.logger != nil {
		m.logger.Cache().Info("All caches invalidated", "duration", time.Since(start))
	}
}

func (m *Manager) PurgeExpired() int { return m.contentStore.PurgeExpired() }

func (m *Manager) GetStats() interfaces.CacheStats { return m.contentStore.GetStats() }
