// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/interfaces"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
)

// ContentStore implements content caching with TTL-based expiry. The whole
// store ages as one unit: LastUpdated moves on every write, and once the TTL
// passes without a write every lookup misses until the next load.
type ContentStore struct {
	pages          map[string]*content.PageNode
	templates      map[string]*content.PageTemplateNode
	blockTemplates map[string]*content.BlockTemplateNode
	menus          map[string]*content.MenuNode

	pageSlugToID     map[string]string
	templateSlugToID map[string]string

	allPageIDs          []string
	allTemplateIDs      []string
	allBlockTemplateIDs []string
	allMenuIDs          []string

	lastUpdated time.Time
	ttl         time.Duration
	mu          sync.RWMutex
	logger      *logging.ChanneledLogger
}

// NewContentStore creates a new content cache store
func NewContentStore(logger *logging.ChanneledLogger, ttl time.Duration) *ContentStore {
	if ttl <= 0 {
		ttl = interfaces.DefaultContentCacheTTL
	}
	store := &ContentStore{
		ttl:         ttl,
		lastUpdated: time.Now().UTC(),
		logger:      logger,
	}
	store.resetLocked()
	return store
}

func (cs *ContentStore) resetLocked() {
	cs.pages = make(map[string]*content.PageNode)
	cs.templates = make(map[string]*content.PageTemplateNode)
	cs.blockTemplates = make(map[string]*content.BlockTemplateNode)
	cs.menus = make(map[string]*content.MenuNode)
	cs.pageSlugToID = make(map[string]string)
	cs.templateSlugToID = make(map[string]string)
	cs.allPageIDs = nil
	cs.allTemplateIDs = nil
	cs.allBlockTemplateIDs = nil
	cs.allMenuIDs = nil
}

func (cs *ContentStore) expiredLocked() bool {
	return time.Since(cs.lastUpdated) > cs.ttl
}

func (cs *ContentStore) touchLocked() {
	cs.lastUpdated = time.Now().UTC()
}

// =============================================================================
// Pages
// =============================================================================

func (cs *ContentStore) GetPage(id string) (*content.PageNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return nil, false
	}
	node, exists := cs.pages[id]
	return node, exists
}

func (cs *ContentStore) SetPage(page *content.PageNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.pages[page.ID] = page
	cs.pageSlugToID[page.Slug] = page.ID
	cs.touchLocked()
}

func (cs *ContentStore) GetPageIDBySlug(slug string) (string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return "", false
	}
	id, exists := cs.pageSlugToID[slug]
	return id, exists
}

func (cs *ContentStore) GetAllPageIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() || cs.allPageIDs == nil {
		return nil, false
	}
	ids := make([]string, len(cs.allPageIDs))
	copy(ids, cs.allPageIDs)
	return ids, true
}

func (cs *ContentStore) SetAllPageIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allPageIDs = make([]string, len(ids))
	copy(cs.allPageIDs, ids)
	cs.touchLocked()
}

func (cs *ContentStore) InvalidatePage(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if page, exists := cs.pages[id]; exists {
		delete(cs.pageSlugToID, page.Slug)
	}
	delete(cs.pages, id)
	cs.allPageIDs = removeID(cs.allPageIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) AddPageID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allPageIDs = appendID(cs.allPageIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) RemovePageID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allPageIDs = removeID(cs.allPageIDs, id)
	cs.touchLocked()
}

// =============================================================================
// Page templates
// =============================================================================

func (cs *ContentStore) GetTemplate(id string) (*content.PageTemplateNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return nil, false
	}
	node, exists := cs.templates[id]
	return node, exists
}

func (cs *ContentStore) SetTemplate(template *content.PageTemplateNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.templates[template.ID] = template
	cs.templateSlugToID[template.Slug] = template.ID
	cs.touchLocked()
}

func (cs *ContentStore) GetTemplateIDBySlug(slug string) (string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return "", false
	}
	id, exists := cs.templateSlugToID[slug]
	return id, exists
}

func (cs *ContentStore) GetAllTemplateIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() || cs.allTemplateIDs == nil {
		return nil, false
	}
	ids := make([]string, len(cs.allTemplateIDs))
	copy(ids, cs.allTemplateIDs)
	return ids, true
}

func (cs *ContentStore) SetAllTemplateIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allTemplateIDs = make([]string, len(ids))
	copy(cs.allTemplateIDs, ids)
	cs.touchLocked()
}

func (cs *ContentStore) InvalidateTemplate(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if template, exists := cs.templates[id]; exists {
		delete(cs.templateSlugToID, template.Slug)
	}
	delete(cs.templates, id)
	cs.allTemplateIDs = removeID(cs.allTemplateIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) AddTemplateID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allTemplateIDs = appendID(cs.allTemplateIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) RemoveTemplateID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allTemplateIDs = removeID(cs.allTemplateIDs, id)
	cs.touchLocked()
}

// =============================================================================
// Block templates
// =============================================================================

func (cs *ContentStore) GetBlockTemplate(id string) (*content.BlockTemplateNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return nil, false
	}
	node, exists := cs.blockTemplates[id]
	return node, exists
}

func (cs *ContentStore) SetBlockTemplate(blockTemplate *content.BlockTemplateNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.blockTemplates[blockTemplate.ID] = blockTemplate
	cs.touchLocked()
}

func (cs *ContentStore) GetAllBlockTemplateIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() || cs.allBlockTemplateIDs == nil {
		return nil, false
	}
	ids := make([]string, len(cs.allBlockTemplateIDs))
	copy(ids, cs.allBlockTemplateIDs)
	return ids, true
}

func (cs *ContentStore) SetAllBlockTemplateIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allBlockTemplateIDs = make([]string, len(ids))
	copy(cs.allBlockTemplateIDs, ids)
	cs.touchLocked()
}

func (cs *ContentStore) InvalidateBlockTemplate(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.blockTemplates, id)
	cs.allBlockTemplateIDs = removeID(cs.allBlockTemplateIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) AddBlockTemplateID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allBlockTemplateIDs = appendID(cs.allBlockTemplateIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) RemoveBlockTemplateID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allBlockTemplateIDs = removeID(cs.allBlockTemplateIDs, id)
	cs.touchLocked()
}

// =============================================================================
// Menus
// =============================================================================

func (cs *ContentStore) GetMenu(id string) (*content.MenuNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() {
		return nil, false
	}
	node, exists := cs.menus[id]
	return node, exists
}

func (cs *ContentStore) SetMenu(menu *content.MenuNode) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.menus[menu.ID] = menu
	cs.touchLocked()
}

func (cs *ContentStore) GetAllMenuIDs() ([]string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if cs.expiredLocked() || cs.allMenuIDs == nil {
		return nil, false
	}
	ids := make([]string, len(cs.allMenuIDs))
	copy(ids, cs.allMenuIDs)
	return ids, true
}

func (cs *ContentStore) SetAllMenuIDs(ids []string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allMenuIDs = make([]string, len(ids))
	copy(cs.allMenuIDs, ids)
	cs.touchLocked()
}

func (cs *ContentStore) InvalidateMenu(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.menus, id)
	cs.allMenuIDs = removeID(cs.allMenuIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) AddMenuID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allMenuIDs = appendID(cs.allMenuIDs, id)
	cs.touchLocked()
}

func (cs *ContentStore) RemoveMenuID(id string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.allMenuIDs = removeID(cs.allMenuIDs, id)
	cs.touchLocked()
}

// =============================================================================
// Store-wide operations
// =============================================================================

// InvalidateAll clears every cached entity and id list
func (cs *ContentStore) InvalidateAll() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.resetLocked()
	cs.touchLocked()
	if cs.logger != nil {
		cs.logger.Cache().Info("Content cache invalidated")
	}
}

// PurgeExpired clears the store when its TTL has lapsed and returns the
// number of items removed
func (cs *ContentStore) PurgeExpired() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.expiredLocked() {
		return 0
	}

	purged := len(cs.pages) + len(cs.templates) + len(cs.blockTemplates) + len(cs.menus)
	cs.resetLocked()
	cs.touchLocked()

	if cs.logger != nil && purged > 0 {
		cs.logger.Cache().Info("Expired content cache purged", "items", purged)
	}
	return purged
}

// GetStats returns current cache occupancy
func (cs *ContentStore) GetStats() interfaces.CacheStats {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return interfaces.CacheStats{
		Pages:          len(cs.pages),
		Templates:      len(cs.templates),
		BlockTemplates: len(cs.blockTemplates),
		Menus:          len(cs.menus),
		LastUpdated:    cs.lastUpdated,
	}
}

func appendID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
