// Package interfaces defines cache operation contracts for content management.
package interfaces

import (
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
)

// Cache TTL defaults.
const (
	DefaultContentCacheTTL = 24 * time.Hour
)

// ContentCache defines operations for content caching
type ContentCache interface {
	GetPage(id string) (*content.PageNode, bool)
	SetPage(page *content.PageNode)
	GetPageIDBySlug(slug string) (string, bool)
	GetAllPageIDs() ([]string, bool)
	SetAllPageIDs(ids []string)
	InvalidatePage(id string)
	AddPageID(id string)
	RemovePageID(id string)

	GetTemplate(id string) (*content.PageTemplateNode, bool)
	SetTemplate(template *content.PageTemplateNode)
	GetTemplateIDBySlug(slug string) (string, bool)
	GetAllTemplateIDs() ([]string, bool)
	SetAllTemplateIDs(ids []string)
	InvalidateTemplate(id string)
	AddTemplateID(id string)
	RemoveTemplateID(id string)

	GetBlockTemplate(id string) (*content.BlockTemplateNode, bool)
	SetBlockTemplate(blockTemplate *content.BlockTemplateNode)
	GetAllBlockTemplateIDs() ([]string, bool)
	SetAllBlockTemplateIDs(ids []string)
	InvalidateBlockTemplate(id string)
	AddBlockTemplateID(id string)
	RemoveBlockTemplateID(id string)

	GetMenu(id string) (*content.MenuNode, bool)
	SetMenu(menu *content.MenuNode)
	GetAllMenuIDs() ([]string, bool)
	SetAllMenuIDs(ids []string)
	InvalidateMenu(id string)
	AddMenuID(id string)
	RemoveMenuID(id string)

	InvalidateAll()
}

// Cache aggregates the cache contracts the application depends on
type Cache interface {
	ContentCache
	PurgeExpired() int
	GetStats() CacheStats
}

// CacheStats reports cache occupancy for status endpoints and cleanup reports
type CacheStats struct {
	Pages          int       `json:"pages"`
	Templates      int       `json:"templates"`
	BlockTemplates int       `json:"blockTemplates"`
	Menus          int       `json:"menus"`
	LastUpdated    time.Time `json:"lastUpdated"`
}
