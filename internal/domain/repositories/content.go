// Package repositories defines the repository interfaces for content entities.
// These repositories abstract the data persistence details, ensuring the core
// application is clean and decoupled from the database.
package repositories

import (
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
)

type PageRepository interface {
	FindByID(id string) (*content.PageNode, error)
	FindBySlug(slug string) (*content.PageNode, error)
	FindAll() ([]*content.PageNode, error)
	FindByIDs(ids []string) ([]*content.PageNode, error)
	Store(page *content.PageNode) error
	Update(page *content.PageNode) error
	Delete(id string) error
}

type TemplateRepository interface {
	FindByID(id string) (*content.PageTemplateNode, error)
	FindBySlug(slug string) (*content.PageTemplateNode, error)
	FindAll() ([]*content.PageTemplateNode, error)
	FindByIDs(ids []string) ([]*content.PageTemplateNode, error)
	Store(template *content.PageTemplateNode) error
	Update(template *content.PageTemplateNode) error
	Delete(id string) error
}

type BlockTemplateRepository interface {
	FindByID(id string) (*content.BlockTemplateNode, error)
	FindAll() ([]*content.BlockTemplateNode, error)
	FindByIDs(ids []string) ([]*content.BlockTemplateNode, error)
	Store(blockTemplate *content.BlockTemplateNode) error
	Update(blockTemplate *content.BlockTemplateNode) error
	Delete(id string) error
}

type MenuRepository interface {
	FindByID(id string) (*content.MenuNode, error)
	FindAll() ([]*content.MenuNode, error)
	FindByIDs(ids []string) ([]*content.MenuNode, error)
	Store(menu *content.MenuNode) error
	Update(menu *content.MenuNode) error
	Delete(id string) error
}
