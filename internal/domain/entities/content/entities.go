// Package content defines the application's core content-related domain entities.
package content

import (
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// Page statuses.
const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

type PageNode struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Status         string            `json:"status"`
	SEOTitle       string            `json:"seoTitle,omitempty"`
	SEODescription string            `json:"seoDescription,omitempty"`
	Blocks         *builder.Document `json:"blocks,omitempty"`
	PublishedAt    *time.Time        `json:"publishedAt,omitempty"`
	Created        time.Time         `json:"created"`
	Changed        *time.Time        `json:"changed,omitempty"`
}

// IsPublished reports whether the page is visible on the public site.
func (p *PageNode) IsPublished() bool {
	return p.Status == PageStatusPublished
}

type PageTemplateNode struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Menu        string            `json:"menu,omitempty"`
	Footer      string            `json:"footer,omitempty"`
	Definition  *builder.Document `json:"definition,omitempty"`
}

type BlockTemplateNode struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Category   string            `json:"category,omitempty"`
	Definition *builder.Document `json:"definition,omitempty"`
}

type MenuNode struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Theme string      `json:"theme"`
	Links []*MenuLink `json:"links,omitempty"`
}

type MenuLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Target string `json:"target,omitempty"`
}
