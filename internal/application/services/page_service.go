// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/repositories"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/messaging"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// reservedSlugs are path segments owned by the application itself.
var reservedSlugs = map[string]bool{
	"admin":  true,
	"login":  true,
	"logout": true,
	"media":  true,
	"api":    true,
	"auth":   true,
}

// ValidateSlug checks a page slug against the allowed pattern and the
// reserved set.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug %q must be lowercase letters, digits and hyphens", slug)
	}
	if reservedSlugs[slug] {
		return fmt.Errorf("slug %q is reserved", slug)
	}
	return nil
}

// PageService orchestrates page operations with cache-first repository pattern
type PageService struct {
	pageRepo  repositories.PageRepository
	ids       builder.IDSource
	publisher messaging.SavePublisher
}

// NewPageService creates a new page application service
func NewPageService(pageRepo repositories.PageRepository, ids builder.IDSource, publisher messaging.SavePublisher) *PageService {
	return &PageService{
		pageRepo:  pageRepo,
		ids:       ids,
		publisher: publisher,
	}
}

// GetAll returns all pages (cache-first)
func (s *PageService) GetAll() ([]*content.PageNode, error) {
	pages, err := s.pageRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all pages: %w", err)
	}
	return pages, nil
}

// GetPublished returns published pages only, for the public site
func (s *PageService) GetPublished() ([]*content.PageNode, error) {
	pages, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	published := make([]*content.PageNode, 0, len(pages))
	for _, page := range pages {
		if page.IsPublished() {
			published = append(published, page)
		}
	}
	return published, nil
}

// GetByID returns a page by ID (cache-first)
func (s *PageService) GetByID(id string) (*content.PageNode, error) {
	if id == "" {
		return nil, fmt.Errorf("page ID cannot be empty")
	}

	page, err := s.pageRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", id, err)
	}
	return page, nil
}

// GetBySlug returns a page by slug (cache-first)
func (s *PageService) GetBySlug(slug string) (*content.PageNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("page slug cannot be empty")
	}

	page, err := s.pageRepo.FindBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get page by slug %s: %w", slug, err)
	}
	return page, nil
}

// GetPublishedBySlug returns a published page by slug, or nil when the page
// is absent or still a draft
func (s *PageService) GetPublishedBySlug(slug string) (*content.PageNode, error) {
	page, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if page == nil || !page.IsPublished() {
		return nil, nil
	}
	return page, nil
}

// Create creates a new page
func (s *PageService) Create(page *content.PageNode) error {
	if page == nil {
		return fmt.Errorf("page cannot be nil")
	}
	if page.Title == "" {
		return fmt.Errorf("page title cannot be empty")
	}
	if err := ValidateSlug(page.Slug); err != nil {
		return err
	}

	existing, err := s.pageRepo.FindBySlug(page.Slug)
	if err != nil {
		return fmt.Errorf("failed to check slug %s: %w", page.Slug, err)
	}
	if existing != nil {
		return fmt.Errorf("slug %q is already in use", page.Slug)
	}

	if page.ID == "" {
		page.ID = s.ids()
	}
	if page.Status == "" {
		page.Status = content.PageStatusDraft
	}
	now := time.Now().UTC()
	page.Created = now
	page.Changed = &now
	s.applyPublication(page, nil)

	if err := s.pageRepo.Store(page); err != nil {
		return fmt.Errorf("failed to create page %s: %w", page.ID, err)
	}

	s.notifySaved(page)
	return nil
}

// Update updates an existing page
func (s *PageService) Update(page *content.PageNode) error {
	if page == nil {
		return fmt.Errorf("page cannot be nil")
	}
	if page.ID == "" {
		return fmt.Errorf("page ID cannot be empty")
	}
	if page.Title == "" {
		return fmt.Errorf("page title cannot be empty")
	}
	if err := ValidateSlug(page.Slug); err != nil {
		return err
	}

	// Verify page exists before updating
	existing, err := s.pageRepo.FindByID(page.ID)
	if err != nil {
		return fmt.Errorf("failed to verify page %s exists: %w", page.ID, err)
	}
	if existing == nil {
		return fmt.Errorf("page %s not found", page.ID)
	}

	if bySlug, err := s.pageRepo.FindBySlug(page.Slug); err != nil {
		return fmt.Errorf("failed to check slug %s: %w", page.Slug, err)
	} else if bySlug != nil && bySlug.ID != page.ID {
		return fmt.Errorf("slug %q is already in use", page.Slug)
	}

	now := time.Now().UTC()
	page.Created = existing.Created
	page.Changed = &now
	s.applyPublication(page, existing)

	if err := s.pageRepo.Update(page); err != nil {
		return fmt.Errorf("failed to update page %s: %w", page.ID, err)
	}

	s.notifySaved(page)
	return nil
}

// Delete deletes a page
func (s *PageService) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("page ID cannot be empty")
	}

	existing, err := s.pageRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to verify page %s exists: %w", id, err)
	}
	if existing == nil {
		return fmt.Errorf("page %s not found", id)
	}

	if err := s.pageRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete page %s: %w", id, err)
	}
	return nil
}

// applyPublication keeps status and publishedAt consistent across saves.
func (s *PageService) applyPublication(page, previous *content.PageNode) {
	switch page.Status {
	case content.PageStatusPublished:
		if previous != nil && previous.PublishedAt != nil && previous.IsPublished() {
			page.PublishedAt = previous.PublishedAt
			return
		}
		now := time.Now().UTC()
		page.PublishedAt = &now
	default:
		page.Status = content.PageStatusDraft
		page.PublishedAt = nil
	}
}

func (s *PageService) notifySaved(page *content.PageNode) {
	if s.publisher != nil {
		s.publisher.BroadcastSaved("page", page.ID, page.Slug)
	}
}

// ExtractBody produces a best-effort plain HTML body from a page document by
// concatenating the markup of its editor and text nodes in tree order.
func ExtractBody(doc *builder.Document) string {
	if doc == nil {
		return ""
	}

	var parts []string
	var walk func(nodes []*builder.Node)
	walk = func(nodes []*builder.Node) {
		for _, node := range nodes {
			switch node.Type {
			case builder.NodeTypeEditor, builder.NodeTypeText:
				if html, ok := node.Data["html"].(string); ok && html != "" {
					parts = append(parts, html)
				} else if text, ok := node.Data["text"].(string); ok && text != "" {
					parts = append(parts, text)
				}
			}
			walk(node.Nodes)
		}
	}
	walk(doc.Nodes)

	return strings.Join(parts, "\n")
}
