// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"

	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
)

// IntegrityReport summarizes dangling references across the whole site.
type IntegrityReport struct {
	OrphanMenus []string            `json:"orphanMenus"`
	BrokenLinks map[string][]string `json:"brokenLinks"` // page slug -> unresolved link slugs
	PageCount   int                 `json:"pageCount"`
	MenuCount   int                 `json:"menuCount"`
}

// IntegrityService runs site-wide reference analysis for the admin dashboard
type IntegrityService struct {
	pages     *PageService
	templates *TemplateService
	menus     *MenuService
	checker   *domainservices.ContentIntegrityService
}

// NewIntegrityService creates a new integrity application service
func NewIntegrityService(pages *PageService, templates *TemplateService, menus *MenuService) *IntegrityService {
	return &IntegrityService{
		pages:     pages,
		templates: templates,
		menus:     menus,
		checker:   domainservices.NewContentIntegrityService(),
	}
}

// Analyze walks every page and template and reports menus nothing references
// and internal links that resolve to no page.
func (s *IntegrityService) Analyze(homeSlug string) (*IntegrityReport, error) {
	pages, err := s.pages.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load pages for analysis: %w", err)
	}
	templates, err := s.templates.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates for analysis: %w", err)
	}
	menus, err := s.menus.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load menus for analysis: %w", err)
	}

	var menuRefs []string
	for _, template := range templates {
		if template.Menu != "" {
			menuRefs = append(menuRefs, template.Menu)
		}
		if template.Footer != "" {
			menuRefs = append(menuRefs, template.Footer)
		}
		menuRefs = append(menuRefs, s.checker.CollectMenuReferences(template.Definition)...)
	}
	for _, page := range pages {
		menuRefs = append(menuRefs, s.checker.CollectMenuReferences(page.Blocks)...)
	}

	menuIDs := make(map[string]string, len(menus))
	for _, menu := range menus {
		menuIDs[menu.ID] = menu.Title
	}

	pageSlugs := make(map[string]bool, len(pages))
	for _, page := range pages {
		pageSlugs[page.Slug] = true
	}

	brokenLinks := make(map[string][]string)
	for _, page := range pages {
		links := s.checker.CollectLinkSlugs(page.Blocks, homeSlug)
		if broken := s.checker.BrokenLinks(links, pageSlugs); len(broken) > 0 {
			brokenLinks[page.Slug] = broken
		}
	}

	return &IntegrityReport{
		OrphanMenus: s.checker.OrphanMenus(menuIDs, menuRefs),
		BrokenLinks: brokenLinks,
		PageCount:   len(pages),
		MenuCount:   len(menus),
	}, nil
}
