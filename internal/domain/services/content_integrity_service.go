// Package services provides orphan and broken-reference detection
package services

import (
	"strings"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// ContentIntegrityService inspects page and template documents for the
// references they carry: menus placed on the canvas and internal links inside
// node data. It computes which menus nothing points at and which internal
// links point at nothing.
type ContentIntegrityService struct{}

func NewContentIntegrityService() *ContentIntegrityService {
	return &ContentIntegrityService{}
}

// CollectMenuReferences returns the menu references a document carries, taken
// from the data of its menu nodes.
func (s *ContentIntegrityService) CollectMenuReferences(doc *builder.Document) []string {
	var refs []string
	if doc == nil {
		return refs
	}

	if doc.Template.Menu != "" {
		refs = append(refs, doc.Template.Menu)
	}
	if doc.Template.Footer != "" {
		refs = append(refs, doc.Template.Footer)
	}

	var walk func(nodes []*builder.Node)
	walk = func(nodes []*builder.Node) {
		for _, node := range nodes {
			if node.Type == builder.NodeTypeMenu {
				if menuRef, ok := node.Data["menu"].(string); ok && menuRef != "" {
					refs = append(refs, menuRef)
				}
			}
			walk(node.Nodes)
		}
	}
	walk(doc.Nodes)

	return refs
}

// CollectLinkSlugs returns the internal page slugs a document links to,
// scanning every node's data recursively for href values. External links and
// anchors are skipped; "/" resolves to homeSlug.
func (s *ContentIntegrityService) CollectLinkSlugs(doc *builder.Document, homeSlug string) []string {
	var slugs []string
	if doc == nil {
		return slugs
	}

	var walk func(nodes []*builder.Node)
	walk = func(nodes []*builder.Node) {
		for _, node := range nodes {
			s.scanForLinks(node.Data, homeSlug, &slugs)
			walk(node.Nodes)
		}
	}
	walk(doc.Nodes)

	return slugs
}

// OrphanMenus returns the ids of menus no reference resolves to. A reference
// matches a menu by id or by lowercased title.
func (s *ContentIntegrityService) OrphanMenus(menuIDs map[string]string, references []string) []string {
	referenced := make(map[string]bool, len(references))
	for _, ref := range references {
		referenced[strings.ToLower(ref)] = true
	}

	var orphans []string
	for id, title := range menuIDs {
		if referenced[strings.ToLower(id)] || referenced[strings.ToLower(title)] {
			continue
		}
		orphans = append(orphans, id)
	}
	return orphans
}

// BrokenLinks returns the link slugs that no known page slug satisfies.
func (s *ContentIntegrityService) BrokenLinks(links []string, pageSlugs map[string]bool) []string {
	var broken []string
	seen := make(map[string]bool)
	for _, link := range links {
		if pageSlugs[link] || seen[link] {
			continue
		}
		seen[link] = true
		broken = append(broken, link)
	}
	return broken
}

func (s *ContentIntegrityService) scanForLinks(data any, homeSlug string, slugs *[]string) {
	switch v := data.(type) {
	case map[string]any:
		if href, ok := v["href"].(string); ok && href != "" {
			if slug := s.cleanSlug(href, homeSlug); slug != "" {
				*slugs = append(*slugs, slug)
			}
		}
		for _, value := range v {
			s.scanForLinks(value, homeSlug, slugs)
		}
	case []any:
		for _, item := range v {
			s.scanForLinks(item, homeSlug, slugs)
		}
	}
}

func (s *ContentIntegrityService) isExternal(url string) bool {
	return strings.Contains(url, "://") ||
		strings.HasPrefix(url, "mailto:") ||
		strings.HasPrefix(url, "tel:") ||
		strings.HasPrefix(url, "#")
}

func (s *ContentIntegrityService) cleanSlug(url, homeSlug string) string {
	if s.isExternal(url) {
		return ""
	}
	if url == "/" || url == "" {
		return homeSlug
	}

	url = strings.TrimPrefix(url, "/")

	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}
	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}

	return url
}
