package services

import (
	"testing"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/stretchr/testify/assert"
)

func linkedDocument() *builder.Document {
	doc := builder.NewDocument()
	doc.Template.Menu = "main"
	doc.Nodes = []*builder.Node{
		{
			ID:   "menu1",
			Type: builder.NodeTypeMenu,
			Data: map[string]any{"menu": "footer-menu", "kind": "footer"},
		},
		{
			ID:   "frame1",
			Type: builder.NodeTypeFrame,
			Nodes: []*builder.Node{
				{ID: "btn1", Type: builder.NodeTypeButton, Data: map[string]any{"label": "About", "href": "/about"}},
				{ID: "btn2", Type: builder.NodeTypeButton, Data: map[string]any{"label": "Home", "href": "/"}},
				{ID: "btn3", Type: builder.NodeTypeButton, Data: map[string]any{"label": "Docs", "href": "https://example.com/docs"}},
				{ID: "txt1", Type: builder.NodeTypeText, Data: map[string]any{
					"text":  "see pricing",
					"links": []any{map[string]any{"href": "/pricing?ref=footer"}},
				}},
			},
		},
	}
	return doc
}

func TestCollectMenuReferences(t *testing.T) {
	svc := NewContentIntegrityService()

	refs := svc.CollectMenuReferences(linkedDocument())
	assert.ElementsMatch(t, []string{"main", "footer-menu"}, refs)

	assert.Empty(t, svc.CollectMenuReferences(nil))
}

func TestCollectLinkSlugsSkipsExternalAndResolvesHome(t *testing.T) {
	svc := NewContentIntegrityService()

	slugs := svc.CollectLinkSlugs(linkedDocument(), "home")
	assert.ElementsMatch(t, []string{"about", "home", "pricing"}, slugs)
}

func TestOrphanMenusMatchesByIDAndTitle(t *testing.T) {
	svc := NewContentIntegrityService()

	menus := map[string]string{
		"01A": "Main",
		"01B": "Footer Menu",
		"01C": "Unused",
	}
	refs := []string{"main", "01B"}

	assert.ElementsMatch(t, []string{"01C"}, svc.OrphanMenus(menus, refs))
}

func TestBrokenLinksDeduplicates(t *testing.T) {
	svc := NewContentIntegrityService()

	pageSlugs := map[string]bool{"home": true, "about": true}
	links := []string{"home", "pricing", "pricing", "about", "missing"}

	assert.ElementsMatch(t, []string{"pricing", "missing"}, svc.BrokenLinks(links, pageSlugs))
}
