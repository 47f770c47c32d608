package services

import (
	"testing"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/content"
	domainservices "github.com/PageForgeHQ/pageforge-go/internal/domain/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompositionFixture(t *testing.T, templates *fakeTemplateRepo) *CompositionService {
	t.Helper()
	ids := sequentialIDs("cmp")
	composer := domainservices.NewSlotComposer(ids)
	templateSvc := NewTemplateService(templates, composer, ids, nil)
	parser := domainservices.NewDocumentParser(ids)
	return NewCompositionService(templateSvc, parser, composer, domainservices.NewSlotDecomposer())
}

func slottedTemplateDefinition() *builder.Document {
	doc := builder.NewDocument()
	doc.Nodes = []*builder.Node{
		{
			ID:     "tpl-header",
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": "main", "kind": "top"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 0, W: 1280, H: 96, Z: 1}),
		},
		{
			ID:     "tpl-slot",
			Type:   builder.NodeTypeSlot,
			Data:   map[string]any{"name": "Page content"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 120, W: 1280, H: 400, Z: 1}),
		},
		{
			ID:     "tpl-footer",
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": "footer", "kind": "footer"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 560, W: 1280, H: 96, Z: 1}),
		},
	}
	return doc
}

func TestComposePreviewUnknownTemplate(t *testing.T) {
	svc := newCompositionFixture(t, newFakeTemplateRepo())

	_, err := svc.ComposePreview("missing", map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestComposePreviewSubstitutesContentIntoSlot(t *testing.T) {
	templates := newFakeTemplateRepo()
	templates.templates["t1"] = &content.PageTemplateNode{
		ID:         "t1",
		Slug:       "standard",
		Title:      "Standard",
		Definition: slottedTemplateDefinition(),
	}
	svc := newCompositionFixture(t, templates)

	rawContent := map[string]any{
		"version": builder.CanonicalVersion,
		"nodes": []any{
			map[string]any{
				"id":   "body-text",
				"type": "text",
				"data": map[string]any{"text": "hello"},
				"frames": map[string]any{
					"desktop": map[string]any{"x": 0, "y": 0, "w": 600, "h": 200, "z": 1},
				},
			},
		},
	}

	composed, err := svc.ComposePreview("standard", rawContent)
	require.NoError(t, err)

	slot := composed.FindNode("tpl-slot")
	require.NotNil(t, slot)
	assert.Equal(t, builder.NodeTypeFrame, slot.Type)
	require.Len(t, slot.Nodes, 1)
	assert.Equal(t, "body-text", slot.Nodes[0].ID)
}

func TestComposePreviewSynthesizesFallbackForSlotlessTemplate(t *testing.T) {
	templates := newFakeTemplateRepo()
	templates.templates["t1"] = &content.PageTemplateNode{
		ID:     "t1",
		Slug:   "bare",
		Title:  "Bare",
		Menu:   "main",
		Footer: "footer",
	}
	svc := newCompositionFixture(t, templates)

	composed, err := svc.ComposePreview("bare", map[string]any{})
	require.NoError(t, err)

	// Fallback layout: menu, content container, footer.
	require.Len(t, composed.Nodes, 3)
	assert.Equal(t, builder.NodeTypeMenu, composed.Nodes[0].Type)
	assert.Equal(t, builder.NodeTypeFrame, composed.Nodes[1].Type)
	assert.Equal(t, builder.NodeTypeMenu, composed.Nodes[2].Type)
}

func TestDecomposeRoundTrip(t *testing.T) {
	templates := newFakeTemplateRepo()
	templates.templates["t1"] = &content.PageTemplateNode{
		ID:         "t1",
		Slug:       "standard",
		Title:      "Standard",
		Definition: slottedTemplateDefinition(),
	}
	svc := newCompositionFixture(t, templates)
	serializer := domainservices.NewDocumentSerializer()

	rawContent := map[string]any{
		"version": builder.CanonicalVersion,
		"nodes": []any{
			map[string]any{
				"id":   "body-text",
				"type": "text",
				"data": map[string]any{"text": "hello"},
				"frames": map[string]any{
					"desktop": map[string]any{"x": 0, "y": 0, "w": 600, "h": 200, "z": 1},
				},
			},
		},
	}

	composed, err := svc.ComposePreview("standard", rawContent)
	require.NoError(t, err)

	// Splitting the untouched composition back apart recovers the content and
	// leaves the template unchanged.
	result, err := svc.Decompose("standard", "", serializer.Serialize(composed))
	require.NoError(t, err)

	assert.Equal(t, serializer.Comparable(rawContent), serializer.Comparable(result.Content))
	assert.Equal(t,
		serializer.Comparable(templates.templates["t1"].Definition),
		serializer.Comparable(result.TemplatePatch))
}

func TestDecomposeMissingSlot(t *testing.T) {
	templates := newFakeTemplateRepo()
	templates.templates["t1"] = &content.PageTemplateNode{
		ID:         "t1",
		Slug:       "standard",
		Title:      "Standard",
		Definition: slottedTemplateDefinition(),
	}
	svc := newCompositionFixture(t, templates)

	// An edited document where the slot container was deleted cannot be split.
	edited := map[string]any{
		"version": builder.CanonicalVersion,
		"nodes":   []any{},
	}

	_, err := svc.Decompose("standard", "tpl-slot", edited)
	require.Error(t, err)
}
