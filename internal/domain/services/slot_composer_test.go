package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// testTemplate builds a menu/slot/footer template: slot placeholder 300px
// tall starting at y=120, footer just below the slot's bottom edge (420).
func testTemplate() *builder.Document {
	doc := builder.NewDocument()
	doc.Nodes = []*builder.Node{
		{
			ID:     "menu",
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": "main", "kind": "top"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 0, W: 1200, H: 96, Z: 1}),
		},
		{
			ID:     "slot",
			Type:   builder.NodeTypeSlot,
			Data:   map[string]any{"name": "Page content"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 120, W: 1200, H: 300, Z: 1}),
		},
		{
			ID:     "footer",
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": "bottom", "kind": "footer"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 440, W: 1200, H: 96, Z: 1}),
		},
	}
	return doc
}

// testContent builds page content whose tallest node reaches y=1000, above
// the default 800px floor.
func testContent() *builder.Document {
	doc := builder.NewDocument()
	doc.Nodes = []*builder.Node{
		{
			ID:     "body",
			Type:   builder.NodeTypeEditor,
			Data:   map[string]any{"html": "<p>body</p>"},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 0, W: 1200, H: 1000, Z: 1}),
		},
	}
	return doc
}

func TestComposeGrowsSlotAndShiftsLaterRegions(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := testTemplate()
	content := testContent()

	composed := composer.Compose(template, content)

	slot := composed.FindNode("slot")
	require.NotNil(t, slot)
	assert.Equal(t, builder.NodeTypeFrame, slot.Type)
	require.Len(t, slot.Nodes, 1)
	assert.Equal(t, "<p>body</p>", slot.Nodes[0].Data["html"])

	for _, bp := range builder.Breakpoints {
		assert.Equal(t, 1000, slot.Frames.Get(bp).H)
		assert.Equal(t, 120, slot.Frames.Get(bp).Y)
		assert.Equal(t, 0, composed.FindNode("menu").Frames.Get(bp).Y)
		assert.Equal(t, 440+700, composed.FindNode("footer").Frames.Get(bp).Y)
	}
}

func TestComposeFloorsSlotHeightAtContentMinimum(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	content := testContent()
	content.Nodes[0].Frames = builder.UniformFrames(builder.Frame{X: 0, Y: 0, W: 1200, H: 100, Z: 1})

	composed := composer.Compose(testTemplate(), content)

	// 800px floor, placeholder was 300 so everything below moves down 500.
	assert.Equal(t, 800, composed.FindNode("slot").Frames.Desktop.H)
	assert.Equal(t, 440+500, composed.FindNode("footer").Frames.Desktop.Y)
}

func TestComposeShrinksSlotWhenContentIsShorterThanPlaceholder(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := testTemplate()
	template.FindNode("slot").Frames = builder.UniformFrames(builder.Frame{X: 0, Y: 120, W: 1200, H: 2000, Z: 1})
	template.FindNode("footer").Frames = builder.UniformFrames(builder.Frame{X: 0, Y: 2200, W: 1200, H: 96, Z: 1})

	composed := composer.Compose(template, testContent())

	assert.Equal(t, 1000, composed.FindNode("slot").Frames.Desktop.H)
	assert.Equal(t, 2200-1000, composed.FindNode("footer").Frames.Desktop.Y)
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := testTemplate()
	content := testContent()

	composer.Compose(template, content)

	assert.Equal(t, builder.NodeTypeSlot, template.FindNode("slot").Type)
	assert.Equal(t, 300, template.FindNode("slot").Frames.Desktop.H)
	assert.Equal(t, 440, template.FindNode("footer").Frames.Desktop.Y)
	assert.Nil(t, template.FindNode("slot").Nodes)
	require.Len(t, content.Nodes, 1)
	assert.Equal(t, 1000, content.Nodes[0].Frames.Desktop.H)
}

func TestComposeCarriesContentTemplateAndCanvasSettings(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	content := testContent()
	content.Template = builder.TemplateSettings{ID: "tpl-9", Menu: "main", Footer: "bottom"}
	content.Canvas.MinHeightPx = 900

	composed := composer.Compose(testTemplate(), content)

	assert.Equal(t, "tpl-9", composed.Template.ID)
	assert.Equal(t, 900, composed.Canvas.MinHeightPx)
}

func TestComposeWithoutSlotReturnsTemplateTree(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := testTemplate()
	require.True(t, template.RemoveNode("slot"))

	composed := composer.Compose(template, testContent())

	assert.Nil(t, composed.FindNode("body"))
	assert.NotNil(t, composed.FindNode("menu"))
	assert.NotNil(t, composed.FindNode("footer"))
}

func TestFindSlotLocatesNestedPlaceholder(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := builder.NewDocument()
	template.Nodes = []*builder.Node{
		{
			ID:   "wrapper",
			Type: builder.NodeTypeFrame,
			Data: map[string]any{},
			Nodes: []*builder.Node{
				{ID: "inner-slot", Type: builder.NodeTypeSlot, Data: map[string]any{}},
			},
		},
	}

	found := composer.FindSlot(template)
	require.NotNil(t, found)
	assert.Equal(t, "inner-slot", found.ID)

	assert.Nil(t, composer.FindSlot(builder.NewDocument()))
}

func TestFallbackTemplateLayout(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	template := composer.FallbackTemplate("main", "bottom")

	require.Len(t, template.Nodes, 3)
	menu, slot, footer := template.Nodes[0], template.Nodes[1], template.Nodes[2]

	assert.Equal(t, builder.NodeTypeMenu, menu.Type)
	assert.Equal(t, builder.NodeTypeSlot, slot.Type)
	assert.Equal(t, builder.NodeTypeMenu, footer.Type)

	assert.Equal(t, 0, menu.Frames.Desktop.Y)
	assert.Equal(t, 96, menu.Frames.Desktop.H)
	assert.Equal(t, 120, slot.Frames.Desktop.Y)
	assert.Equal(t, 1200, slot.Frames.Desktop.H)
	assert.Equal(t, 1360, footer.Frames.Desktop.Y)
	assert.Equal(t, 96, footer.Frames.Desktop.H)

	assert.Equal(t, 390, menu.Frames.Mobile.W)
	assert.Equal(t, 1200, slot.Frames.Desktop.W)

	assert.Equal(t, "main", template.Template.Menu)
	assert.Equal(t, "bottom", template.Template.Footer)
	assert.Equal(t, "main", menu.Data["menu"])
	assert.Equal(t, "footer", footer.Data["kind"])
}

func TestFallbackTemplateNoneSentinelSuppressesRegions(t *testing.T) {
	composer := NewSlotComposer(testIDs())

	template := composer.FallbackTemplate(MenuNone, "")
	require.Len(t, template.Nodes, 1)
	assert.Equal(t, builder.NodeTypeSlot, template.Nodes[0].Type)
	assert.Equal(t, 0, template.Nodes[0].Frames.Desktop.Y)
	assert.Empty(t, template.Template.Menu)
	assert.Empty(t, template.Template.Footer)

	onlyFooter := composer.FallbackTemplate("none", "bottom")
	require.Len(t, onlyFooter.Nodes, 2)
	assert.Equal(t, builder.NodeTypeSlot, onlyFooter.Nodes[0].Type)
	assert.Equal(t, 1240, onlyFooter.Nodes[1].Frames.Desktop.Y)
}
