package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

func TestDecomposeInvertsCompose(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()
	serializer := NewDocumentSerializer()

	template := testTemplate()
	content := testContent()
	composed := composer.Compose(template, content)

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	assert.Equal(t, serializer.Comparable(content), serializer.Comparable(result.Content))
	assert.Equal(t, serializer.Comparable(template), serializer.Comparable(result.TemplatePatch))
}

func TestDecomposeExtractsEditedContent(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	// Edit inside the slot: change copy and add a node.
	slot := composed.FindNode("slot")
	slot.Nodes[0].Data["html"] = "<p>edited</p>"
	slot.Nodes = append(slot.Nodes, &builder.Node{
		ID:     "extra",
		Type:   builder.NodeTypeButton,
		Data:   map[string]any{"label": "Go"},
		Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 1010, W: 200, H: 56, Z: 1}),
	})

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	require.Len(t, result.Content.Nodes, 2)
	assert.Equal(t, "<p>edited</p>", result.Content.Nodes[0].Data["html"])
	assert.Equal(t, "extra", result.Content.Nodes[1].ID)
}

func TestDecomposeShiftsKnownNodesBackByBaselinePosition(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	// The footer moved down 700 during composition; it must come back.
	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	footer := result.TemplatePatch.FindNode("footer")
	require.NotNil(t, footer)
	for _, bp := range builder.Breakpoints {
		assert.Equal(t, 440, footer.Frames.Get(bp).Y)
		assert.Equal(t, 0, result.TemplatePatch.FindNode("menu").Frames.Get(bp).Y)
	}
}

func TestDecomposeRestoresSlotPlaceholder(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	// Nudge the slot container sideways; position edits survive, height does
	// not.
	slot := composed.FindNode("slot")
	for _, bp := range builder.Breakpoints {
		frame := slot.Frames.Get(bp)
		frame.X = 50
		slot.Frames.Set(bp, frame)
	}

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	restored := result.TemplatePatch.FindNode("slot")
	require.NotNil(t, restored)
	assert.Equal(t, builder.NodeTypeSlot, restored.Type)
	assert.Nil(t, restored.Nodes)
	assert.Equal(t, 50, restored.Frames.Desktop.X)
	assert.Equal(t, 300, restored.Frames.Desktop.H)
	assert.Equal(t, "Page content", restored.Data["name"])
}

func TestDecomposeNewNodeShiftsOnlyBelowGrownSlot(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	// Slot grew 700px: placeholder bottom 420, grown bottom 1120. A new
	// top-level node at the grown bottom belongs below the slot; one just
	// above it does not.
	composed.Nodes = append(composed.Nodes,
		&builder.Node{
			ID:     "below",
			Type:   builder.NodeTypeText,
			Data:   map[string]any{},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 1120, W: 200, H: 40, Z: 1}),
		},
		&builder.Node{
			ID:     "beside",
			Type:   builder.NodeTypeText,
			Data:   map[string]any{},
			Frames: builder.UniformFrames(builder.Frame{X: 0, Y: 1119, W: 200, H: 40, Z: 1}),
		},
	)

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	assert.Equal(t, 420, result.TemplatePatch.FindNode("below").Frames.Desktop.Y)
	assert.Equal(t, 1119, result.TemplatePatch.FindNode("beside").Frames.Desktop.Y)
}

func TestDecomposeKeepsTemplateEditsOutsideSlot(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())
	composed.FindNode("menu").Data["menu"] = "secondary"

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	assert.Equal(t, "secondary", result.TemplatePatch.FindNode("menu").Data["menu"])
	assert.Equal(t, "main", template.FindNode("menu").Data["menu"])
}

func TestDecomposeErrorsWhenSlotMissing(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	_, err := decomposer.Decompose(composed, template, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in edited document")

	// A baseline whose node is not a slot placeholder is also rejected.
	_, err = decomposer.Decompose(composed, composed, "slot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in baseline template")
}

func TestDecomposeDoesNotMutateInputs(t *testing.T) {
	composer := NewSlotComposer(testIDs())
	decomposer := NewSlotDecomposer()

	template := testTemplate()
	composed := composer.Compose(template, testContent())

	result, err := decomposer.Decompose(composed, template, "slot")
	require.NoError(t, err)

	result.Content.Nodes[0].Data["html"] = "<p>changed</p>"
	result.TemplatePatch.FindNode("footer").Frames.Mobile = builder.Frame{}

	assert.Equal(t, "<p>body</p>", composed.FindNode("slot").Nodes[0].Data["html"])
	assert.Equal(t, 1140, composed.FindNode("footer").Frames.Mobile.Y)
	assert.Equal(t, builder.NodeTypeFrame, composed.FindNode("slot").Type)
}
