package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

func testIDs() builder.IDSource {
	seq := 0
	return func() string {
		seq++
		return fmt.Sprintf("test-%d", seq)
	}
}

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

// assertTreeInvariants checks the container rule and id uniqueness across a
// whole document.
func assertTreeInvariants(t *testing.T, doc *builder.Document) {
	t.Helper()
	require.NotNil(t, doc.Nodes)

	seen := map[string]bool{}
	var walk func(nodes []*builder.Node)
	walk = func(nodes []*builder.Node) {
		for _, n := range nodes {
			require.NotEmpty(t, n.ID)
			assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
			seen[n.ID] = true
			require.NotNil(t, n.Data)

			if n.IsContainer() {
				assert.NotNil(t, n.Nodes, "container %s must carry a child list", n.ID)
			} else if len(n.Nodes) > 0 {
				assert.Contains(t,
					[]builder.NodeType{builder.NodeTypeShadcn, builder.NodeTypeUnknown}, n.Type,
					"leaf %s of type %s must not carry children", n.ID, n.Type)
			}
			walk(n.Nodes)
		}
	}
	walk(doc.Nodes)
}

func TestParseEmptyMapYieldsDefaultDocument(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(map[string]any{})

	require.Len(t, doc.Nodes, 1)
	section := doc.Nodes[0]
	assert.Equal(t, builder.NodeTypeFrame, section.Type)
	require.Len(t, section.Nodes, 1)
	assert.Equal(t, builder.NodeTypeEditor, section.Nodes[0].Type)
	assert.Equal(t, "<p></p>", section.Nodes[0].Data["html"])
	assert.Equal(t, builder.DefaultCanvasSettings(), doc.Canvas)
	assertTreeInvariants(t, doc)
}

func TestParseNilAndGarbageDegradeToDefault(t *testing.T) {
	serializer := NewDocumentSerializer()

	want := serializer.Comparable(map[string]any{})
	assert.Equal(t, want, serializer.Comparable(nil))
	assert.Equal(t, want, serializer.Comparable("not a document"))
	assert.Equal(t, want, serializer.Comparable([]any{1, 2, 3}))
}

func TestDetectVersion(t *testing.T) {
	assert.Equal(t, 4, detectVersion(map[string]any{"version": float64(4)}))
	assert.Equal(t, 3, detectVersion(map[string]any{"version": "3"}))
	assert.Equal(t, 2, detectVersion(map[string]any{"version": " 2 "}))
	assert.Equal(t, 1, detectVersion(map[string]any{"version": "latest"}))
	assert.Equal(t, 1, detectVersion(map[string]any{"version": float64(-2)}))
	assert.Equal(t, 1, detectVersion(map[string]any{}))
	assert.Equal(t, 7, detectVersion(map[string]any{"version": float64(7)}))
}

func TestParseCanonicalClampsCanvasFields(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"canvas": {
			"snapPx": 99,
			"widths": {"mobile": 100, "tablet": 820, "desktop": 99999},
			"minHeightPx": 50
		},
		"nodes": []
	}`))

	assert.Equal(t, 32, doc.Canvas.SnapPx)
	assert.Equal(t, 240, doc.Canvas.Widths.Mobile)
	assert.Equal(t, 820, doc.Canvas.Widths.Tablet)
	assert.Equal(t, 8000, doc.Canvas.Widths.Desktop)
	assert.Equal(t, 200, doc.Canvas.MinHeightPx)
	assert.Empty(t, doc.Nodes)
}

func TestParseCanonicalDefaultsMissingFrames(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"nodes": [{"id": "a", "type": "editor", "data": {}}]
	}`))

	require.Len(t, doc.Nodes, 1)
	frame := doc.Nodes[0].Frames.Get(builder.BreakpointMobile)
	assert.Equal(t, 390, frame.W)
	assert.Equal(t, 260, frame.H)
	assert.Equal(t, 1, frame.Z)
}

func TestParseCanonicalRepairsFrameValues(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"nodes": [{
			"id": "a", "type": "text", "data": {},
			"frames": {
				"mobile": {"x": 5, "y": -10, "w": 0, "h": -3, "z": 0},
				"tablet": {"x": "oops", "y": 20, "w": 300, "h": 40},
				"desktop": {"x": 0, "y": 0, "w": 300, "h": 40, "z": 3}
			}
		}]
	}`))

	mobile := doc.Nodes[0].Frames.Get(builder.BreakpointMobile)
	assert.Equal(t, builder.Frame{X: 5, Y: -10, W: 1, H: 1, Z: 1}, mobile)

	tablet := doc.Nodes[0].Frames.Get(builder.BreakpointTablet)
	assert.Equal(t, 0, tablet.X)
	assert.Equal(t, 1, tablet.Z)

	assert.Equal(t, 3, doc.Nodes[0].Frames.Get(builder.BreakpointDesktop).Z)
}

func TestParsePreservesUnknownNodeTypes(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"nodes": [{
			"id": "v", "type": "video",
			"data": {"src": "https://example.com/clip.mp4", "loop": true}
		}]
	}`))

	require.Len(t, doc.Nodes, 1)
	node := doc.Nodes[0]
	assert.Equal(t, builder.NodeTypeUnknown, node.Type)
	assert.Equal(t, "video", node.OriginalType)
	assert.Equal(t, "https://example.com/clip.mp4", node.Data["src"])

	wire := NewDocumentSerializer().Serialize(doc)
	nodes := wire["nodes"].([]any)
	assert.Equal(t, "video", nodes[0].(map[string]any)["type"])
}

func TestParseRegeneratesDuplicateAndMissingIDs(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"nodes": [
			{"id": "same", "type": "text", "data": {}},
			{"id": "same", "type": "text", "data": {}},
			{"type": "text", "data": {}}
		]
	}`))

	require.Len(t, doc.Nodes, 3)
	assertTreeInvariants(t, doc)
	assert.Equal(t, "same", doc.Nodes[0].ID)
	assert.NotEqual(t, "same", doc.Nodes[1].ID)
}

func TestParseEnforcesContainerInvariant(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"nodes": [
			{"id": "f", "type": "frame", "data": {}},
			{"id": "t", "type": "text", "data": {}, "nodes": [
				{"id": "stray", "type": "text", "data": {}}
			]},
			{"id": "s", "type": "shadcn", "data": {}, "nodes": [
				{"id": "wrapped", "type": "button", "data": {}}
			]}
		]
	}`))

	require.Len(t, doc.Nodes, 3)
	assert.NotNil(t, doc.Nodes[0].Nodes)
	assert.Empty(t, doc.Nodes[0].Nodes)
	assert.Empty(t, doc.Nodes[1].Nodes)
	require.Len(t, doc.Nodes[2].Nodes, 1)
	assertTreeInvariants(t, doc)
}

func TestParseAcceptsLegacyLayoutNodeWrapper(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"layout": {"nodes": [{"id": "a", "type": "text", "data": {}}]}
	}`))

	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, builder.NodeTypeText, doc.Nodes[0].Type)
}

func TestParseFutureVersionWalksCanonically(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	doc := parser.Parse(decodeJSON(t, `{
		"version": 9,
		"nodes": [{"id": "a", "type": "button", "data": {}}]
	}`))

	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, builder.NodeTypeButton, doc.Nodes[0].Type)
}

func TestParseIsIdempotentAcrossSerialization(t *testing.T) {
	serializer := NewDocumentSerializer()

	inputs := []string{
		`{}`,
		`{"version": 2, "blocks": [{"type": "tiptap", "data": {"doc": {"type": "doc"}, "html": "<p>hi</p>"}}]}`,
		`{"version": 3, "layout": {"rows": [{"columns": [{"blocks": [{"type": "text", "data": {"text": "a"}}]}]}]}}`,
		`{"version": 4, "nodes": [{"id": "x", "type": "frame", "data": {}, "nodes": []}]}`,
	}

	for _, input := range inputs {
		first := NewDocumentParser(testIDs()).Parse(decodeJSON(t, input))
		wire, err := serializer.SerializeJSON(first)
		require.NoError(t, err)
		second := NewDocumentParser(testIDs()).Parse(decodeJSON(t, string(wire)))

		assert.Equal(t, serializer.Comparable(first), serializer.Comparable(second), "input %s", input)
	}
}
