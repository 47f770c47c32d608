package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

func TestSerializeEmitsCanonicalVersion(t *testing.T) {
	wire := NewDocumentSerializer().Serialize(builder.NewDocument())
	assert.Equal(t, builder.CanonicalVersion, wire["version"])
	assert.NotNil(t, wire["nodes"])
	assert.NotNil(t, wire["canvas"])
	assert.NotNil(t, wire["template"])
}

func TestSerializeNeverWritesOldVersionsBack(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	serializer := NewDocumentSerializer()

	doc := parser.Parse(decodeJSON(t, `{"version": 2, "blocks": []}`))
	wire := serializer.Serialize(doc)
	assert.Equal(t, builder.CanonicalVersion, wire["version"])
}

func TestSerializeParseRoundTrip(t *testing.T) {
	parser := NewDocumentParser(testIDs())
	serializer := NewDocumentSerializer()

	doc := parser.Parse(decodeJSON(t, `{
		"version": 4,
		"template": {"id": "tpl-1", "menu": "main", "footer": "bottom"},
		"canvas": {"snapPx": 8, "widths": {"mobile": 360, "tablet": 768, "desktop": 1440}, "minHeightPx": 900},
		"nodes": [
			{
				"id": "section", "type": "frame", "data": {"label": "Hero"},
				"meta": {"name": "Hero section", "collapsed": true},
				"frames": {
					"mobile": {"x": 0, "y": 0, "w": 360, "h": 500, "z": 1},
					"tablet": {"x": 0, "y": 0, "w": 768, "h": 500, "z": 1},
					"desktop": {"x": 0, "y": 0, "w": 1440, "h": 500, "z": 1}
				},
				"nodes": [
					{"id": "headline", "type": "text", "data": {"text": "Welcome"},
					 "frames": {
						"mobile": {"x": 24, "y": 24, "w": 312, "h": 80, "z": 2},
						"tablet": {"x": 24, "y": 24, "w": 720, "h": 80, "z": 2},
						"desktop": {"x": 24, "y": 24, "w": 1392, "h": 80, "z": 2}
					 }}
				]
			},
			{"id": "v", "type": "video", "data": {"src": "clip.mp4"}}
		]
	}`))

	encoded, err := serializer.SerializeJSON(doc)
	require.NoError(t, err)

	reparsed := NewDocumentParser(testIDs()).Parse(decodeJSON(t, string(encoded)))
	assert.Equal(t, serializer.Comparable(doc), serializer.Comparable(reparsed))

	assert.Equal(t, "tpl-1", reparsed.Template.ID)
	assert.Equal(t, 8, reparsed.Canvas.SnapPx)
	require.NotNil(t, reparsed.Nodes[0].Meta)
	assert.True(t, reparsed.Nodes[0].Meta.Collapsed)
	assert.Equal(t, "video", reparsed.Nodes[1].OriginalType)
}

func TestSerializeOmitsZeroMeta(t *testing.T) {
	doc := builder.NewDocument()
	doc.Nodes = append(doc.Nodes, &builder.Node{
		ID:     "a",
		Type:   builder.NodeTypeText,
		Data:   map[string]any{},
		Frames: builder.UniformFrames(builder.Frame{W: 100, H: 40, Z: 1}),
	})

	wire := NewDocumentSerializer().Serialize(doc)
	node := wire["nodes"].([]any)[0].(map[string]any)
	_, hasMeta := node["meta"]
	assert.False(t, hasMeta)
}

func TestComparableIgnoresNodeIdentity(t *testing.T) {
	serializer := NewDocumentSerializer()

	a := decodeJSON(t, `{"version": 4, "nodes": [{"id": "one", "type": "text", "data": {"text": "hi"},
		"frames": {"mobile": {"x":0,"y":0,"w":100,"h":40,"z":1},
		           "tablet": {"x":0,"y":0,"w":100,"h":40,"z":1},
		           "desktop": {"x":0,"y":0,"w":100,"h":40,"z":1}}}]}`)
	b := decodeJSON(t, `{"version": 4, "nodes": [{"id": "two", "type": "text", "data": {"text": "hi"},
		"frames": {"mobile": {"x":0,"y":0,"w":100,"h":40,"z":1},
		           "tablet": {"x":0,"y":0,"w":100,"h":40,"z":1},
		           "desktop": {"x":0,"y":0,"w":100,"h":40,"z":1}}}]}`)

	assert.Equal(t, serializer.Comparable(a), serializer.Comparable(b))
}

func TestComparableDetectsContentDifferences(t *testing.T) {
	serializer := NewDocumentSerializer()

	a := decodeJSON(t, `{"version": 4, "nodes": [{"id": "x", "type": "text", "data": {"text": "hi"}}]}`)
	b := decodeJSON(t, `{"version": 4, "nodes": [{"id": "x", "type": "text", "data": {"text": "bye"}}]}`)

	assert.NotEqual(t, serializer.Comparable(a), serializer.Comparable(b))
}

func TestComparableStripsNestedNodeIDs(t *testing.T) {
	serializer := NewDocumentSerializer()
	comparable := serializer.Comparable(decodeJSON(t, `{
		"version": 4,
		"nodes": [{"id": "parent", "type": "frame", "data": {},
			"nodes": [{"id": "child", "type": "text", "data": {}}]}]
	}`))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(comparable), &decoded))

	var checkNodes func(nodes any)
	checkNodes = func(nodes any) {
		list, ok := nodes.([]any)
		if !ok {
			return
		}
		for _, item := range list {
			node := item.(map[string]any)
			_, found := node["id"]
			assert.False(t, found)
			checkNodes(node["nodes"])
		}
	}
	checkNodes(decoded["nodes"])
}

func TestComparableDetectsTemplateChange(t *testing.T) {
	serializer := NewDocumentSerializer()

	a := decodeJSON(t, `{"version": 4, "template": {"id": "tpl-1"}, "nodes": []}`)
	b := decodeJSON(t, `{"version": 4, "template": {"id": "tpl-2"}, "nodes": []}`)

	assert.NotEqual(t, serializer.Comparable(a), serializer.Comparable(b))
}

func TestComparableKeepsIDKeysInsideData(t *testing.T) {
	serializer := NewDocumentSerializer()

	a := decodeJSON(t, `{"version": 4, "nodes": [{"id": "x", "type": "shadcn",
		"data": {"props": {"id": "accordion-a"}}}]}`)
	b := decodeJSON(t, `{"version": 4, "nodes": [{"id": "x", "type": "shadcn",
		"data": {"props": {"id": "accordion-b"}}}]}`)

	assert.NotEqual(t, serializer.Comparable(a), serializer.Comparable(b))
}
