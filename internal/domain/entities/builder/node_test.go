package builder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) IDSource {
	seq := 0
	return func() string {
		seq++
		return fmt.Sprintf("%s-%d", prefix, seq)
	}
}

func sampleTree() *Node {
	return &Node{
		ID:   "root",
		Type: NodeTypeFrame,
		Data: map[string]any{"label": "Section", "style": map[string]any{"bg": "white"}},
		Nodes: []*Node{
			{
				ID:     "child-text",
				Type:   NodeTypeText,
				Data:   map[string]any{"text": "hello"},
				Frames: UniformFrames(Frame{X: 10, Y: 10, W: 100, H: 80, Z: 1}),
			},
			{
				ID:    "child-shape",
				Type:  NodeTypeShape,
				Data:  map[string]any{},
				Nodes: []*Node{},
			},
		},
		Frames: UniformFrames(Frame{X: 0, Y: 0, W: 400, H: 500, Z: 1}),
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleTree()
	copied := original.Clone()

	copied.Data["label"] = "changed"
	copied.Data["style"].(map[string]any)["bg"] = "black"
	copied.Nodes[0].Data["text"] = "bye"

	assert.Equal(t, "Section", original.Data["label"])
	assert.Equal(t, "white", original.Data["style"].(map[string]any)["bg"])
	assert.Equal(t, "hello", original.Nodes[0].Data["text"])
	assert.Equal(t, "root", copied.ID)
}

func TestCloneWithIDsRegeneratesEveryID(t *testing.T) {
	original := sampleTree()
	copied := original.CloneWithIDs(sequentialIDs("n"))

	assert.Equal(t, "n-1", copied.ID)
	assert.Equal(t, "n-2", copied.Nodes[0].ID)
	assert.Equal(t, "n-3", copied.Nodes[1].ID)
	assert.Equal(t, "root", original.ID)
}

func TestFindNodeDepthFirst(t *testing.T) {
	doc := &Document{Nodes: []*Node{sampleTree()}}

	require.NotNil(t, doc.FindNode("child-shape"))
	assert.Equal(t, NodeTypeShape, doc.FindNode("child-shape").Type)
	assert.Nil(t, doc.FindNode("missing"))
}

func TestFindFirstByTypeReturnsDocumentOrderMatch(t *testing.T) {
	doc := &Document{Nodes: []*Node{
		{ID: "a", Type: NodeTypeMenu},
		sampleTree(),
		{ID: "b", Type: NodeTypeText},
	}}

	found := FindFirstByType(doc.Nodes, NodeTypeText)
	require.NotNil(t, found)
	assert.Equal(t, "child-text", found.ID)
}

func TestInsertNodeIntoContainer(t *testing.T) {
	doc := &Document{Nodes: []*Node{sampleTree()}}

	ok := doc.InsertNode("root", &Node{ID: "new", Type: NodeTypeButton, Data: map[string]any{}})
	require.True(t, ok)
	assert.NotNil(t, doc.FindNode("new"))

	assert.False(t, doc.InsertNode("child-text", &Node{ID: "bad", Type: NodeTypeButton}))
	assert.False(t, doc.InsertNode("missing", &Node{ID: "bad", Type: NodeTypeButton}))
}

func TestInsertContainerInitializesChildList(t *testing.T) {
	doc := &Document{Nodes: []*Node{}}

	require.True(t, doc.InsertNode("", &Node{ID: "f", Type: NodeTypeFrame}))
	assert.NotNil(t, doc.FindNode("f").Nodes)
}

func TestRemoveNodeAnywhereInTree(t *testing.T) {
	doc := &Document{Nodes: []*Node{sampleTree()}}

	require.True(t, doc.RemoveNode("child-text"))
	assert.Nil(t, doc.FindNode("child-text"))
	assert.False(t, doc.RemoveNode("child-text"))
}

func TestIsContainerType(t *testing.T) {
	assert.True(t, IsContainerType(NodeTypeFrame))
	assert.True(t, IsContainerType(NodeTypeShape))
	assert.False(t, IsContainerType(NodeTypeShadcn))
	assert.False(t, IsContainerType(NodeTypeText))
}
