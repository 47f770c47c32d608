package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 1, 10))
	assert.Equal(t, 1, Clamp(-3, 1, 10))
	assert.Equal(t, 10, Clamp(99, 1, 10))
}

func TestSubtreeExtentUsesOwnHeightWhenChildrenFit(t *testing.T) {
	node := &Node{
		Type:   NodeTypeFrame,
		Frames: UniformFrames(Frame{X: 0, Y: 0, W: 400, H: 500, Z: 1}),
		Nodes: []*Node{
			{
				Type:   NodeTypeText,
				Frames: UniformFrames(Frame{X: 10, Y: 10, W: 100, H: 80, Z: 1}),
			},
		},
	}

	assert.Equal(t, 500, SubtreeExtent(node, BreakpointDesktop))
}

func TestSubtreeExtentFollowsOverflowingDescendant(t *testing.T) {
	node := &Node{
		Type:   NodeTypeFrame,
		Frames: UniformFrames(Frame{X: 0, Y: 0, W: 400, H: 300, Z: 1}),
		Nodes: []*Node{
			{
				Type:   NodeTypeImage,
				Frames: UniformFrames(Frame{X: 0, Y: 200, W: 100, H: 400, Z: 1}),
			},
		},
	}

	assert.Equal(t, 600, SubtreeExtent(node, BreakpointMobile))
}

func TestRequiredHeightFloorsAtMinimum(t *testing.T) {
	nodes := []*Node{
		{Type: NodeTypeText, Frames: UniformFrames(Frame{X: 0, Y: 0, W: 100, H: 80, Z: 1})},
	}

	assert.Equal(t, 800, RequiredHeight(nodes, BreakpointDesktop, 800))
	assert.Equal(t, 80, RequiredHeight(nodes, BreakpointDesktop, 0))
	assert.Equal(t, 800, RequiredHeight(nil, BreakpointDesktop, 800))
}

func TestRequiredHeightTracksDeepestBottom(t *testing.T) {
	nodes := []*Node{
		{Type: NodeTypeText, Frames: UniformFrames(Frame{X: 0, Y: 900, W: 100, H: 50, Z: 1})},
		{Type: NodeTypeText, Frames: UniformFrames(Frame{X: 0, Y: 0, W: 100, H: 80, Z: 1})},
	}

	assert.Equal(t, 950, RequiredHeight(nodes, BreakpointTablet, 800))
}

func TestBoundingBox(t *testing.T) {
	nodes := []*Node{
		{Type: NodeTypeText, Frames: UniformFrames(Frame{X: 20, Y: 40, W: 100, H: 60, Z: 1})},
		{Type: NodeTypeImage, Frames: UniformFrames(Frame{X: 200, Y: 10, W: 150, H: 300, Z: 1})},
	}

	box := BoundingBox(nodes, BreakpointDesktop)
	assert.Equal(t, 20, box.X)
	assert.Equal(t, 10, box.Y)
	assert.Equal(t, 330, box.W)
	assert.Equal(t, 300, box.H)

	assert.Equal(t, Frame{}, BoundingBox(nil, BreakpointDesktop))
}

func TestEstimateHeightDefaults(t *testing.T) {
	assert.Equal(t, 260, EstimateHeight(NodeTypeEditor))
	assert.Equal(t, 24, EstimateHeight(NodeTypeSeparator))
	assert.Equal(t, 200, EstimateHeight(NodeTypeUnknown))
}
