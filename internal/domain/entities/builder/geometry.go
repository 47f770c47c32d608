package builder

// Geometry helpers over per-breakpoint frames. Pure functions; no node is
// mutated here.

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EstimateHeight returns the default height in pixels used when upgrading
// legacy documents that carried no explicit geometry for a node.
func EstimateHeight(t NodeType) int {
	switch t {
	case NodeTypeMenu:
		return 80
	case NodeTypeSeparator:
		return 24
	case NodeTypeButton:
		return 56
	case NodeTypeImage:
		return 240
	case NodeTypeCard:
		return 200
	case NodeTypeText:
		return 80
	case NodeTypeEditor:
		return 260
	case NodeTypeSlot:
		return 320
	case NodeTypeFrame:
		return 360
	case NodeTypeCollectionList:
		return 420
	case NodeTypeShadcn:
		return 220
	default:
		return 200
	}
}

// SubtreeExtent returns the effective height of a node at a breakpoint: its
// own frame height, or further down if a descendant overflows it.
func SubtreeExtent(n *Node, bp Breakpoint) int {
	extent := n.Frames.Get(bp).H
	for _, child := range n.Nodes {
		if bottom := child.Frames.Get(bp).Y + SubtreeExtent(child, bp); bottom > extent {
			extent = bottom
		}
	}
	return extent
}

// RequiredHeight computes the vertical space a node list needs at a
// breakpoint, floored at minHeight.
func RequiredHeight(nodes []*Node, bp Breakpoint, minHeight int) int {
	height := minHeight
	for _, n := range nodes {
		if bottom := n.Frames.Get(bp).Y + SubtreeExtent(n, bp); bottom > height {
			height = bottom
		}
	}
	return height
}

// BoundingBox returns the smallest rectangle containing every node of a list
// (including overflowing descendants) at a breakpoint. A zero Frame is
// returned for an empty list.
func BoundingBox(nodes []*Node, bp Breakpoint) Frame {
	if len(nodes) == 0 {
		return Frame{}
	}

	first := nodes[0].Frames.Get(bp)
	minX, minY := first.X, first.Y
	maxX, maxY := first.X+first.W, first.Y+SubtreeExtent(nodes[0], bp)

	for _, n := range nodes[1:] {
		f := n.Frames.Get(bp)
		if f.X < minX {
			minX = f.X
		}
		if f.Y < minY {
			minY = f.Y
		}
		if right := f.X + f.W; right > maxX {
			maxX = right
		}
		if bottom := f.Y + SubtreeExtent(n, bp); bottom > maxY {
			maxY = bottom
		}
	}

	return Frame{X: minX, Y: minY, W: maxX - minX, H: maxY - minY, Z: 1}
}
