// Package builder provides the domain entities for page-builder documents:
// breakpoints, frames, typed nodes, canvas settings, and the document root.
package builder

// Breakpoint identifies one of the three responsive viewport classes.
// Every frame-bearing entity carries one frame per breakpoint; there is no
// default breakpoint.
type Breakpoint string

const (
	BreakpointMobile  Breakpoint = "mobile"
	BreakpointTablet  Breakpoint = "tablet"
	BreakpointDesktop Breakpoint = "desktop"
)

// Breakpoints lists all breakpoints in canonical order.
var Breakpoints = []Breakpoint{BreakpointMobile, BreakpointTablet, BreakpointDesktop}

// Frame is an absolute pixel rectangle for one node at one breakpoint,
// relative to the parent node's content area (or the canvas for root nodes).
// Z is the stacking order; siblings paint by ascending Z, not list order.
type Frame struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
	Z int `json:"z"`
}

// Bottom returns the frame's lower edge in the parent coordinate space.
func (f Frame) Bottom() int {
	return f.Y + f.H
}

// NodeFrames holds one frame per breakpoint.
type NodeFrames struct {
	Mobile  Frame `json:"mobile"`
	Tablet  Frame `json:"tablet"`
	Desktop Frame `json:"desktop"`
}

// Get returns the frame for a breakpoint.
func (nf NodeFrames) Get(bp Breakpoint) Frame {
	switch bp {
	case BreakpointMobile:
		return nf.Mobile
	case BreakpointTablet:
		return nf.Tablet
	default:
		return nf.Desktop
	}
}

// Set replaces the frame for a breakpoint.
func (nf *NodeFrames) Set(bp Breakpoint, f Frame) {
	switch bp {
	case BreakpointMobile:
		nf.Mobile = f
	case BreakpointTablet:
		nf.Tablet = f
	default:
		nf.Desktop = f
	}
}

// UniformFrames builds a NodeFrames with the same rectangle at every
// breakpoint.
func UniformFrames(f Frame) NodeFrames {
	return NodeFrames{Mobile: f, Tablet: f, Desktop: f}
}
