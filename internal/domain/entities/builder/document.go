package builder

// CanonicalVersion is the current wire schema version. Older versions are
// one-way-upgraded into it at parse time and never written back.
const CanonicalVersion = 4

// CanvasWidths holds the drawing-surface width per breakpoint.
type CanvasWidths struct {
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
	Desktop int `json:"desktop"`
}

// Get returns the canvas width for a breakpoint.
func (w CanvasWidths) Get(bp Breakpoint) int {
	switch bp {
	case BreakpointMobile:
		return w.Mobile
	case BreakpointTablet:
		return w.Tablet
	default:
		return w.Desktop
	}
}

// CanvasSettings describes the drawing surface: per-breakpoint widths, the
// grid-snap increment, and a floor on total page height.
type CanvasSettings struct {
	SnapPx      int          `json:"snapPx"`
	Widths      CanvasWidths `json:"widths"`
	MinHeightPx int          `json:"minHeightPx"`
}

// TemplateSettings points at the template and shared navigation/footer slugs
// a document currently assumes. Informational pointers, not references.
type TemplateSettings struct {
	ID     string `json:"id"`
	Menu   string `json:"menu"`
	Footer string `json:"footer"`
}

// Document is the root of a page-builder document: the template pointer, the
// canvas settings, and the ordered top-level node list. List order has no
// rendering meaning (z decides paint order) but is preserved for stable
// diffing.
type Document struct {
	Template TemplateSettings `json:"template"`
	Canvas   CanvasSettings   `json:"canvas"`
	Nodes    []*Node          `json:"nodes"`
}

// DefaultCanvasSettings returns the canvas every new document starts from.
func DefaultCanvasSettings() CanvasSettings {
	return CanvasSettings{
		SnapPx:      1,
		Widths:      CanvasWidths{Mobile: 390, Tablet: 820, Desktop: 1200},
		MinHeightPx: 800,
	}
}

// NewDocument returns an empty document on the default canvas.
func NewDocument() *Document {
	return &Document{
		Canvas: DefaultCanvasSettings(),
		Nodes:  []*Node{},
	}
}

// Clone returns a deep copy of the document, preserving node ids.
func (d *Document) Clone() *Document {
	return &Document{
		Template: d.Template,
		Canvas:   d.Canvas,
		Nodes:    CloneNodes(d.Nodes),
	}
}

// FindNode searches the document tree depth-first for a node id.
func (d *Document) FindNode(id string) *Node {
	return FindNode(d.Nodes, id)
}
