// Package services provides the pure domain engines for page-builder
// documents: versioned parsing, canonical serialization, slot composition,
// and reverse-shift decomposition.
package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// Clamp ranges for canonical document fields.
const (
	minSnapPx      = 1
	maxSnapPx      = 32
	minCanvasWidth = 240
	maxCanvasWidth = 8000
	minPageHeight  = 200
	maxPageHeight  = 20000
	maxCoord       = 1_000_000
)

// DocumentParser converts any persisted document (any historical schema
// version, or malformed/absent data) into the current in-memory tree. It is
// a total function: malformed input degrades to the nearest sensible default
// and never produces an error.
type DocumentParser struct {
	ids builder.IDSource
}

// NewDocumentParser creates a parser using ids for every node id it has to
// synthesize.
func NewDocumentParser(ids builder.IDSource) *DocumentParser {
	return &DocumentParser{ids: ids}
}

// Parse converts a persisted document into the canonical in-memory tree.
func (p *DocumentParser) Parse(raw any) *builder.Document {
	root, ok := asMap(raw)
	if !ok {
		return p.finish(p.upgradeV1(map[string]any{}))
	}

	switch detectVersion(root) {
	case 1:
		return p.finish(p.upgradeV1(root))
	case 2:
		return p.finish(p.upgradeV2(root))
	case 3:
		return p.finish(p.upgradeV3(root))
	default:
		return p.finish(p.parseCanonical(root))
	}
}

// detectVersion reads the explicit version field: numeric or numeric string;
// absent or unparseable means version 1.
func detectVersion(root map[string]any) int {
	switch v := root["version"].(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 1 {
			return int(v)
		}
	case int:
		if v >= 1 {
			return v
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 1 {
			return parsed
		}
	}
	return 1
}

// parseCanonical walks a canonical-version document structurally, defaulting
// and clamping every field independently.
func (p *DocumentParser) parseCanonical(root map[string]any) *builder.Document {
	doc := &builder.Document{
		Template: parseTemplateSettings(root["template"]),
		Canvas:   parseCanvasSettings(root["canvas"]),
		Nodes:    []*builder.Node{},
	}

	rawNodes, ok := asSlice(root["nodes"])
	if !ok {
		// Early canonical documents nested the node list under layout.
		if layout, found := asMap(root["layout"]); found {
			rawNodes, _ = asSlice(layout["nodes"])
		}
	}

	for _, rawNode := range rawNodes {
		if node := p.parseNode(rawNode, doc.Canvas); node != nil {
			doc.Nodes = append(doc.Nodes, node)
		}
	}

	return doc
}

func (p *DocumentParser) parseNode(raw any, canvas builder.CanvasSettings) *builder.Node {
	m, ok := asMap(raw)
	if !ok {
		return nil
	}

	node := &builder.Node{
		ID:   stringField(m, "id", ""),
		Data: builder.CloneData(mapField(m, "data")),
	}

	rawType := strings.TrimSpace(stringField(m, "type", ""))
	if t := builder.NodeType(rawType); builder.KnownNodeTypes[t] && t != builder.NodeTypeUnknown {
		node.Type = t
	} else {
		node.Type = builder.NodeTypeUnknown
		node.OriginalType = rawType
		if prior := stringField(m, "originalType", ""); rawType == string(builder.NodeTypeUnknown) || rawType == "" {
			node.OriginalType = prior
		}
	}

	node.Meta = parseMeta(m["meta"])
	node.Frames = p.parseFrames(m["frames"], node.Type, canvas)

	rawChildren, hasChildren := asSlice(m["nodes"])
	if !hasChildren {
		rawChildren, hasChildren = asSlice(m["children"])
	}

	switch {
	case node.IsContainer():
		node.Nodes = []*builder.Node{}
		for _, rawChild := range rawChildren {
			if child := p.parseNode(rawChild, canvas); child != nil {
				node.Nodes = append(node.Nodes, child)
			}
		}
	case hasChildren && len(rawChildren) > 0 &&
		(node.Type == builder.NodeTypeShadcn || node.Type == builder.NodeTypeUnknown):
		// Wrappers and foreign nodes keep children only when they actually
		// wrap some; any other leaf type drops stray children.
		for _, rawChild := range rawChildren {
			if child := p.parseNode(rawChild, canvas); child != nil {
				node.Nodes = append(node.Nodes, child)
			}
		}
	}

	return node
}

func (p *DocumentParser) parseFrames(raw any, t builder.NodeType, canvas builder.CanvasSettings) builder.NodeFrames {
	m, _ := asMap(raw)

	var frames builder.NodeFrames
	for _, bp := range builder.Breakpoints {
		fallback := builder.Frame{
			X: 0, Y: 0,
			W: canvas.Widths.Get(bp),
			H: builder.EstimateHeight(t),
			Z: 1,
		}
		frames.Set(bp, parseFrame(m[string(bp)], fallback))
	}
	return frames
}

func parseFrame(raw any, fallback builder.Frame) builder.Frame {
	m, ok := asMap(raw)
	if !ok {
		return fallback
	}

	f := builder.Frame{
		X: builder.Clamp(intField(m, "x", fallback.X), -maxCoord, maxCoord),
		Y: builder.Clamp(intField(m, "y", fallback.Y), -maxCoord, maxCoord),
		W: builder.Clamp(intField(m, "w", fallback.W), 1, maxCoord),
		H: builder.Clamp(intField(m, "h", fallback.H), 1, maxCoord),
		Z: intField(m, "z", 1),
	}
	if f.Z < 1 {
		f.Z = 1
	}
	return f
}

func parseMeta(raw any) *builder.NodeMeta {
	m, ok := asMap(raw)
	if !ok {
		return nil
	}

	meta := &builder.NodeMeta{
		Name:      stringField(m, "name", ""),
		Hidden:    boolField(m, "hidden", false),
		Collapsed: boolField(m, "collapsed", false),
	}
	if meta.IsZero() {
		return nil
	}
	return meta
}

func parseCanvasSettings(raw any) builder.CanvasSettings {
	canvas := builder.DefaultCanvasSettings()

	m, ok := asMap(raw)
	if !ok {
		return canvas
	}

	canvas.SnapPx = builder.Clamp(intField(m, "snapPx", canvas.SnapPx), minSnapPx, maxSnapPx)
	canvas.MinHeightPx = builder.Clamp(intField(m, "minHeightPx", canvas.MinHeightPx), minPageHeight, maxPageHeight)

	if widths, found := asMap(m["widths"]); found {
		canvas.Widths.Mobile = builder.Clamp(intField(widths, "mobile", canvas.Widths.Mobile), minCanvasWidth, maxCanvasWidth)
		canvas.Widths.Tablet = builder.Clamp(intField(widths, "tablet", canvas.Widths.Tablet), minCanvasWidth, maxCanvasWidth)
		canvas.Widths.Desktop = builder.Clamp(intField(widths, "desktop", canvas.Widths.Desktop), minCanvasWidth, maxCanvasWidth)
	}

	return canvas
}

func parseTemplateSettings(raw any) builder.TemplateSettings {
	m, ok := asMap(raw)
	if !ok {
		return builder.TemplateSettings{}
	}
	return builder.TemplateSettings{
		ID:     stringField(m, "id", ""),
		Menu:   stringField(m, "menu", ""),
		Footer: stringField(m, "footer", ""),
	}
}

// finish enforces document-wide invariants regardless of which upgrade path
// produced the tree: unique node ids and the container invariant.
func (p *DocumentParser) finish(doc *builder.Document) *builder.Document {
	seen := make(map[string]bool)
	var walk func(nodes []*builder.Node)
	walk = func(nodes []*builder.Node) {
		for _, n := range nodes {
			if n.ID == "" || seen[n.ID] {
				n.ID = p.ids()
			}
			seen[n.ID] = true

			if n.IsContainer() && n.Nodes == nil {
				n.Nodes = []*builder.Node{}
			}
			if n.Data == nil {
				n.Data = map[string]any{}
			}
			walk(n.Nodes)
		}
	}
	walk(doc.Nodes)

	if doc.Nodes == nil {
		doc.Nodes = []*builder.Node{}
	}
	return doc
}

// Tolerant field readers. A wrong type never fails the document; the field
// falls back on its own.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func intField(m map[string]any, key string, def int) int {
	if n, ok := asNumber(m[key]); ok {
		return int(math.Round(n))
	}
	return def
}

func stringField(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

func boolField(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func mapField(m map[string]any, key string) map[string]any {
	if inner, ok := asMap(m[key]); ok {
		return inner
	}
	return map[string]any{}
}
