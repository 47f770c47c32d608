package services

import (
	"encoding/json"
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// DocumentSerializer writes in-memory documents in the canonical wire shape.
// Serialization always emits the current version; older versions are never
// written back.
type DocumentSerializer struct{}

// NewDocumentSerializer creates a serializer.
func NewDocumentSerializer() *DocumentSerializer {
	return &DocumentSerializer{}
}

// Serialize returns the canonical wire form of a document as a plain map,
// ready for JSON encoding or storage.
func (s *DocumentSerializer) Serialize(doc *builder.Document) map[string]any {
	if doc == nil {
		doc = builder.NewDocument()
	}
	return map[string]any{
		"version": builder.CanonicalVersion,
		"template": map[string]any{
			"id":     doc.Template.ID,
			"menu":   doc.Template.Menu,
			"footer": doc.Template.Footer,
		},
		"canvas": map[string]any{
			"snapPx": doc.Canvas.SnapPx,
			"widths": map[string]any{
				"mobile":  doc.Canvas.Widths.Mobile,
				"tablet":  doc.Canvas.Widths.Tablet,
				"desktop": doc.Canvas.Widths.Desktop,
			},
			"minHeightPx": doc.Canvas.MinHeightPx,
		},
		"nodes": s.serializeNodes(doc.Nodes),
	}
}

// SerializeJSON returns the canonical wire form encoded as JSON.
func (s *DocumentSerializer) SerializeJSON(doc *builder.Document) ([]byte, error) {
	encoded, err := json.Marshal(s.Serialize(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return encoded, nil
}

func (s *DocumentSerializer) serializeNodes(nodes []*builder.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, s.serializeNode(n))
	}
	return out
}

func (s *DocumentSerializer) serializeNode(n *builder.Node) map[string]any {
	typeTag := string(n.Type)
	if n.Type == builder.NodeTypeUnknown && n.OriginalType != "" {
		// Foreign nodes round-trip under their original tag.
		typeTag = n.OriginalType
	}

	out := map[string]any{
		"id":   n.ID,
		"type": typeTag,
		"data": builder.CloneData(n.Data),
		"frames": map[string]any{
			"mobile":  serializeFrame(n.Frames.Mobile),
			"tablet":  serializeFrame(n.Frames.Tablet),
			"desktop": serializeFrame(n.Frames.Desktop),
		},
	}

	if !n.Meta.IsZero() {
		meta := map[string]any{}
		if n.Meta.Name != "" {
			meta["name"] = n.Meta.Name
		}
		if n.Meta.Hidden {
			meta["hidden"] = true
		}
		if n.Meta.Collapsed {
			meta["collapsed"] = true
		}
		out["meta"] = meta
	}

	if n.IsContainer() {
		out["nodes"] = s.serializeNodes(n.Nodes)
	} else if len(n.Nodes) > 0 {
		out["nodes"] = s.serializeNodes(n.Nodes)
	}

	return out
}

func serializeFrame(f builder.Frame) map[string]any {
	z := f.Z
	if z < 1 {
		z = 1
	}
	return map[string]any{"x": f.X, "y": f.Y, "w": f.W, "h": f.H, "z": z}
}

// Comparable reduces a value to a canonical comparison string: parse (when
// the value is not already a document), serialize, strip node ids, and encode
// with sorted keys. Two values compare equal exactly when they are the same
// document modulo node identity. Only the node-level id field is identity;
// the template pointer and any id keys inside node data are content and
// survive into the comparison.
func (s *DocumentSerializer) Comparable(v any) string {
	var wire map[string]any
	switch doc := v.(type) {
	case *builder.Document:
		wire = s.Serialize(doc)
	default:
		seq := 0
		parser := NewDocumentParser(func() string {
			seq++
			return fmt.Sprintf("cmp-%d", seq)
		})
		wire = s.Serialize(parser.Parse(v))
	}

	stripNodeIDs(wire["nodes"])
	encoded, err := json.Marshal(wire)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func stripNodeIDs(nodes any) {
	list, ok := nodes.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		node, ok := item.(map[string]any)
		if !ok {
			continue
		}
		delete(node, "id")
		stripNodeIDs(node["nodes"])
	}
}
