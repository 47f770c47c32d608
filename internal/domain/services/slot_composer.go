package services

import (
	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// Fixed geometry of the synthesized fallback template.
const (
	fallbackMenuHeight   = 96
	fallbackMenuAdvance  = 120
	fallbackSlotHeight   = 1200
	fallbackSlotAdvance  = 1240
	fallbackFooterHeight = 96
)

// MenuNone is the sentinel slug that suppresses a menu or footer region in
// the synthesized fallback template.
const MenuNone = "none"

// SlotComposer merges page content into a template's slot region to produce
// the single document the editor works on. All inputs are treated as
// read-only; outputs share no mutable state with them.
type SlotComposer struct {
	ids builder.IDSource
}

// NewSlotComposer creates a composer using ids for synthesized template
// nodes.
func NewSlotComposer(ids builder.IDSource) *SlotComposer {
	return &SlotComposer{ids: ids}
}

// FindSlot returns the template's slot placeholder, located depth-first, or
// nil when the template has none.
func (c *SlotComposer) FindSlot(template *builder.Document) *builder.Node {
	return builder.FindFirstByType(template.Nodes, builder.NodeTypeSlot)
}

// Compose returns the editable document for a page: the template's node tree
// with its slot placeholder replaced by a container holding the page content,
// grown per breakpoint to fit, and later template regions pushed down by the
// same amount. A template without a slot composes to its own tree unchanged.
func (c *SlotComposer) Compose(template, content *builder.Document) *builder.Document {
	out := template.Clone()
	out.Template = content.Template
	out.Canvas = content.Canvas

	slot := builder.FindFirstByType(out.Nodes, builder.NodeTypeSlot)
	if slot == nil {
		return out
	}

	placeholder := slot.Frames
	deltas := make([]int, len(builder.Breakpoints))

	for i, bp := range builder.Breakpoints {
		frame := placeholder.Get(bp)
		required := builder.RequiredHeight(content.Nodes, bp, content.Canvas.MinHeightPx)
		deltas[i] = required - frame.H

		frame.H = required
		slot.Frames.Set(bp, frame)
	}

	slot.Type = builder.NodeTypeFrame
	slot.Nodes = builder.CloneNodes(content.Nodes)

	for _, n := range out.Nodes {
		if n == slot {
			continue
		}
		for i, bp := range builder.Breakpoints {
			frame := n.Frames.Get(bp)
			if frame.Y >= placeholder.Get(bp).Bottom() {
				frame.Y += deltas[i]
				n.Frames.Set(bp, frame)
			}
		}
	}

	return out
}

// FallbackTemplate synthesizes the template used when a page has none
// assigned: a menu bar, a tall content slot, and a footer, stacked at full
// canvas width. A MenuNone or empty slug suppresses the menu or footer.
func (c *SlotComposer) FallbackTemplate(menuSlug, footerSlug string) *builder.Document {
	doc := builder.NewDocument()
	y := 0

	fullWidth := func(height, y int) builder.NodeFrames {
		var frames builder.NodeFrames
		for _, bp := range builder.Breakpoints {
			frames.Set(bp, builder.Frame{
				X: 0, Y: y,
				W: doc.Canvas.Widths.Get(bp), H: height, Z: 1,
			})
		}
		return frames
	}

	if menuSlug != "" && menuSlug != MenuNone {
		doc.Template.Menu = menuSlug
		doc.Nodes = append(doc.Nodes, &builder.Node{
			ID:     c.ids(),
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": menuSlug, "kind": "top"},
			Frames: fullWidth(fallbackMenuHeight, y),
		})
		y += fallbackMenuAdvance
	}

	doc.Nodes = append(doc.Nodes, &builder.Node{
		ID:     c.ids(),
		Type:   builder.NodeTypeSlot,
		Data:   map[string]any{"name": "Page content"},
		Frames: fullWidth(fallbackSlotHeight, y),
	})
	y += fallbackSlotAdvance

	if footerSlug != "" && footerSlug != MenuNone {
		doc.Template.Footer = footerSlug
		doc.Nodes = append(doc.Nodes, &builder.Node{
			ID:     c.ids(),
			Type:   builder.NodeTypeMenu,
			Data:   map[string]any{"menu": footerSlug, "kind": "footer"},
			Frames: fullWidth(fallbackFooterHeight, y),
		})
	}

	return doc
}
