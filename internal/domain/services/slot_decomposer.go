package services

import (
	"fmt"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// DecomposeResult splits an edited composed document back into its two
// persistable halves.
type DecomposeResult struct {
	// Content is the page's own document: the nodes that lived inside the
	// slot container.
	Content *builder.Document

	// TemplatePatch is the template document with edits outside the slot
	// applied and slot-growth shifting undone.
	TemplatePatch *builder.Document
}

// SlotDecomposer splits an edited composed document back into page content
// and a template patch, reversing the shifting Compose applied. Inputs are
// treated as read-only.
type SlotDecomposer struct{}

// NewSlotDecomposer creates a decomposer.
func NewSlotDecomposer() *SlotDecomposer {
	return &SlotDecomposer{}
}

// Decompose extracts the page content from the slot container identified by
// slotID and rebuilds the template with the slot restored to a placeholder at
// its baseline height. Nodes below the slot are shifted back up by however
// much the slot grew; a node the baseline template does not know is shifted
// only when it sits below the grown slot's bottom edge. Returns an error when
// the edited document no longer contains the slot container or the baseline
// template has no such slot.
func (d *SlotDecomposer) Decompose(edited, baseline *builder.Document, slotID string) (*DecomposeResult, error) {
	editedSlot := edited.FindNode(slotID)
	if editedSlot == nil {
		return nil, fmt.Errorf("slot container %q not found in edited document", slotID)
	}

	baselineSlot := baseline.FindNode(slotID)
	if baselineSlot == nil || baselineSlot.Type != builder.NodeTypeSlot {
		return nil, fmt.Errorf("slot %q not found in baseline template", slotID)
	}

	content := &builder.Document{
		Template: edited.Template,
		Canvas:   edited.Canvas,
		Nodes:    builder.CloneNodes(editedSlot.Nodes),
	}

	patch := &builder.Document{
		Template: baseline.Template,
		Canvas:   baseline.Canvas,
		Nodes:    make([]*builder.Node, 0, len(edited.Nodes)),
	}

	for _, n := range edited.Nodes {
		if n.ID == slotID {
			patch.Nodes = append(patch.Nodes, d.restoreSlot(n, baselineSlot))
			continue
		}

		restored := n.Clone()
		for _, bp := range builder.Breakpoints {
			baseFrame := baselineSlot.Frames.Get(bp)
			delta := editedSlot.Frames.Get(bp).H - baseFrame.H
			slotBottom := baseFrame.Bottom()

			frame := restored.Frames.Get(bp)
			if counterpart := baseline.FindNode(n.ID); counterpart != nil {
				if counterpart.Frames.Get(bp).Y >= slotBottom {
					frame.Y -= delta
				}
			} else if frame.Y >= slotBottom+delta {
				frame.Y -= delta
			}
			restored.Frames.Set(bp, frame)
		}
		patch.Nodes = append(patch.Nodes, restored)
	}

	return &DecomposeResult{Content: content, TemplatePatch: patch}, nil
}

// restoreSlot turns the edited slot container back into a slot placeholder:
// edited position, width, and stacking survive; the height reverts to the
// baseline placeholder's.
func (d *SlotDecomposer) restoreSlot(container, baselineSlot *builder.Node) *builder.Node {
	slot := &builder.Node{
		ID:   container.ID,
		Type: builder.NodeTypeSlot,
		Data: builder.CloneData(baselineSlot.Data),
	}
	if container.Meta != nil {
		meta := *container.Meta
		slot.Meta = &meta
	}

	for _, bp := range builder.Breakpoints {
		frame := container.Frames.Get(bp)
		frame.H = baselineSlot.Frames.Get(bp).H
		slot.Frames.Set(bp, frame)
	}
	return slot
}
