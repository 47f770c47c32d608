package services

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/PageForgeHQ/pageforge-go/internal/domain/entities/builder"
)

// Layout constants used when synthesizing geometry for legacy documents that
// carried none.
const (
	legacyPadding    = 24
	legacyItemGap    = 12
	legacyColumnGap  = 16
	legacyRowGap     = 24
	legacyMinRowSize = 160
	editorHeight     = 260
	defaultRowPct    = 100.0
)

// upgradeV1 handles the oldest persisted shape: a loose block list with no
// geometry at all. Recognizable hero and paragraph blocks are merged into one
// rich-text node wrapped in a section frame sized to the canvas. Anything
// else (including an empty map) degrades to a single empty rich-text node.
func (p *DocumentParser) upgradeV1(root map[string]any) *builder.Document {
	var parts []string

	blocks, _ := asSlice(root["blocks"])
	for _, rawBlock := range blocks {
		block, ok := asMap(rawBlock)
		if !ok {
			continue
		}
		data := mapField(block, "data")

		switch strings.ToLower(stringField(block, "type", "")) {
		case "hero":
			if headline := stringField(data, "headline", ""); headline != "" {
				parts = append(parts, "<h1>"+html.EscapeString(headline)+"</h1>")
			}
			if sub := stringField(data, "subheadline", ""); sub != "" {
				parts = append(parts, "<p>"+html.EscapeString(sub)+"</p>")
			}
		case "paragraph":
			if text := stringField(data, "text", ""); text != "" {
				parts = append(parts, "<p>"+html.EscapeString(text)+"</p>")
			}
		}
	}

	if len(parts) == 0 {
		parts = []string{"<p></p>"}
	}

	canvas := builder.DefaultCanvasSettings()

	editor := &builder.Node{
		ID:   p.ids(),
		Type: builder.NodeTypeEditor,
		Data: map[string]any{"html": strings.Join(parts, "")},
	}
	section := &builder.Node{
		ID:    p.ids(),
		Type:  builder.NodeTypeFrame,
		Data:  map[string]any{"label": "Section"},
		Nodes: []*builder.Node{editor},
	}

	for _, bp := range builder.Breakpoints {
		width := canvas.Widths.Get(bp)
		editor.Frames.Set(bp, builder.Frame{
			X: legacyPadding, Y: legacyPadding,
			W: width - 2*legacyPadding, H: editorHeight, Z: 1,
		})
		section.Frames.Set(bp, builder.Frame{
			X: 0, Y: 0, W: width, H: canvas.MinHeightPx, Z: 1,
		})
	}

	return &builder.Document{
		Canvas: canvas,
		Nodes:  []*builder.Node{section},
	}
}

// upgradeV2 handles rich-text block lists: every valid editor block (a doc
// tree plus its rendered html) is kept in order and stacked vertically inside
// one synthetic section frame. A document with no valid editor block falls
// back to the v1 heuristic over the same payload.
func (p *DocumentParser) upgradeV2(root map[string]any) *builder.Document {
	type editorBlock struct {
		doc  map[string]any
		html string
	}

	var kept []editorBlock
	blocks, _ := asSlice(root["blocks"])
	for _, rawBlock := range blocks {
		block, ok := asMap(rawBlock)
		if !ok {
			continue
		}
		switch strings.ToLower(stringField(block, "type", "")) {
		case "tiptap", "editor":
		default:
			continue
		}

		data := mapField(block, "data")
		htmlBody, hasHTML := data["html"].(string)
		doc, hasDoc := asMap(data["doc"])
		if !hasHTML || !hasDoc {
			continue
		}
		kept = append(kept, editorBlock{doc: doc, html: htmlBody})
	}

	if len(kept) == 0 {
		return p.upgradeV1(root)
	}

	canvas := builder.DefaultCanvasSettings()

	section := &builder.Node{
		ID:    p.ids(),
		Type:  builder.NodeTypeFrame,
		Data:  map[string]any{"label": "Section"},
		Nodes: make([]*builder.Node, 0, len(kept)),
	}

	for _, block := range kept {
		section.Nodes = append(section.Nodes, &builder.Node{
			ID:   p.ids(),
			Type: builder.NodeTypeEditor,
			Data: map[string]any{
				"doc":  builder.CloneData(block.doc),
				"html": block.html,
			},
		})
	}

	for _, bp := range builder.Breakpoints {
		width := canvas.Widths.Get(bp)
		y := legacyPadding
		for _, child := range section.Nodes {
			child.Frames.Set(bp, builder.Frame{
				X: legacyPadding, Y: y,
				W: width - 2*legacyPadding, H: editorHeight, Z: 1,
			})
			y += editorHeight + legacyItemGap
		}
		sectionH := y - legacyItemGap + legacyPadding
		if sectionH < canvas.MinHeightPx {
			sectionH = canvas.MinHeightPx
		}
		section.Frames.Set(bp, builder.Frame{X: 0, Y: 0, W: width, H: sectionH, Z: 1})
	}

	return &builder.Document{
		Canvas: canvas,
		Nodes:  []*builder.Node{section},
	}
}

// upgradeV3 handles the explicit rows/columns/blocks grid. Each row becomes a
// frame container, each column a nested frame, each block a typed node with
// an estimated height; column widths come from the normalized size list. On
// mobile the columns of a row stack vertically at full row width.
func (p *DocumentParser) upgradeV3(root map[string]any) *builder.Document {
	canvas := builder.DefaultCanvasSettings()
	doc := &builder.Document{Canvas: canvas, Nodes: []*builder.Node{}}

	rows, ok := asSlice(root["rows"])
	if !ok {
		if layout, found := asMap(root["layout"]); found {
			rows, _ = asSlice(layout["rows"])
		}
	}

	rowY := map[builder.Breakpoint]int{}

	for rowIndex, rawRow := range rows {
		row, okRow := asMap(rawRow)
		if !okRow {
			continue
		}
		columns, _ := asSlice(row["columns"])
		if len(columns) == 0 {
			continue
		}

		settings := mapField(row, "settings")
		sizes := normalizeSizes(settings["sizes"], len(columns))
		rowPct := floatField(settings, "maxWidth", defaultRowPct)
		rowPct = math.Min(math.Max(rowPct, 10), 100)
		rowMinH := intField(settings, "minHeight", legacyMinRowSize)

		rowNode := &builder.Node{
			ID:    p.ids(),
			Type:  builder.NodeTypeFrame,
			Data:  map[string]any{"label": fmt.Sprintf("Row %d", rowIndex+1), "layout": "row"},
			Nodes: make([]*builder.Node, 0, len(columns)),
		}

		type colLayout struct {
			node   *builder.Node
			minH   int
			counts int
		}
		cols := make([]*colLayout, 0, len(columns))

		for colIndex, rawColumn := range columns {
			column, okCol := asMap(rawColumn)
			if !okCol {
				column = map[string]any{}
			}

			colNode := &builder.Node{
				ID:    p.ids(),
				Type:  builder.NodeTypeFrame,
				Data:  map[string]any{"label": fmt.Sprintf("Column %d", colIndex+1), "layout": "column"},
				Nodes: []*builder.Node{},
			}

			blocks, _ := asSlice(column["blocks"])
			for _, rawBlock := range blocks {
				if blockNode := p.upgradeV3Block(rawBlock); blockNode != nil {
					colNode.Nodes = append(colNode.Nodes, blockNode)
				}
			}

			rowNode.Nodes = append(rowNode.Nodes, colNode)
			cols = append(cols, &colLayout{
				node:   colNode,
				minH:   intField(column, "minHeight", legacyMinRowSize),
				counts: len(colNode.Nodes),
			})
		}

		for _, bp := range builder.Breakpoints {
			canvasW := canvas.Widths.Get(bp)
			rowW := int(math.Round(float64(canvasW) * rowPct / 100))
			rowX := (canvasW - rowW) / 2

			stacked := bp == builder.BreakpointMobile
			rowH := rowMinH
			colX := 0
			colY := 0

			for i, col := range cols {
				colW := rowW
				if !stacked {
					available := rowW - legacyColumnGap*(len(cols)-1)
					colW = int(math.Round(float64(available) * sizes[i] / 100))
				}

				blockY := 0
				for _, blockNode := range col.node.Nodes {
					h := builder.EstimateHeight(blockNode.Type)
					blockNode.Frames.Set(bp, builder.Frame{X: 0, Y: blockY, W: colW, H: h, Z: 1})
					blockY += h + legacyItemGap
				}
				contentH := 0
				if col.counts > 0 {
					contentH = blockY - legacyItemGap
				}
				colH := col.minH
				if contentH > colH {
					colH = contentH
				}

				if stacked {
					col.node.Frames.Set(bp, builder.Frame{X: 0, Y: colY, W: colW, H: colH, Z: 1})
					colY += colH + legacyItemGap
				} else {
					col.node.Frames.Set(bp, builder.Frame{X: colX, Y: 0, W: colW, H: colH, Z: 1})
					colX += colW + legacyColumnGap
					if colH > rowH {
						rowH = colH
					}
				}
			}

			if stacked && colY > 0 {
				if stackedH := colY - legacyItemGap; stackedH > rowH {
					rowH = stackedH
				}
			}

			rowNode.Frames.Set(bp, builder.Frame{X: rowX, Y: rowY[bp], W: rowW, H: rowH, Z: 1})
			rowY[bp] += rowH + legacyRowGap
		}

		doc.Nodes = append(doc.Nodes, rowNode)
	}

	if len(doc.Nodes) == 0 {
		return p.upgradeV1(root)
	}
	return doc
}

func (p *DocumentParser) upgradeV3Block(raw any) *builder.Node {
	block, ok := asMap(raw)
	if !ok {
		return nil
	}

	node := &builder.Node{
		ID:   stringField(block, "id", ""),
		Data: builder.CloneData(mapField(block, "data")),
	}

	rawType := strings.ToLower(strings.TrimSpace(stringField(block, "type", "")))
	switch rawType {
	case "tiptap", "editor":
		node.Type = builder.NodeTypeEditor
	case "text", "typography", "paragraph", "heading":
		node.Type = builder.NodeTypeText
	default:
		t := builder.NodeType(rawType)
		if builder.KnownNodeTypes[t] && t != builder.NodeTypeUnknown {
			node.Type = t
		} else {
			node.Type = builder.NodeTypeUnknown
			node.OriginalType = rawType
		}
	}

	if node.IsContainer() {
		node.Nodes = []*builder.Node{}
	}
	return node
}

// normalizeSizes scales a declared size list so it sums to exactly 100. An
// invalid or mismatched list falls back to an equal split, with the last
// column absorbing the rounding remainder.
func normalizeSizes(raw any, count int) []float64 {
	declared, ok := asSlice(raw)
	if ok && len(declared) == count {
		values := make([]float64, 0, count)
		total := 0.0
		for _, rawSize := range declared {
			n, okN := asNumber(rawSize)
			if !okN || n <= 0 {
				values = nil
				break
			}
			values = append(values, n)
			total += n
		}
		if len(values) == count && total > 0 {
			out := make([]float64, count)
			running := 0.0
			for i, v := range values[:count-1] {
				out[i] = math.Round(v/total*10000) / 100
				running += out[i]
			}
			out[count-1] = math.Round((100-running)*100) / 100
			return out
		}
	}

	out := make([]float64, count)
	share := math.Round(10000/float64(count)) / 100
	running := 0.0
	for i := 0; i < count-1; i++ {
		out[i] = share
		running += share
	}
	out[count-1] = math.Round((100-running)*100) / 100
	return out
}

func floatField(m map[string]any, key string, def float64) float64 {
	if n, ok := asNumber(m[key]); ok {
		return n
	}
	return def
}
