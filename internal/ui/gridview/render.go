package gridview

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

// Cell glyphs. They carry the state on their own so the grid still reads
// correctly with styles stripped.
const (
	glyphIdle           = "·"
	glyphSelected       = "■"
	glyphAnchor         = "●"
	glyphAnchorUnmarked = "○"
)

// Render draws the column header and one line per day. It does not include
// the toolbar.
func Render(idx *grid.Index, state selection.State, styles common.Styles) string {
	return renderBody(idx, newLayout(idx), state, styles)
}

func renderBody(idx *grid.Index, l layout, state selection.State, styles common.Styles) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", l.labelWidth))
	for _, col := range idx.Columns() {
		b.WriteString(styles.ColumnHeader.Render(center(strconv.Itoa(col), l.cellWidth)))
	}

	anchor, hasAnchor := state.AnchorCell()
	for _, row := range idx.Rows() {
		b.WriteByte('\n')
		label := runewidth.FillLeft(strconv.Itoa(row), l.labelWidth-1) + " "
		b.WriteString(styles.RowHeader.Render(label))
		for _, col := range idx.Columns() {
			c := grid.Cell{Row: row, Column: col}
			b.WriteString(renderCell(c, l.cellWidth, state, anchor, hasAnchor, styles))
		}
	}
	return b.String()
}

func renderCell(c grid.Cell, width int, state selection.State, anchor grid.Cell, hasAnchor bool, styles common.Styles) string {
	selected := state.Selected.Has(c)
	glyph := glyphIdle
	style := styles.Cell
	if selected {
		glyph = glyphSelected
		style = styles.CellSelected
	}
	if state.Drag.Active && state.Drag.Start == c {
		style = styles.CellDragFrom
	}
	if hasAnchor && anchor == c {
		style = styles.CellAnchor
		glyph = glyphAnchorUnmarked
		if selected {
			glyph = glyphAnchor
		}
	}
	return style.Render(center(glyph, width))
}

// center pads s with spaces to width w, favouring the left.
func center(s string, w int) string {
	sw := runewidth.StringWidth(s)
	if sw >= w {
		return runewidth.Truncate(s, w, "")
	}
	left := (w - sw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-sw-left)
}

// SelectionText lists the selected cells in grid order as CSV, one
// "day,location" pair per line.
func SelectionText(idx *grid.Index, state selection.State) string {
	if state.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("day,location\n")
	for _, c := range idx.All() {
		if !state.Selected.Has(c) {
			continue
		}
		b.WriteString(strconv.Itoa(c.Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Column))
		b.WriteByte('\n')
	}
	return b.String()
}
