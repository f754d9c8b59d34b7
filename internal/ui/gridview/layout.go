package gridview

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

const (
	toolbarLine = 0
	headerLine  = 1
	firstRow    = 2
	minCellW    = 3
)

// layout is the geometry of a rendered grid in view-local coordinates.
type layout struct {
	labelWidth int // row label column, including its trailing gap
	cellWidth  int
	rows       int
	cols       int
}

func newLayout(idx *grid.Index) layout {
	l := layout{cellWidth: minCellW}
	for _, r := range idx.Rows() {
		if w := runewidth.StringWidth(strconv.Itoa(r)); w+1 > l.labelWidth {
			l.labelWidth = w + 1
		}
	}
	for _, c := range idx.Columns() {
		if w := runewidth.StringWidth(strconv.Itoa(c)) + 1; w > l.cellWidth {
			l.cellWidth = w
		}
	}
	l.rows = len(idx.Rows())
	l.cols = len(idx.Columns())
	return l
}

// width is the rendered width of a grid line.
func (l layout) width() int { return l.labelWidth + l.cols*l.cellWidth }

// height is the number of lines from the toolbar to the last row.
func (l layout) height() int { return firstRow + l.rows }

// region is the hit region of the grid body.
func (l layout) region() common.HitRegion {
	return common.HitRegion{
		ID:     "grid",
		X:      l.labelWidth,
		Y:      firstRow,
		Width:  l.cols * l.cellWidth,
		Height: l.rows,
	}
}

// positionAt maps view-local coordinates to (row, column) positions.
func (l layout) positionAt(x, y int) (int, int, bool) {
	if !l.region().Contains(x, y) {
		return 0, 0, false
	}
	return y - firstRow, (x - l.labelWidth) / l.cellWidth, true
}

// cellOrigin returns the view-local top-left of the cell at the given positions.
func (l layout) cellOrigin(rowPos, colPos int) (int, int) {
	return l.labelWidth + colPos*l.cellWidth, firstRow + rowPos
}
