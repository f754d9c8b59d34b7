// Package grid enumerates the fixed days × locations grid and resolves
// positions and rectangles in enumeration order.
package grid

import "fmt"

// Index is an immutable enumeration of row (day) and column (location) values.
// Positions are 0-based enumeration positions, not values.
type Index struct {
	rows   []int
	cols   []int
	rowPos map[int]int
	colPos map[int]int
}

// New builds an index from ordered, distinct row and column values.
func New(rows, cols []int) (*Index, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrInvalidGrid, len(rows), len(cols))
	}
	idx := &Index{
		rows:   append([]int(nil), rows...),
		cols:   append([]int(nil), cols...),
		rowPos: make(map[int]int, len(rows)),
		colPos: make(map[int]int, len(cols)),
	}
	for i, r := range idx.rows {
		if _, dup := idx.rowPos[r]; dup {
			return nil, fmt.Errorf("%w: duplicate row %d", ErrInvalidGrid, r)
		}
		idx.rowPos[r] = i
	}
	for i, c := range idx.cols {
		if _, dup := idx.colPos[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %d", ErrInvalidGrid, c)
		}
		idx.colPos[c] = i
	}
	return idx, nil
}

// NewRange builds the 1..rows × 1..cols grid.
func NewRange(rows, cols int) (*Index, error) {
	return New(Sequence(rows), Sequence(cols))
}

// Sequence returns 1..n, or nil when n is not positive.
func Sequence(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Rows returns a copy of the row values in enumeration order.
func (x *Index) Rows() []int { return append([]int(nil), x.rows...) }

// Columns returns a copy of the column values in enumeration order.
func (x *Index) Columns() []int { return append([]int(nil), x.cols...) }

// Len returns the number of cells in the grid.
func (x *Index) Len() int { return len(x.rows) * len(x.cols) }

// Contains reports whether the cell lies in the declared domain.
func (x *Index) Contains(c Cell) bool {
	_, okRow := x.rowPos[c.Row]
	_, okCol := x.colPos[c.Column]
	return okRow && okCol
}

// PositionOf returns the enumeration positions of the cell's row and column.
func (x *Index) PositionOf(c Cell) (rowIdx, colIdx int, err error) {
	r, okRow := x.rowPos[c.Row]
	col, okCol := x.colPos[c.Column]
	if !okRow || !okCol {
		return 0, 0, &CellError{Cell: c, Err: ErrNotFound}
	}
	return r, col, nil
}

// CellAt returns the cell at the given enumeration positions.
func (x *Index) CellAt(rowIdx, colIdx int) (Cell, error) {
	if rowIdx < 0 || rowIdx >= len(x.rows) || colIdx < 0 || colIdx >= len(x.cols) {
		return Cell{}, &CellError{Cell: Cell{Row: rowIdx, Column: colIdx}, Position: true, Err: ErrOutOfRange}
	}
	return Cell{Row: x.rows[rowIdx], Column: x.cols[colIdx]}, nil
}

// CellsInRectangle returns the inclusive rectangle spanned by a and b in
// row-major order. Bounds are taken from enumeration positions, so the result
// is symmetric in a and b.
func (x *Index) CellsInRectangle(a, b Cell) ([]Cell, error) {
	ar, ac, err := x.PositionOf(a)
	if err != nil {
		return nil, err
	}
	br, bc, err := x.PositionOf(b)
	if err != nil {
		return nil, err
	}
	rowStart, rowEnd := min(ar, br), max(ar, br)
	colStart, colEnd := min(ac, bc), max(ac, bc)

	out := make([]Cell, 0, (rowEnd-rowStart+1)*(colEnd-colStart+1))
	for r := rowStart; r <= rowEnd; r++ {
		for c := colStart; c <= colEnd; c++ {
			out = append(out, Cell{Row: x.rows[r], Column: x.cols[c]})
		}
	}
	return out, nil
}

// All returns every cell in row-major order.
func (x *Index) All() []Cell {
	out := make([]Cell, 0, x.Len())
	for _, r := range x.rows {
		for _, c := range x.cols {
			out = append(out, Cell{Row: r, Column: c})
		}
	}
	return out
}
