package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCell is returned for any cell outside the declared grid domain.
	ErrInvalidCell = errors.New("invalid cell")
	// ErrNotFound is returned when a row or column value is not declared.
	ErrNotFound = fmt.Errorf("%w: not found", ErrInvalidCell)
	// ErrOutOfRange is returned when a position is outside the grid bounds.
	ErrOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidCell)
	// ErrInvalidGrid is returned when an index cannot be built.
	ErrInvalidGrid = errors.New("invalid grid")
)

// CellError carries the offending cell or position.
type CellError struct {
	Cell Cell
	// Position is true when Cell holds indices rather than values.
	Position bool
	Err      error
}

func (e *CellError) Error() string {
	if e.Position {
		return fmt.Sprintf("position [%d,%d]: %v", e.Cell.Row, e.Cell.Column, e.Err)
	}
	return fmt.Sprintf("cell %s: %v", e.Cell, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }
