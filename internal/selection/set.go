package selection

import "github.com/andyrewlee/cellgrid/internal/grid"

// Set is an insertion-ordered set of cells. A Set is never mutated once
// built; every helper returns a new value, so states can share sets freely.
type Set struct {
	cells []grid.Cell
	index map[grid.Cell]struct{}
}

// NewSet builds a set from cells, dropping duplicates and keeping first
// occurrence order.
func NewSet(cells ...grid.Cell) Set {
	s := Set{
		cells: make([]grid.Cell, 0, len(cells)),
		index: make(map[grid.Cell]struct{}, len(cells)),
	}
	for _, c := range cells {
		if _, ok := s.index[c]; ok {
			continue
		}
		s.index[c] = struct{}{}
		s.cells = append(s.cells, c)
	}
	return s
}

// Len returns the number of cells.
func (s Set) Len() int { return len(s.cells) }

// Has reports membership.
func (s Set) Has(c grid.Cell) bool {
	_, ok := s.index[c]
	return ok
}

// Cells returns the cells in insertion order.
func (s Set) Cells() []grid.Cell {
	return append([]grid.Cell(nil), s.cells...)
}

// With returns the set with c appended if absent.
func (s Set) With(c grid.Cell) Set {
	if s.Has(c) {
		return s
	}
	return NewSet(append(s.Cells(), c)...)
}

// Without returns the set with c removed.
func (s Set) Without(c grid.Cell) Set {
	if !s.Has(c) {
		return s
	}
	out := make([]grid.Cell, 0, len(s.cells)-1)
	for _, existing := range s.cells {
		if existing != c {
			out = append(out, existing)
		}
	}
	return NewSet(out...)
}

// Toggle removes c if present and appends it otherwise.
func (s Set) Toggle(c grid.Cell) Set {
	if s.Has(c) {
		return s.Without(c)
	}
	return s.With(c)
}

// Union appends the cells not already present, in the given order.
func (s Set) Union(cells []grid.Cell) Set {
	return NewSet(append(s.Cells(), cells...)...)
}

// Equal compares membership only; order is ignored.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, c := range s.cells {
		if !other.Has(c) {
			return false
		}
	}
	return true
}
