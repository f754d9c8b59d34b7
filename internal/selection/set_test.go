package selection

import (
	"reflect"
	"testing"

	"github.com/andyrewlee/cellgrid/internal/grid"
)

func TestSetKeepsFirstOccurrenceOrder(t *testing.T) {
	s := NewSet(cell(2, 2), cell(1, 1), cell(2, 2), cell(3, 3))
	want := []grid.Cell{cell(2, 2), cell(1, 1), cell(3, 3)}
	if !reflect.DeepEqual(s.Cells(), want) {
		t.Fatalf("Cells() = %v, want %v", s.Cells(), want)
	}
}

func TestSetHelpersDoNotShareStorage(t *testing.T) {
	base := NewSet(cell(1, 1), cell(1, 2))
	with := base.With(cell(1, 3))
	without := base.Without(cell(1, 1))
	union := base.Union([]grid.Cell{cell(1, 2), cell(5, 5)})

	if base.Len() != 2 || !base.Has(cell(1, 1)) || base.Has(cell(1, 3)) {
		t.Fatalf("base mutated: %v", base.Cells())
	}
	if with.Len() != 3 || without.Len() != 1 || union.Len() != 3 {
		t.Fatalf("unexpected sizes with=%d without=%d union=%d", with.Len(), without.Len(), union.Len())
	}

	cells := base.Cells()
	cells[0] = cell(9, 9)
	if base.Has(cell(9, 9)) {
		t.Fatalf("Cells() must return a copy")
	}
}

func TestSetToggleAndEqual(t *testing.T) {
	s := NewSet(cell(1, 1))
	if !s.Toggle(cell(2, 2)).Toggle(cell(2, 2)).Equal(s) {
		t.Fatalf("double toggle should restore the set")
	}
	if NewSet(cell(1, 1), cell(2, 2)).Equal(NewSet(cell(2, 2))) {
		t.Fatalf("sets of different size compared equal")
	}
	if !NewSet(cell(1, 1), cell(2, 2)).Equal(NewSet(cell(2, 2), cell(1, 1))) {
		t.Fatalf("Equal should ignore order")
	}
	var zero Set
	if zero.Has(cell(1, 1)) || zero.Len() != 0 || !zero.Equal(NewSet()) {
		t.Fatalf("zero Set should behave as empty")
	}
}
