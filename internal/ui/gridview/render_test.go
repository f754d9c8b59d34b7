package gridview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

func TestLayoutWidensForLabels(t *testing.T) {
	idx, err := grid.New([]int{1, 100}, []int{5, 1234})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	l := newLayout(idx)
	if l.labelWidth != 4 || l.cellWidth != 5 {
		t.Fatalf("layout = %+v", l)
	}
	if row, col, ok := l.positionAt(4+5, firstRow+1); !ok || row != 1 || col != 1 {
		t.Fatalf("positionAt = %d,%d,%t", row, col, ok)
	}
	if _, _, ok := l.positionAt(3, firstRow); ok {
		t.Fatalf("row label column should not hit a cell")
	}
	if _, _, ok := l.positionAt(4, headerLine); ok {
		t.Fatalf("header line should not hit a cell")
	}
}

func TestRenderMarksUnselectedAnchorAndDragStart(t *testing.T) {
	idx, err := grid.NewRange(2, 2)
	if err != nil {
		t.Fatalf("NewRange error = %v", err)
	}
	state := selection.State{
		Selected:  selection.NewSet(grid.Cell{Row: 2, Column: 2}),
		Anchor:    grid.Cell{Row: 1, Column: 1},
		HasAnchor: true,
		Drag:      selection.DragSession{Active: true, Start: grid.Cell{Row: 2, Column: 2}},
	}
	out := ansi.Strip(Render(idx, state, common.DefaultStyles()))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out)
	}
	if !strings.Contains(lines[1], glyphAnchorUnmarked) {
		t.Fatalf("row 1 = %q, want unselected anchor glyph", lines[1])
	}
	if strings.Count(lines[2], glyphSelected) != 1 || strings.Count(lines[2], glyphIdle) != 1 {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestSelectionTextGridOrder(t *testing.T) {
	idx, err := grid.New([]int{3, 1}, []int{2, 1})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	state := selection.State{Selected: selection.NewSet(
		grid.Cell{Row: 1, Column: 1},
		grid.Cell{Row: 3, Column: 1},
		grid.Cell{Row: 3, Column: 2},
	)}
	want := "day,location\n3,2\n3,1\n1,1\n"
	if got := SelectionText(idx, state); got != want {
		t.Fatalf("SelectionText = %q, want %q", got, want)
	}
	if SelectionText(idx, selection.State{}) != "" {
		t.Fatalf("empty selection should produce no text")
	}
}

func TestCenter(t *testing.T) {
	if got := center("7", 4); got != " 7  " {
		t.Fatalf("center = %q", got)
	}
	if got := center("12345", 3); got != "123" {
		t.Fatalf("center truncation = %q", got)
	}
}
