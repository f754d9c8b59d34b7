package main

import (
	"reflect"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func resetMouseFilterState() {
	lastMouseMotionEvent = time.Time{}
	lastMouseX = 0
	lastMouseY = 0
}

func TestMouseMotionThrottledAtSamePosition(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, motion) == nil {
		t.Fatalf("expected first motion event to pass through")
	}
	if mouseEventFilter(nil, motion) != nil {
		t.Fatalf("expected repeated motion at the same position to be throttled")
	}
	moved := tea.MouseMotionMsg{X: 11, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, moved) == nil {
		t.Fatalf("expected motion to a new position to pass through")
	}
}

func TestMouseReleaseNeverThrottled(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 5, Y: 5, Button: tea.MouseLeft}
	mouseEventFilter(nil, motion)
	release := tea.MouseReleaseMsg{X: 5, Y: 5, Button: tea.MouseLeft}
	for i := 0; i < 3; i++ {
		if mouseEventFilter(nil, release) == nil {
			t.Fatalf("release %d was dropped", i)
		}
	}
	click := tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft}
	if mouseEventFilter(nil, click) == nil {
		t.Fatalf("click was dropped")
	}
}

func TestShouldLaunchTUI(t *testing.T) {
	if !shouldLaunchTUI(true, true, true) {
		t.Fatalf("expected TUI with all streams attached to a terminal")
	}
	if shouldLaunchTUI(true, false, true) {
		t.Fatalf("expected no TUI when stdout is redirected")
	}
}

func TestRouteArgs(t *testing.T) {
	if got := routeArgs(nil, false); !reflect.DeepEqual(got, []string{"--help"}) {
		t.Fatalf("bare invocation without a terminal = %v, want --help", got)
	}
	if got := routeArgs(nil, true); len(got) != 0 {
		t.Fatalf("bare invocation on a terminal = %v, want no args", got)
	}
	args := []string{"replay", "-"}
	if got := routeArgs(args, false); !reflect.DeepEqual(got, args) {
		t.Fatalf("explicit args changed: %v", got)
	}
}
