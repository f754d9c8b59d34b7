package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/andyrewlee/cellgrid/internal/grid"
)

// ErrUnknownKind is returned for events whose kind is not recognized.
var ErrUnknownKind = errors.New("unknown event kind")

// Kind identifies a normalized pointer event.
type Kind uint8

const (
	KindClick Kind = iota
	KindPress
	KindHover
	KindRelease
)

func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindPress:
		return "press"
	case KindHover:
		return "hover"
	case KindRelease:
		return "release"
	default:
		return "unknown"
	}
}

// ParseKind accepts the normalized names and the DOM-style aliases
// (mousedown, mouseover, mouseup).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "click":
		return KindClick, nil
	case "press", "mousedown":
		return KindPress, nil
	case "hover", "mouseover":
		return KindHover, nil
	case "release", "mouseup":
		return KindRelease, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Event is a normalized pointer event targeting a single cell.
type Event struct {
	Kind  Kind
	Cell  grid.Cell
	Ctrl  bool // ctrl or meta held
	Shift bool
}

// Click builds a click event.
func Click(row, col int) Event {
	return Event{Kind: KindClick, Cell: grid.Cell{Row: row, Column: col}}
}

// Press builds a press event.
func Press(row, col int) Event {
	return Event{Kind: KindPress, Cell: grid.Cell{Row: row, Column: col}}
}

// Hover builds a hover event.
func Hover(row, col int) Event {
	return Event{Kind: KindHover, Cell: grid.Cell{Row: row, Column: col}}
}

// Release builds a release event.
func Release(row, col int) Event {
	return Event{Kind: KindRelease, Cell: grid.Cell{Row: row, Column: col}}
}

// WithCtrl returns a copy of e with ctrl held.
func (e Event) WithCtrl() Event {
	e.Ctrl = true
	return e
}

// WithShift returns a copy of e with shift held.
func (e Event) WithShift() Event {
	e.Shift = true
	return e
}

func (e Event) String() string {
	var mods string
	if e.Ctrl {
		mods += "ctrl+"
	}
	if e.Shift {
		mods += "shift+"
	}
	return mods + e.Kind.String() + e.Cell.String()
}

type eventJSON struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Kind   string `json:"kind"`
}

// MarshalJSON encodes the event in the flat replay form.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Row:    e.Cell.Row,
		Column: e.Cell.Column,
		Ctrl:   e.Ctrl,
		Shift:  e.Shift,
		Kind:   e.Kind.String(),
	})
}

// UnmarshalJSON decodes the flat replay form. A missing kind means click.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind := KindClick
	if raw.Kind != "" {
		k, err := ParseKind(raw.Kind)
		if err != nil {
			return err
		}
		kind = k
	}
	*e = Event{
		Kind:  kind,
		Cell:  grid.Cell{Row: raw.Row, Column: raw.Column},
		Ctrl:  raw.Ctrl,
		Shift: raw.Shift,
	}
	return nil
}
