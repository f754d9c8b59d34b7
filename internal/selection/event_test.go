package selection

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseKindAliases(t *testing.T) {
	tests := map[string]Kind{
		"click":     KindClick,
		"press":     KindPress,
		"mousedown": KindPress,
		"Hover":     KindHover,
		"mouseover": KindHover,
		"release":   KindRelease,
		" mouseup ": KindRelease,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("dblclick"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEventJSON(t *testing.T) {
	var ev Event
	if err := json.Unmarshal([]byte(`{"row":5,"column":3,"ctrl":true,"kind":"mousedown"}`), &ev); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	want := Press(5, 3).WithCtrl()
	if ev != want {
		t.Fatalf("decoded %+v, want %+v", ev, want)
	}

	if err := json.Unmarshal([]byte(`{"row":1,"column":2}`), &ev); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if ev != Click(1, 2) {
		t.Fatalf("missing kind should decode as click, got %+v", ev)
	}

	if err := json.Unmarshal([]byte(`{"row":1,"column":2,"kind":"wheel"}`), &ev); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	data, err := json.Marshal(Hover(4, 4).WithShift())
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != `{"row":4,"column":4,"shift":true,"kind":"hover"}` {
		t.Fatalf("unexpected encoding %s", data)
	}
}

func TestEventString(t *testing.T) {
	if got := Click(2, 3).WithCtrl().WithShift().String(); got != "ctrl+shift+click(2,3)" {
		t.Fatalf("String() = %q", got)
	}
}
