package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/cellgrid/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionClear Action = "clear"
	ActionCopy  Action = "copy"
	ActionUndo  Action = "undo"
	ActionRedo  Action = "redo"
	ActionHelp  Action = "help"
	ActionQuit  Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Clear key.Binding
	Copy  key.Binding
	Undo  key.Binding
	Redo  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var defaults = []bindingDef{
	{action: ActionClear, keys: []string{"esc"}, desc: "clear"},
	{action: ActionCopy, keys: []string{"y"}, desc: "copy"},
	{action: ActionUndo, keys: []string{"u"}, desc: "undo"},
	{action: ActionRedo, keys: []string{"ctrl+r"}, desc: "redo"},
	{action: ActionHelp, keys: []string{"?"}, desc: "help"},
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	var km KeyMap
	for _, def := range defaults {
		*km.slot(def.action) = bindingFromDef(cfg, def)
	}
	return km
}

func (km *KeyMap) slot(action Action) *key.Binding {
	switch action {
	case ActionClear:
		return &km.Clear
	case ActionCopy:
		return &km.Copy
	case ActionUndo:
		return &km.Undo
	case ActionRedo:
		return &km.Redo
	case ActionHelp:
		return &km.Help
	default:
		return &km.Quit
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok || len(keys) == 0 {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// Bindings returns the bindings in display order.
func (km KeyMap) Bindings() []key.Binding {
	return []key.Binding{km.Clear, km.Copy, km.Undo, km.Redo, km.Help, km.Quit}
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// HelpLine renders "key desc" pairs for the footer.
func (km KeyMap) HelpLine() string {
	parts := make([]string, 0, len(defaults))
	for _, b := range km.Bindings() {
		hint := BindingHint(b)
		if hint == "" {
			continue
		}
		parts = append(parts, hint+" "+b.Help().Desc)
	}
	return strings.Join(parts, " • ")
}
