package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UISettings stores user-facing display preferences.
type UISettings struct {
	ShowKeymapHints bool
	Theme           string
}

func defaultUISettings() UISettings {
	return UISettings{
		ShowKeymapHints: true,
		Theme:           DefaultTheme,
	}
}

// SaveUISettings writes the ui block back to the config file. Other sections
// and unknown ui keys are preserved.
func (c *Config) SaveUISettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return mergeSection(c.Paths.ConfigPath, "ui", map[string]any{
		"show_keymap_hints": c.UI.ShowKeymapHints,
		"theme":             c.UI.Theme,
	})
}

// mergeSection sets keys inside one top-level object of a JSON file and
// replaces the file by rename, so the watcher sees a single complete write.
func mergeSection(path, section string, values map[string]any) error {
	doc := map[string]json.RawMessage{}
	if existing, err := os.ReadFile(path); err == nil && len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return fmt.Errorf("%w: %s is not a JSON object: %v", ErrInvalidConfig, path, err)
		}
	}

	block := map[string]any{}
	if raw, ok := doc[section]; ok {
		_ = json.Unmarshal(raw, &block)
	}
	for k, v := range values {
		block[k] = v
	}
	encoded, err := json.Marshal(block)
	if err != nil {
		return err
	}
	doc[section] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
