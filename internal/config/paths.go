package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.cellgrid
	ConfigPath string // ~/.cellgrid/config.json
	LogsDir    string // ~/.cellgrid/logs
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewPaths(filepath.Join(home, ".cellgrid")), nil
}

// NewPaths lays out the application files under root.
func NewPaths(root string) *Paths {
	return &Paths{
		Home:       root,
		ConfigPath: filepath.Join(root, "config.json"),
		LogsDir:    filepath.Join(root, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
