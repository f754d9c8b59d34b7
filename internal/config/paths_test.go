package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathsEnsureDirectories(t *testing.T) {
	paths := NewPaths(filepath.Join(t.TempDir(), "cellgrid"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	for _, dir := range []string{paths.Home, paths.LogsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", dir)
		}
	}
	if filepath.Dir(paths.ConfigPath) != paths.Home {
		t.Fatalf("config path %s should live under %s", paths.ConfigPath, paths.Home)
	}
}
