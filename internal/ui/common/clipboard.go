package common

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard writes text to the system clipboard with a macOS pbcopy fallback.
func CopyToClipboard(text string) error {
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboardWrite(text)
}

// SetClipboardWriter replaces the clipboard backend and returns a restore
// func. Intended for tests in other packages.
func SetClipboardWriter(fn func(string) error) func() {
	prev := clipboardWrite
	clipboardWrite = fn
	return func() { clipboardWrite = prev }
}
