// Package safego runs callbacks on background goroutines without letting a
// panic take down the terminal UI.
package safego

import (
	"fmt"
	"runtime/debug"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

// PanicError reports a panic recovered by Call.
type PanicError struct {
	Name  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Name, e.Value)
}

// Call runs fn and converts a panic into a *PanicError.
// Runtime-fatal errors (e.g., concurrent map writes) are not recoverable.
func Call(name string, fn func() error) (err error) {
	if name == "" {
		name = "goroutine"
	}
	defer func() {
		if r := recover(); r != nil {
			pe := &PanicError{Name: name, Value: r, Stack: debug.Stack()}
			logging.Error("%v\n%s", pe, pe.Stack)
			err = pe
		}
	}()
	return fn()
}

// Run executes fn, logging and swallowing any panic.
func Run(name string, fn func()) {
	_ = Call(name, func() error {
		fn()
		return nil
	})
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}
