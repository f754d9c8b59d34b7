package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/safego"
)

// DefaultWatchDebounce coalesces editor save bursts into one reload.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher reports changes to the config file. The parent directory is
// watched so editors that replace the file by rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher

	configPath string
	onChanged  func()
	debounce   time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches paths.ConfigPath and calls onChanged after writes settle.
func NewWatcher(paths *Paths, debounce time.Duration, onChanged func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:    fw,
		configPath: filepath.Clean(paths.ConfigPath),
		onChanged:  onChanged,
		debounce:   debounce,
	}
	if err := fw.Add(filepath.Dir(w.configPath)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.scheduleNotify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the watcher and any pending notification.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.configPath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleNotify() {
	if w.onChanged == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	safego.Run("config.reload", w.onChanged)
}
