package app

import "time"

const (
	// gridOriginY is the screen line the grid toolbar starts on, below the title.
	gridOriginY = 1

	// watcherBuffer bounds queued config reload results.
	watcherBuffer = 4

	// watcherBackoff is the initial restart delay for the config watcher.
	watcherBackoff = 200 * time.Millisecond

	// watcherMaxBackoff caps the config watcher restart delay.
	watcherMaxBackoff = 5 * time.Second
)
