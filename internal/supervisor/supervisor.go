package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/safego"
)

// RestartPolicy controls when a worker should be restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

// Option configures supervisor worker behavior.
type Option func(*options)

// WithRestartPolicy sets the restart policy.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits the number of restarts (0 = unlimited).
func WithMaxRestarts(n int) Option {
	return func(o *options) { o.maxRestarts = n }
}

// WithBackoff sets the initial and maximum wait between restarts. The wait
// doubles after every restart up to ceiling.
func WithBackoff(initial, ceiling time.Duration) Option {
	return func(o *options) {
		o.backoff = initial
		o.maxBackoff = ceiling
	}
}

// Supervisor runs background workers, such as the config watcher, and
// restarts them according to their policy.
type Supervisor struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	onError  func(name string, err error)
	restarts map[string]int
}

// New creates a supervisor bound to the parent context.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel, restarts: make(map[string]int)}
}

// Stop cancels all workers and waits for them to exit.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// SetErrorHandler registers a handler for worker errors.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

// Restarts reports how many times the named worker was restarted.
func (s *Supervisor) Restarts(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restarts[name]
}

// Start runs fn in its own goroutine until the supervisor stops or the
// restart policy gives up.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxBackoff < cfg.backoff {
		cfg.maxBackoff = cfg.backoff
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(name, fn, cfg)
	}()
}

func (s *Supervisor) loop(name string, fn func(context.Context) error, cfg options) {
	wait := cfg.backoff
	for restarts := 0; ; restarts++ {
		err := runSafe(s.ctx, name, fn)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Warn("supervisor: %s exited: %v", name, err)
			s.reportError(name, err)
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		if cfg.maxRestarts > 0 && restarts >= cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if !s.sleep(wait) {
			return
		}
		wait = min(wait*2, cfg.maxBackoff)

		s.mu.Lock()
		s.restarts[name]++
		s.mu.Unlock()
	}
}

// sleep waits for d or until the supervisor stops. It reports whether the
// worker should run again.
func (s *Supervisor) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *Supervisor) reportError(name string, err error) {
	s.mu.Lock()
	handler := s.onError
	s.mu.Unlock()
	if handler != nil {
		handler(name, err)
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

func runSafe(ctx context.Context, name string, fn func(context.Context) error) error {
	return safego.Call(name, func() error { return fn(ctx) })
}
