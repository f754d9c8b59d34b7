// Package perf collects timing samples for hot paths when CELLGRID_PROFILE
// is set and writes periodic summaries to the log.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

const (
	EnvProfile         = "CELLGRID_PROFILE"
	EnvProfileInterval = "CELLGRID_PROFILE_INTERVAL_MS"

	sampleWindow    = 256
	defaultInterval = 5 * time.Second
)

// Summary describes the samples recorded for one name since the last drain.
type Summary struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

type recorder struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	next    int
	full    bool
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	recordersMu sync.Mutex
	recorders   = map[string]*recorder{}
)

func init() {
	enabled.Store(parseEnabled(os.Getenv(EnvProfile)))
	logInterval.Store(int64(parseInterval(os.Getenv(EnvProfileInterval))))
}

// Enabled reports whether profiling is on.
func Enabled() bool { return enabled.Load() }

// Time returns a function that records the elapsed time when invoked.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds one sample for name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	r := lookup(name)
	r.mu.Lock()
	r.count++
	r.total += d
	if r.count == 1 || d < r.min {
		r.min = d
	}
	if d > r.max {
		r.max = d
	}
	if r.samples == nil {
		r.samples = make([]time.Duration, sampleWindow)
	}
	r.samples[r.next] = d
	r.next = (r.next + 1) % len(r.samples)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()

	maybeLog()
}

func lookup(name string) *recorder {
	recordersMu.Lock()
	defer recordersMu.Unlock()
	r, ok := recorders[name]
	if !ok {
		r = &recorder{}
		recorders[name] = r
	}
	return r
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSummaries("PERF", Drain())
}

// Flush logs everything recorded so far, tagged with reason.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if reason = strings.TrimSpace(reason); reason != "" {
		prefix += " " + reason
	}
	logSummaries(prefix, Drain())
}

func logSummaries(prefix string, summaries []Summary) {
	for _, s := range summaries {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
}

// Drain returns the summaries sorted by name and resets every recorder.
func Drain() []Summary {
	recordersMu.Lock()
	names := make([]string, 0, len(recorders))
	for name := range recorders {
		names = append(names, name)
	}
	recordersMu.Unlock()
	sort.Strings(names)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		r := lookup(name)
		r.mu.Lock()
		if r.count == 0 {
			r.mu.Unlock()
			continue
		}
		n := r.next
		if r.full {
			n = len(r.samples)
		}
		out = append(out, Summary{
			Name:  name,
			Count: r.count,
			Avg:   time.Duration(int64(r.total) / r.count),
			Min:   r.min,
			Max:   r.max,
			P95:   percentile95(r.samples[:n]),
		})
		r.count, r.total, r.min, r.max = 0, 0, 0, 0
		r.next, r.full = 0, false
		r.mu.Unlock()
	}
	return out
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	window := append([]time.Duration(nil), samples...)
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(len(window)))) - 1
	return window[min(max(pos, 0), len(window)-1)]
}

// EnableForTest turns collection on with periodic logging off. The returned
// function restores the previous settings.
func EnableForTest() func() {
	prevEnabled := enabled.Load()
	prevInterval := logInterval.Load()
	enabled.Store(true)
	logInterval.Store(0)
	lastLog.Store(0)
	return func() {
		enabled.Store(prevEnabled)
		logInterval.Store(prevInterval)
	}
}

func parseEnabled(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func parseInterval(raw string) time.Duration {
	if ms, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultInterval
}
