// Package metrics is a minimal instrumentation seam. The engine and the
// binaries depend only on the Backend interface; concrete backends (Datadog,
// nop) plug in at startup. The default backend discards everything, so
// library code can emit unconditionally.
package metrics

import "sync"

// Backend receives metric observations. Implementations must be safe for
// concurrent use.
type Backend interface {
	// IncCounter adds value to a monotonically increasing counter.
	IncCounter(name string, value float64, tags []string)

	// ObserveHistogram records one sample of a distribution.
	ObserveHistogram(name string, value float64, tags []string)

	// Flush submits any buffered observations.
	Flush() error

	// Close flushes a final time and releases resources.
	Close() error
}

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs the process-wide backend. Call once at startup.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	backend = b
}

// IncCounter forwards to the installed backend.
func IncCounter(name string, value float64, tags []string) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	b.IncCounter(name, value, tags)
}

// ObserveHistogram forwards to the installed backend.
func ObserveHistogram(name string, value float64, tags []string) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	b.ObserveHistogram(name, value, tags)
}

// Flush forwards to the installed backend.
func Flush() error {
	mu.RLock()
	b := backend
	mu.RUnlock()
	return b.Flush()
}

// Close forwards to the installed backend.
func Close() error {
	mu.RLock()
	b := backend
	mu.RUnlock()
	return b.Close()
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, []string)       {}
func (nopBackend) ObserveHistogram(string, float64, []string) {}
func (nopBackend) Flush() error                               { return nil }
func (nopBackend) Close() error                               { return nil }
