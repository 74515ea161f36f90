package solver

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Options configures a backend instance.
type Options struct {
	// BinaryPath locates an external solver binary, for backends
	// driven over a text protocol. Empty means the backend default.
	BinaryPath string

	// Timeout is the default per-query timeout. Zero means the
	// backend default.
	Timeout time.Duration

	// Logger receives backend diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Factory creates a backend instance.
type Factory func(opts Options) (Backend, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes a backend available under a name. Backend packages
// call this from init; the last registration for a name wins.
func Register(name string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = f
}

// Open instantiates a registered backend by name.
func Open(name string, opts Options) (Backend, error) {
	factoryMu.RLock()
	f, ok := factories[name]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no solver backend registered as %q (have %v)", name, Registered())
	}
	return f(opts)
}

// Registered returns the names of all registered backends, sorted.
func Registered() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
