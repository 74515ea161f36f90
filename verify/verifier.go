package verify

import (
	"fmt"

	"github.com/c360studio/algebra/config"
	"github.com/c360studio/algebra/solver"
	"github.com/c360studio/algebra/structure"
)

// Open instantiates the configured backend and wraps it in a fresh
// session over the registry. Backend packages register themselves in
// init, so callers import the ones they want:
//
//	import (
//		_ "github.com/c360studio/algebra/sat"
//		_ "github.com/c360studio/algebra/smtlib"
//	)
func Open(cfg *config.Config, registry *structure.Registry, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	backend, err := solver.Open(cfg.Solver.Backend, solver.Options{
		BinaryPath: cfg.Solver.Binary,
		Timeout:    cfg.Solver.Timeout,
	})
	if err != nil {
		return nil, err
	}
	sessionOpts := append([]Option{WithTimeout(cfg.Solver.Timeout)}, opts...)
	return NewSession(backend, registry, sessionOpts...), nil
}
