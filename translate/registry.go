// Package translate turns language expressions into solver terms. An
// open operation vocabulary is dispatched through a rule registry; any
// name without a rule deterministically becomes one uninterpreted
// function per (name, arity), so axioms can constrain operations the
// solver has no theory for.
package translate

import (
	"fmt"
	"sync"

	"github.com/c360studio/algebra/solver"
)

// Rule produces a solver term for one operation from already-translated
// argument terms.
type Rule func(b solver.Backend, args []solver.Term) (solver.Term, error)

// Registry maps (operation name, arity) to translation rules. It is
// populated before verification begins and shared read-only across
// sessions afterwards.
type Registry struct {
	mu    sync.RWMutex
	rules map[solver.OpKey]Rule
}

// NewRegistry creates a registry pre-loaded with the native arithmetic
// rules. Comparisons, connectives, and quantifiers are structural AST
// forms handled by the translator itself and never appear here.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[solver.OpKey]Rule)}
	r.mustRegister("+", 2, opRule(solver.OpAdd))
	r.mustRegister("-", 2, opRule(solver.OpSub))
	r.mustRegister("*", 2, opRule(solver.OpMul))
	r.mustRegister("/", 2, opRule(solver.OpDiv))
	r.mustRegister("-", 1, opRule(solver.OpNeg))
	return r
}

func opRule(op solver.Op) Rule {
	return func(b solver.Backend, args []solver.Term) (solver.Term, error) {
		return b.Op(op, args)
	}
}

// Register adds a rule for (name, arity). Registering over an existing
// rule is an error: rules are fixed before first use.
func (r *Registry) Register(name string, arity int, rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := solver.OpKey{Name: name, Arity: arity}
	if _, exists := r.rules[key]; exists {
		return fmt.Errorf("translation rule for %s/%d already registered", name, arity)
	}
	r.rules[key] = rule
	return nil
}

func (r *Registry) mustRegister(name string, arity int, rule Rule) {
	if err := r.Register(name, arity, rule); err != nil {
		panic(err)
	}
}

// Lookup returns the rule for (name, arity), if any.
func (r *Registry) Lookup(name string, arity int) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[solver.OpKey{Name: name, Arity: arity}]
	return rule, ok
}

// Keys returns all registered (name, arity) pairs.
func (r *Registry) Keys() []solver.OpKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]solver.OpKey, 0, len(r.rules))
	for k := range r.rules {
		keys = append(keys, k)
	}
	return keys
}
