// Package sat provides a pure-Go propositional backend over the gini
// SAT solver. It covers the boolean fragment only, connectives and
// named boolean constants, and advertises exactly that through its
// capabilities: no quantifiers, no arithmetic, no uninterpreted
// functions of positive arity. Structures whose axioms fit the fragment
// verify without any external solver binary.
package sat

import (
	"fmt"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"

	"github.com/c360studio/algebra/solver"
)

// BackendName is the name this backend registers under.
const BackendName = "gini"

func init() {
	solver.Register(BackendName, func(opts solver.Options) (solver.Backend, error) {
		return New(opts), nil
	})
}

// lit wraps a circuit literal as an opaque term.
type lit struct {
	m z.Lit
}

func (l lit) String() string { return fmt.Sprintf("lit(%d)", l.m) }

// Backend is a solver.Backend over a persistent combinational circuit.
// Scoping is realized by solving a fresh SAT instance from the circuit
// on every check: only the assertions of live scopes become roots, so a
// popped scope leaves no trace.
type Backend struct {
	c       *logic.C
	vars    map[string]z.Lit
	scopes  [][]z.Lit
	timeout time.Duration

	lastSat *gini.Gini
}

// New creates a backend with an empty circuit and one base scope.
func New(opts solver.Options) *Backend {
	return &Backend{
		c:       logic.NewC(),
		vars:    make(map[string]z.Lit),
		scopes:  [][]z.Lit{nil},
		timeout: opts.Timeout,
	}
}

// Name implements solver.Backend.
func (b *Backend) Name() string { return BackendName }

// Capabilities implements solver.Backend.
func (b *Backend) Capabilities() solver.Capabilities {
	return solver.Capabilities{
		SolverName:        "gini",
		NativeOps:         map[solver.OpKey]string{},
		Quantifiers:       false,
		Arithmetic:        false,
		UninterpretedFuns: false,
		Models:            true,
		Simplification:    false,
	}
}

// unsupported builds the error for constructs outside the fragment.
func unsupported(construct string) error {
	return &solver.UnsupportedError{Backend: BackendName, Construct: construct}
}

// badTerm marks a term built by an unsupported constructor; any attempt
// to combine it fails loudly instead of corrupting the circuit.
type badTerm string

func (t badTerm) String() string { return string(t) }

// IntLit implements solver.Backend. Integers are outside the fragment.
func (b *Backend) IntLit(v int64) solver.Term { return badTerm(fmt.Sprintf("int:%d", v)) }

// BoolLit implements solver.Backend.
func (b *Backend) BoolLit(v bool) solver.Term {
	if v {
		return lit{m: b.c.T}
	}
	return lit{m: b.c.F}
}

// Const implements solver.Backend.
func (b *Backend) Const(name string, sort solver.Sort) (solver.Term, error) {
	if sort != solver.SortBool {
		return nil, unsupported("non-boolean constant " + name)
	}
	m, ok := b.vars[name]
	if !ok {
		m = b.c.Lit()
		b.vars[name] = m
	}
	return lit{m: m}, nil
}

// BoundVar implements solver.Backend. Quantifiers are rejected in
// Quantify, so a bound variable term can never be used.
func (b *Backend) BoundVar(name string, sort solver.Sort) solver.Term {
	return badTerm("bound:" + name)
}

// DeclareFun implements solver.Backend. Only nullary boolean symbols
// fit the fragment; they behave as named inputs.
func (b *Backend) DeclareFun(name string, arity int, result solver.Sort) error {
	if arity != 0 {
		return unsupported(fmt.Sprintf("uninterpreted function %s/%d", name, arity))
	}
	if _, ok := b.vars[name]; !ok {
		b.vars[name] = b.c.Lit()
	}
	return nil
}

// Apply implements solver.Backend.
func (b *Backend) Apply(name string, args []solver.Term) (solver.Term, error) {
	if len(args) != 0 {
		return nil, unsupported(fmt.Sprintf("application %s/%d", name, len(args)))
	}
	m, ok := b.vars[name]
	if !ok {
		return nil, unsupported("undeclared symbol " + name)
	}
	return lit{m: m}, nil
}

func (b *Backend) lits(args []solver.Term) ([]z.Lit, error) {
	out := make([]z.Lit, len(args))
	for i, a := range args {
		l, ok := a.(lit)
		if !ok {
			return nil, unsupported(a.String())
		}
		out[i] = l.m
	}
	return out, nil
}

// Op implements solver.Backend.
func (b *Backend) Op(op solver.Op, args []solver.Term) (solver.Term, error) {
	ms, err := b.lits(args)
	if err != nil {
		return nil, err
	}
	switch op {
	case solver.OpAnd:
		return lit{m: b.c.Ands(ms...)}, nil
	case solver.OpOr:
		return lit{m: b.c.Ors(ms...)}, nil
	case solver.OpNot:
		if len(ms) != 1 {
			return nil, &solver.ArityError{Op: "not", Want: 1, Got: len(ms)}
		}
		return lit{m: ms[0].Not()}, nil
	case solver.OpImplies:
		if len(ms) != 2 {
			return nil, &solver.ArityError{Op: "=>", Want: 2, Got: len(ms)}
		}
		return lit{m: b.c.Implies(ms[0], ms[1])}, nil
	case solver.OpEq, solver.OpIff:
		if len(ms) != 2 {
			return nil, &solver.ArityError{Op: "iff", Want: 2, Got: len(ms)}
		}
		return lit{m: b.c.Xor(ms[0], ms[1]).Not()}, nil
	case solver.OpIte:
		if len(ms) != 3 {
			return nil, &solver.ArityError{Op: "ite", Want: 3, Got: len(ms)}
		}
		return lit{m: b.c.Choice(ms[0], ms[1], ms[2])}, nil
	}
	return nil, unsupported(op.String())
}

// Quantify implements solver.Backend.
func (b *Backend) Quantify(q solver.Quant, vars []solver.SortedVar, body solver.Term) (solver.Term, error) {
	return nil, unsupported("quantifier")
}

// Assert implements solver.Backend.
func (b *Backend) Assert(t solver.Term) error {
	l, ok := t.(lit)
	if !ok {
		return unsupported(t.String())
	}
	top := len(b.scopes) - 1
	b.scopes[top] = append(b.scopes[top], l.m)
	return nil
}

// Push implements solver.Backend.
func (b *Backend) Push() error {
	b.scopes = append(b.scopes, nil)
	return nil
}

// Pop implements solver.Backend.
func (b *Backend) Pop() error {
	if len(b.scopes) == 1 {
		return &solver.EngineError{Backend: BackendName, Message: "pop on base scope"}
	}
	b.scopes = b.scopes[:len(b.scopes)-1]
	return nil
}

// Check implements solver.Backend.
func (b *Backend) Check(timeout time.Duration) (solver.Status, error) {
	var roots []z.Lit
	for _, frame := range b.scopes {
		roots = append(roots, frame...)
	}
	g := gini.New()
	b.lastSat = nil
	if len(roots) == 0 {
		b.lastSat = g
		return solver.StatusSat, nil
	}
	b.c.ToCnfFrom(g, roots...)
	g.Assume(roots...)

	if timeout <= 0 {
		timeout = b.timeout
	}
	var r int
	if timeout > 0 {
		r = g.GoSolve().Try(timeout)
	} else {
		r = g.Solve()
	}
	switch r {
	case 1:
		b.lastSat = g
		return solver.StatusSat, nil
	case -1:
		return solver.StatusUnsat, nil
	default:
		return solver.StatusUnknown, nil
	}
}

// Model implements solver.Backend.
func (b *Backend) Model() ([]solver.Assignment, error) {
	if b.lastSat == nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "no model: last check was not sat"}
	}
	var out []solver.Assignment
	for name, m := range b.vars {
		out = append(out, solver.Assignment{Name: name, Value: solver.BoolValue(b.lastSat.Value(m))})
	}
	return out, nil
}

// Simplify implements solver.Backend. The circuit folds constants as
// terms are built; anything left is genuinely symbolic.
func (b *Backend) Simplify(t solver.Term) (solver.Value, error) {
	l, ok := t.(lit)
	if !ok {
		return solver.Value{}, unsupported(t.String())
	}
	switch l.m {
	case b.c.T:
		return solver.BoolValue(true), nil
	case b.c.F:
		return solver.BoolValue(false), nil
	}
	for name, m := range b.vars {
		if m == l.m {
			return solver.SymValue(name), nil
		}
		if m.Not() == l.m {
			return solver.AppValue("not", solver.SymValue(name)), nil
		}
	}
	return solver.Value{}, unsupported("symbolic formula")
}

// Reset implements solver.Backend.
func (b *Backend) Reset() error {
	b.c = logic.NewC()
	b.vars = make(map[string]z.Lit)
	b.scopes = [][]z.Lit{nil}
	b.lastSat = nil
	return nil
}

// Close implements solver.Backend.
func (b *Backend) Close() error {
	b.lastSat = nil
	return nil
}
