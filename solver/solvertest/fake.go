// Package solvertest provides a recording fake backend for exercising
// the translator and session without a real solver engine.
package solvertest

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/algebra/solver"
)

// Term is a symbolic term rendered as text.
type Term string

func (t Term) String() string { return string(t) }

// Assertion records one asserted formula and the scope depth it was
// asserted at.
type Assertion struct {
	Depth int
	Text  string
}

// Fake is a solver.Backend that builds symbolic text terms and records
// every interaction. Check outcomes are scripted by the test.
type Fake struct {
	// CheckStatus is returned by Check when CheckQueue is empty.
	CheckStatus solver.Status
	// CheckQueue yields one status per Check call, in order.
	CheckQueue []solver.Status
	// ModelAssignments is returned by Model.
	ModelAssignments []solver.Assignment
	// SimplifyFn overrides Simplify when set.
	SimplifyFn func(t solver.Term) (solver.Value, error)

	Asserts   []Assertion
	Consts    map[string]solver.Sort
	Declared  map[solver.OpKey]int
	PushCount int
	PopCount  int
	Depth     int
	Checks    int
	Resets    int
	Closed    bool
}

// New creates a fake whose checks report unsat (axioms verify Valid).
func New() *Fake {
	return &Fake{
		CheckStatus: solver.StatusUnsat,
		Consts:      make(map[string]solver.Sort),
		Declared:    make(map[solver.OpKey]int),
	}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Capabilities() solver.Capabilities {
	return solver.Capabilities{
		SolverName:        "fake",
		NativeOps:         map[solver.OpKey]string{{Name: "+", Arity: 2}: "LIA", {Name: "*", Arity: 2}: "LIA"},
		Quantifiers:       true,
		Arithmetic:        true,
		UninterpretedFuns: true,
		Models:            true,
		Simplification:    true,
	}
}

func (f *Fake) IntLit(v int64) solver.Term { return Term(fmt.Sprintf("%d", v)) }

func (f *Fake) BoolLit(v bool) solver.Term { return Term(fmt.Sprintf("%t", v)) }

func (f *Fake) Const(name string, sort solver.Sort) (solver.Term, error) {
	f.Consts[name] = sort
	return Term(name), nil
}

func (f *Fake) BoundVar(name string, sort solver.Sort) solver.Term { return Term(name) }

func (f *Fake) DeclareFun(name string, arity int, result solver.Sort) error {
	f.Declared[solver.OpKey{Name: name, Arity: arity}]++
	return nil
}

func (f *Fake) Apply(name string, args []solver.Term) (solver.Term, error) {
	return Term("(" + name + " " + join(args) + ")"), nil
}

func (f *Fake) Op(op solver.Op, args []solver.Term) (solver.Term, error) {
	return Term("(" + op.String() + " " + join(args) + ")"), nil
}

func (f *Fake) Quantify(q solver.Quant, vars []solver.SortedVar, body solver.Term) (solver.Term, error) {
	kw := "forall"
	if q == solver.QuantExists {
		kw = "exists"
	}
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return Term("(" + kw + " (" + strings.Join(names, " ") + ") " + body.String() + ")"), nil
}

func (f *Fake) Assert(t solver.Term) error {
	f.Asserts = append(f.Asserts, Assertion{Depth: f.Depth, Text: t.String()})
	return nil
}

func (f *Fake) Push() error {
	f.PushCount++
	f.Depth++
	return nil
}

func (f *Fake) Pop() error {
	f.PopCount++
	f.Depth--
	return nil
}

func (f *Fake) Check(timeout time.Duration) (solver.Status, error) {
	f.Checks++
	if len(f.CheckQueue) > 0 {
		s := f.CheckQueue[0]
		f.CheckQueue = f.CheckQueue[1:]
		return s, nil
	}
	return f.CheckStatus, nil
}

func (f *Fake) Model() ([]solver.Assignment, error) { return f.ModelAssignments, nil }

func (f *Fake) Simplify(t solver.Term) (solver.Value, error) {
	if f.SimplifyFn != nil {
		return f.SimplifyFn(t)
	}
	return solver.SymValue(t.String()), nil
}

func (f *Fake) Reset() error {
	f.Resets++
	f.Asserts = nil
	f.Consts = make(map[string]solver.Sort)
	f.Declared = make(map[solver.OpKey]int)
	f.Depth = 0
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// BaseAsserts returns the formulas asserted at the base scope.
func (f *Fake) BaseAsserts() []string {
	var out []string
	for _, a := range f.Asserts {
		if a.Depth == 0 {
			out = append(out, a.Text)
		}
	}
	return out
}

func join(args []solver.Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
