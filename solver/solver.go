// Package solver defines the backend abstraction over concrete SMT and
// SAT engines: opaque terms, builders, assertion scoping, satisfiability
// checking, and solver-neutral model values. Anything satisfying the
// Backend interface is a valid engine, whether a native binding, a C API
// wrapper, or a text protocol driver.
package solver

import (
	"time"
)

// Sort identifies the solver sort a term inhabits. Carrier-set elements
// of algebraic structures are uniformly realized as the solver's
// integer sort; propositions as booleans.
type Sort int

const (
	// SortElem is the sort of structure elements (solver integers).
	SortElem Sort = iota
	// SortBool is the boolean sort.
	SortBool
)

// Op enumerates the operations every backend may implement natively.
// Backends lacking one return an UnsupportedError and remain usable for
// whatever fragment they do cover.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpEq
	OpDistinct
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNot
	OpImplies
	OpIff
	OpIte
)

var opNames = map[Op]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "div", OpNeg: "neg",
	OpEq: "=", OpDistinct: "distinct", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "and", OpOr: "or", OpNot: "not", OpImplies: "=>", OpIff: "iff", OpIte: "ite",
}

func (o Op) String() string { return opNames[o] }

// Quant distinguishes quantifier kinds at the backend boundary.
type Quant int

const (
	QuantForall Quant = iota
	QuantExists
)

// Term is an opaque handle on a backend-native expression. Terms are
// only meaningful to the backend that built them.
type Term interface {
	String() string
}

// SortedVar is a quantifier-bound variable with its sort.
type SortedVar struct {
	Name string
	Sort Sort
}

// Status is the outcome of a satisfiability check.
type Status int

const (
	StatusSat Status = iota
	StatusUnsat
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Backend wraps one long-lived solver context. A backend instance is
// single-threaded: push/pop scoping is order-dependent session state.
type Backend interface {
	// Name identifies the backend, e.g. "z3-smtlib" or "gini".
	Name() string

	// Capabilities describes what the engine supports natively.
	Capabilities() Capabilities

	// IntLit builds an integer literal term.
	IntLit(v int64) Term

	// BoolLit builds a boolean literal term.
	BoolLit(v bool) Term

	// Const returns the free constant with the given name, declaring
	// it on first use. Constants are declared at the base scope so
	// they survive push/pop.
	Const(name string, sort Sort) (Term, error)

	// BoundVar builds a reference to a quantifier-bound variable. It
	// is only valid inside a matching Quantify call.
	BoundVar(name string, sort Sort) Term

	// DeclareFun declares an uninterpreted function of the given
	// arity over element sorts. Declaring the same name twice with
	// the same arity is a no-op.
	DeclareFun(name string, arity int, result Sort) error

	// Apply applies a previously declared function to arguments.
	Apply(name string, args []Term) (Term, error)

	// Op builds a native-theory operation over arguments.
	Op(op Op, args []Term) (Term, error)

	// Quantify wraps body in a quantifier binding vars.
	Quantify(q Quant, vars []SortedVar, body Term) (Term, error)

	// Assert adds a formula to the current scope.
	Assert(t Term) error

	// Push opens a new assertion scope.
	Push() error

	// Pop discards the innermost assertion scope.
	Pop() error

	// Check decides satisfiability of the asserted formulas. A zero
	// timeout means the backend default. Timeouts surface as
	// StatusUnknown, never as an error.
	Check(timeout time.Duration) (Status, error)

	// Model returns variable assignments after a sat Check.
	Model() ([]Assignment, error)

	// Simplify rewrites a term into a simpler equivalent value,
	// independent of asserted formulas.
	Simplify(t Term) (Value, error)

	// Reset discards all assertions, declarations, and scopes.
	Reset() error

	// Close releases the engine.
	Close() error
}
