package solver

// OpKey identifies an operation by surface name and arity.
type OpKey struct {
	Name  string
	Arity int
}

// Capabilities describes what an engine supports natively. It is built
// once from the backend's manifest and immutable afterwards; axioms
// using operations outside NativeOps remain sound through the
// uninterpreted-function fallback, just potentially less decidable.
type Capabilities struct {
	// SolverName is the underlying engine, e.g. "z3".
	SolverName string

	// NativeOps maps (name, arity) to the theory that interprets it,
	// e.g. {"+", 2} -> "LIA".
	NativeOps map[OpKey]string

	// Quantifiers reports whether the engine handles quantified
	// formulas at all.
	Quantifiers bool

	// Arithmetic reports whether integer arithmetic is native.
	Arithmetic bool

	// UninterpretedFuns reports whether the engine can declare
	// uninterpreted functions of arity > 0.
	UninterpretedFuns bool

	// Models reports whether counterexample models can be extracted.
	Models bool

	// Simplification reports whether the engine can rewrite terms
	// independently of solving.
	Simplification bool
}

// Supports reports whether the engine interprets the named operation at
// the given arity.
func (c Capabilities) Supports(name string, arity int) bool {
	_, ok := c.NativeOps[OpKey{Name: name, Arity: arity}]
	return ok
}
