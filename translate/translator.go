package translate

import (
	"fmt"

	"github.com/c360studio/algebra/expr"
	"github.com/c360studio/algebra/solver"
)

// UnboundRefError reports a reference that is neither quantifier-bound
// nor a declared special element.
type UnboundRefError struct {
	Name string
}

func (e *UnboundRefError) Error() string {
	return fmt.Sprintf("unbound reference: %s", e.Name)
}

// Env maps names in scope (quantifier-bound variables and special
// elements) to their solver terms.
type Env map[string]solver.Term

// extend returns a copy of the env with additional bindings.
func (e Env) extend(vars []expr.BoundVar, terms []solver.Term) Env {
	out := make(Env, len(e)+len(vars))
	for k, v := range e {
		out[k] = v
	}
	for i, v := range vars {
		out[v.Name] = terms[i]
	}
	return out
}

// Translator walks expression trees and builds backend terms. It owns
// the session's uninterpreted-function cache: the same (name, arity)
// always resolves to the same declared symbol, otherwise axioms
// referencing the operation elsewhere would become inconsistent.
//
// A translator is bound to one backend and, like the session that owns
// it, must not be shared across concurrent callers.
type Translator struct {
	backend  solver.Backend
	rules    *Registry
	declared map[solver.OpKey]bool
}

// New creates a translator over a backend and a rule registry.
func New(backend solver.Backend, rules *Registry) *Translator {
	return &Translator{
		backend:  backend,
		rules:    rules,
		declared: make(map[solver.OpKey]bool),
	}
}

// RegisterRule adds a session-local translation rule. It fails if the
// name has already been used as an uninterpreted function in this
// session: promoting an uninterpreted symbol would silently change the
// meaning of every axiom already asserted about it.
func (t *Translator) RegisterRule(name string, arity int, rule Rule) error {
	if t.declared[solver.OpKey{Name: name, Arity: arity}] {
		return fmt.Errorf("%s/%d is already declared uninterpreted in this session", name, arity)
	}
	return t.rules.Register(name, arity, rule)
}

// Declare declares (name, arity) as an uninterpreted function now,
// instead of waiting for first use. The session uses it for derived
// operations, whose symbols must exist before their definitional axiom
// is asserted.
func (t *Translator) Declare(name string, arity int) error {
	key := solver.OpKey{Name: name, Arity: arity}
	if t.declared[key] {
		return nil
	}
	if err := t.backend.DeclareFun(name, arity, solver.SortElem); err != nil {
		return err
	}
	t.declared[key] = true
	return nil
}

// Declared reports whether (name, arity) has been declared as an
// uninterpreted function in this session.
func (t *Translator) Declared(name string, arity int) bool {
	return t.declared[solver.OpKey{Name: name, Arity: arity}]
}

// Reset forgets all session-local uninterpreted declarations. Call it
// together with a backend reset.
func (t *Translator) Reset() {
	t.declared = make(map[solver.OpKey]bool)
}

// Translate converts an expression to a backend term under env.
func (t *Translator) Translate(e expr.Expr, env Env) (solver.Term, error) {
	switch x := e.(type) {
	case expr.IntLit:
		return t.backend.IntLit(x.Value), nil

	case expr.BoolLit:
		return t.backend.BoolLit(x.Value), nil

	case expr.Ref:
		if term, ok := env[x.Name]; ok {
			return term, nil
		}
		return nil, &UnboundRefError{Name: x.Name}

	case expr.Apply:
		args := make([]solver.Term, len(x.Args))
		for i, a := range x.Args {
			arg, err := t.Translate(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return t.Operation(x.Op, args)

	case expr.Compare:
		left, err := t.Translate(x.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := t.Translate(x.Right, env)
		if err != nil {
			return nil, err
		}
		return t.compare(x.Op, left, right)

	case expr.Logic:
		args := make([]solver.Term, len(x.Args))
		for i, a := range x.Args {
			arg, err := t.Translate(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return t.logic(x.Op, args)

	case expr.Quantifier:
		return t.quantifier(x, env)
	}
	return nil, &solver.UnsupportedError{Backend: t.backend.Name(), Construct: fmt.Sprintf("%T", e)}
}

// Operation dispatches a named operation over translated arguments:
// registered rules first, then the uninterpreted-function fallback.
func (t *Translator) Operation(name string, args []solver.Term) (solver.Term, error) {
	if rule, ok := t.rules.Lookup(name, len(args)); ok {
		return rule(t.backend, args)
	}
	key := solver.OpKey{Name: name, Arity: len(args)}
	if !t.declared[key] {
		if err := t.backend.DeclareFun(name, len(args), solver.SortElem); err != nil {
			return nil, err
		}
		t.declared[key] = true
	}
	return t.backend.Apply(name, args)
}

func (t *Translator) compare(op expr.CmpOp, left, right solver.Term) (solver.Term, error) {
	pair := []solver.Term{left, right}
	switch op {
	case expr.CmpEq:
		return t.backend.Op(solver.OpEq, pair)
	case expr.CmpNe:
		eq, err := t.backend.Op(solver.OpEq, pair)
		if err != nil {
			return nil, err
		}
		return t.backend.Op(solver.OpNot, []solver.Term{eq})
	case expr.CmpLt:
		return t.backend.Op(solver.OpLt, pair)
	case expr.CmpLe:
		return t.backend.Op(solver.OpLe, pair)
	case expr.CmpGt:
		return t.backend.Op(solver.OpGt, pair)
	case expr.CmpGe:
		return t.backend.Op(solver.OpGe, pair)
	}
	return nil, &solver.UnsupportedError{Backend: t.backend.Name(), Construct: "comparison"}
}

func (t *Translator) logic(op expr.LogicOp, args []solver.Term) (solver.Term, error) {
	switch op {
	case expr.LogicAnd:
		return t.backend.Op(solver.OpAnd, args)
	case expr.LogicOr:
		return t.backend.Op(solver.OpOr, args)
	case expr.LogicNot:
		if len(args) != 1 {
			return nil, &solver.ArityError{Op: "not", Want: 1, Got: len(args)}
		}
		return t.backend.Op(solver.OpNot, args)
	case expr.LogicImplies:
		if len(args) != 2 {
			return nil, &solver.ArityError{Op: "implies", Want: 2, Got: len(args)}
		}
		return t.backend.Op(solver.OpImplies, args)
	case expr.LogicIff:
		if len(args) != 2 {
			return nil, &solver.ArityError{Op: "iff", Want: 2, Got: len(args)}
		}
		return t.backend.Op(solver.OpIff, args)
	}
	return nil, &solver.UnsupportedError{Backend: t.backend.Name(), Construct: "connective"}
}

func (t *Translator) quantifier(q expr.Quantifier, env Env) (solver.Term, error) {
	vars := make([]solver.SortedVar, len(q.Vars))
	terms := make([]solver.Term, len(q.Vars))
	for i, v := range q.Vars {
		sort := SortOf(v.Type)
		vars[i] = solver.SortedVar{Name: v.Name, Sort: sort}
		terms[i] = t.backend.BoundVar(v.Name, sort)
	}
	inner := env.extend(q.Vars, terms)

	body, err := t.Translate(q.Body, inner)
	if err != nil {
		return nil, err
	}
	if q.Where != nil {
		guard, err := t.Translate(q.Where, inner)
		if err != nil {
			return nil, err
		}
		// ∀x where g: g ⇒ body; ∃x where g: g ∧ body.
		combine := solver.OpImplies
		if q.Kind == expr.QuantExists {
			combine = solver.OpAnd
		}
		body, err = t.backend.Op(combine, []solver.Term{guard, body})
		if err != nil {
			return nil, err
		}
	}

	kind := solver.QuantForall
	if q.Kind == expr.QuantExists {
		kind = solver.QuantExists
	}
	return t.backend.Quantify(kind, vars, body)
}

// SortOf maps a surface type name to a solver sort. Everything but Bool
// is a carrier-set element.
func SortOf(typeName string) solver.Sort {
	if typeName == "Bool" {
		return solver.SortBool
	}
	return solver.SortElem
}
