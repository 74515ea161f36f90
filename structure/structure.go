// Package structure holds the parsed data model for algebraic
// structures and implements blocks, the registry that stores them, and
// the dependency resolver that computes which structures must be loaded
// before an axiom can be verified.
package structure

import (
	"github.com/c360studio/algebra/expr"
)

// Ref names another structure, optionally with type arguments, e.g.
// Semigroup(M) or Module(R, V).
type Ref struct {
	Name     string
	TypeArgs []string
}

// Def is a parsed structure declaration.
type Def struct {
	// Name is the structure's unique name, e.g. "Monoid".
	Name string

	// TypeParams are the structure's type parameters, e.g. ["M"].
	TypeParams []string

	// Extends names the parent structure, if any. The parent's
	// operations, elements, and axioms all apply to this structure.
	Extends *Ref

	// Over names the parametrizing structure, if any, e.g. a vector
	// space is declared over a field.
	Over *Ref

	// Members are the structure's declared members in source order.
	Members []Member
}

// Member is a tagged variant: exactly one of the concrete member types.
type Member interface {
	// MemberName returns the name the member binds inside the
	// structure's scope. Names must be unique within one structure.
	MemberName() string
}

// OperationDecl declares an abstract operation, e.g. op (•)(M, M) -> M.
type OperationDecl struct {
	Name   string
	Params []string
	Result string
}

// ElementDecl declares a distinguished element such as an identity or
// zero. The solver session materializes one constant per element name.
type ElementDecl struct {
	Name string
	Type string
}

// AxiomDecl declares a proposition that must hold for every model of
// the structure.
type AxiomDecl struct {
	Name        string
	Proposition expr.Expr
}

// NestedStructure declares a child sub-structure, e.g. the
// multiplicative monoid inside a ring.
type NestedStructure struct {
	Name string
	Def  *Def
}

// FunctionDef declares a derived operation with a default
// implementation, e.g. define (-)(x, y) = x + negate(y). It loads as a
// definitional axiom ∀params. f(params) = body.
type FunctionDef struct {
	Name   string
	Params []expr.BoundVar
	Body   expr.Expr
}

func (m OperationDecl) MemberName() string   { return m.Name }
func (m ElementDecl) MemberName() string     { return m.Name }
func (m AxiomDecl) MemberName() string       { return m.Name }
func (m NestedStructure) MemberName() string { return m.Name }
func (m FunctionDef) MemberName() string     { return m.Name }

// Arity returns the number of parameters the operation takes.
func (m OperationDecl) Arity() int { return len(m.Params) }

// WhereConstraint is a generic constraint on an implements block:
// "where Ordered(T)" requires Ordered to hold for the type argument.
type WhereConstraint struct {
	StructureName string
	TypeArgs      []string
}

// ImplementsDef is a concrete instantiation of a structure for given
// type arguments, optionally gated by where-constraints.
type ImplementsDef struct {
	StructureName string
	TypeArgs      []string
	Where         []WhereConstraint
	Members       []Member
}

// Axioms returns the structure's axiom members in declaration order.
func (d *Def) Axioms() []AxiomDecl {
	var out []AxiomDecl
	for _, m := range d.Members {
		if a, ok := m.(AxiomDecl); ok {
			out = append(out, a)
		}
	}
	return out
}

// Elements returns the structure's special-element members.
func (d *Def) Elements() []ElementDecl {
	var out []ElementDecl
	for _, m := range d.Members {
		if e, ok := m.(ElementDecl); ok {
			out = append(out, e)
		}
	}
	return out
}

// Functions returns the structure's derived operations.
func (d *Def) Functions() []FunctionDef {
	var out []FunctionDef
	for _, m := range d.Members {
		if f, ok := m.(FunctionDef); ok {
			out = append(out, f)
		}
	}
	return out
}

// Nested returns the structure's nested sub-structures.
func (d *Def) Nested() []NestedStructure {
	var out []NestedStructure
	for _, m := range d.Members {
		if n, ok := m.(NestedStructure); ok {
			out = append(out, n)
		}
	}
	return out
}
