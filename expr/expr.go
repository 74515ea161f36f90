// Package expr defines the expression and proposition AST shared between
// the surface parser, the type checker, and the axiom verification core.
// The verifier consumes these trees read-only; solver results are
// converted back into them so no solver-native type ever escapes.
package expr

import (
	"fmt"
	"strings"
)

// Expr is the interface implemented by every AST node.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// IntLit is an integer constant.
type IntLit struct {
	Value int64
}

// BoolLit is a boolean constant.
type BoolLit struct {
	Value bool
}

// Ref is a reference to a variable or a declared special element
// (identity, zero, and the like). Whether a Ref is bound is determined
// by the enclosing quantifiers at translation time.
type Ref struct {
	Name string
}

// Apply is the application of a named operation to arguments. Operation
// names form an open vocabulary: "+", "*", "•", "negate", or anything a
// structure declares.
type Apply struct {
	Op   string
	Args []Expr
}

// CmpOp enumerates comparison operators.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// Compare is a binary comparison between two expressions.
type Compare struct {
	Op    CmpOp
	Left  Expr
	Right Expr
}

// LogicOp enumerates logical connectives.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
	LogicNot
	LogicImplies
	LogicIff
)

// Logic is a logical connective over propositions. Not takes one
// argument; Implies and Iff take exactly two; And and Or take one or
// more.
type Logic struct {
	Op   LogicOp
	Args []Expr
}

// QuantKind distinguishes universal from existential quantification.
type QuantKind int

const (
	QuantForall QuantKind = iota
	QuantExists
)

// BoundVar is a typed variable bound by a quantifier. Type names other
// than "Bool" denote carrier-set elements.
type BoundVar struct {
	Name string
	Type string
}

// Quantifier binds variables over a body, with an optional where-guard.
// A guarded ∀ means guard ⇒ body; a guarded ∃ means guard ∧ body.
type Quantifier struct {
	Kind  QuantKind
	Vars  []BoundVar
	Where Expr // may be nil
	Body  Expr
}

func (IntLit) isExpr()     {}
func (BoolLit) isExpr()    {}
func (Ref) isExpr()        {}
func (Apply) isExpr()      {}
func (Compare) isExpr()    {}
func (Logic) isExpr()      {}
func (Quantifier) isExpr() {}

func (e IntLit) String() string { return fmt.Sprintf("%d", e.Value) }

func (e BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e Ref) String() string { return e.Name }

func (e Apply) String() string {
	if len(e.Args) == 2 && !isIdentOp(e.Op) {
		return fmt.Sprintf("(%s %s %s)", e.Args[0], e.Op, e.Args[1])
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Op, strings.Join(parts, ", "))
}

var cmpSymbols = map[CmpOp]string{
	CmpEq: "=", CmpNe: "!=", CmpLt: "<", CmpLe: "<=", CmpGt: ">", CmpGe: ">=",
}

func (e Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, cmpSymbols[e.Op], e.Right)
}

var logicSymbols = map[LogicOp]string{
	LogicAnd: "and", LogicOr: "or", LogicNot: "not", LogicImplies: "implies", LogicIff: "iff",
}

func (e Logic) String() string {
	if e.Op == LogicNot && len(e.Args) == 1 {
		return fmt.Sprintf("not %s", e.Args[0])
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " "+logicSymbols[e.Op]+" ") + ")"
}

func (e Quantifier) String() string {
	kw := "forall"
	if e.Kind == QuantExists {
		kw = "exists"
	}
	names := make([]string, len(e.Vars))
	for i, v := range e.Vars {
		names[i] = v.Name
	}
	if e.Where != nil {
		return fmt.Sprintf("%s %s where %s. %s", kw, strings.Join(names, " "), e.Where, e.Body)
	}
	return fmt.Sprintf("%s %s. %s", kw, strings.Join(names, " "), e.Body)
}

// isIdentOp reports whether an operation name reads as an identifier, in
// which case application renders as a call rather than infix.
func isIdentOp(op string) bool {
	for _, r := range op {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			continue
		}
		return false
	}
	return len(op) > 0
}
