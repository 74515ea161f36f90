package expr

// Constructor helpers. The external parser produces these nodes
// directly; tests and derived-definition loading build them in code.

// Int returns an integer constant.
func Int(v int64) Expr { return IntLit{Value: v} }

// Bool returns a boolean constant.
func Bool(v bool) Expr { return BoolLit{Value: v} }

// Var returns a variable or special-element reference.
func Var(name string) Expr { return Ref{Name: name} }

// Op applies a named operation to arguments.
func Op(name string, args ...Expr) Expr { return Apply{Op: name, Args: args} }

// Eq returns the comparison left = right.
func Eq(left, right Expr) Expr { return Compare{Op: CmpEq, Left: left, Right: right} }

// Ne returns the comparison left != right.
func Ne(left, right Expr) Expr { return Compare{Op: CmpNe, Left: left, Right: right} }

// Lt returns the comparison left < right.
func Lt(left, right Expr) Expr { return Compare{Op: CmpLt, Left: left, Right: right} }

// Le returns the comparison left <= right.
func Le(left, right Expr) Expr { return Compare{Op: CmpLe, Left: left, Right: right} }

// Gt returns the comparison left > right.
func Gt(left, right Expr) Expr { return Compare{Op: CmpGt, Left: left, Right: right} }

// Ge returns the comparison left >= right.
func Ge(left, right Expr) Expr { return Compare{Op: CmpGe, Left: left, Right: right} }

// And returns the conjunction of args.
func And(args ...Expr) Expr { return Logic{Op: LogicAnd, Args: args} }

// Or returns the disjunction of args.
func Or(args ...Expr) Expr { return Logic{Op: LogicOr, Args: args} }

// Not returns the negation of e.
func Not(e Expr) Expr { return Logic{Op: LogicNot, Args: []Expr{e}} }

// Implies returns premise ⇒ conclusion.
func Implies(premise, conclusion Expr) Expr {
	return Logic{Op: LogicImplies, Args: []Expr{premise, conclusion}}
}

// Iff returns left ⇔ right.
func Iff(left, right Expr) Expr {
	return Logic{Op: LogicIff, Args: []Expr{left, right}}
}

// Elem returns a carrier-typed bound variable.
func Elem(name string) BoundVar { return BoundVar{Name: name, Type: "Elem"} }

// Forall quantifies body universally over vars.
func Forall(vars []BoundVar, body Expr) Expr {
	return Quantifier{Kind: QuantForall, Vars: vars, Body: body}
}

// Exists quantifies body existentially over vars.
func Exists(vars []BoundVar, body Expr) Expr {
	return Quantifier{Kind: QuantExists, Vars: vars, Body: body}
}

// ForallWhere is Forall with a guard: where ⇒ body under the binder.
func ForallWhere(vars []BoundVar, where, body Expr) Expr {
	return Quantifier{Kind: QuantForall, Vars: vars, Where: where, Body: body}
}
