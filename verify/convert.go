package verify

import (
	"github.com/c360studio/algebra/expr"
	"github.com/c360studio/algebra/solver"
)

// toExpr is the result converter: it rebuilds a language expression
// from a solver-neutral value. Numerals and booleans become constants;
// known operator symbols become their structural AST forms; anything
// else is reconstructed best-effort as an operation tree.
func toExpr(v solver.Value) expr.Expr {
	switch v.Kind {
	case solver.ValueInt:
		return expr.IntLit{Value: v.Int}
	case solver.ValueBool:
		return expr.BoolLit{Value: v.Bool}
	case solver.ValueSym:
		return expr.Ref{Name: v.Sym}
	case solver.ValueApp:
		args := make([]expr.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = toExpr(a)
		}
		return appToExpr(v.Sym, args)
	}
	return expr.Ref{Name: "?"}
}

var cmpBySymbol = map[string]expr.CmpOp{
	"=": expr.CmpEq, "<": expr.CmpLt, "<=": expr.CmpLe, ">": expr.CmpGt, ">=": expr.CmpGe,
}

var logicBySymbol = map[string]expr.LogicOp{
	"and": expr.LogicAnd, "or": expr.LogicOr, "not": expr.LogicNot, "=>": expr.LogicImplies,
}

func appToExpr(sym string, args []expr.Expr) expr.Expr {
	if op, ok := cmpBySymbol[sym]; ok && len(args) == 2 {
		return expr.Compare{Op: op, Left: args[0], Right: args[1]}
	}
	if op, ok := logicBySymbol[sym]; ok {
		if op != expr.LogicNot || len(args) == 1 {
			return expr.Logic{Op: op, Args: args}
		}
	}
	return expr.Apply{Op: sym, Args: args}
}
