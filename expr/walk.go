package expr

// Equal reports structural equality of two expressions.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case IntLit:
		y, ok := b.(IntLit)
		return ok && x.Value == y.Value
	case BoolLit:
		y, ok := b.(BoolLit)
		return ok && x.Value == y.Value
	case Ref:
		y, ok := b.(Ref)
		return ok && x.Name == y.Name
	case Apply:
		y, ok := b.(Apply)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Compare:
		y, ok := b.(Compare)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Logic:
		y, ok := b.(Logic)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Quantifier:
		y, ok := b.(Quantifier)
		if !ok || x.Kind != y.Kind || len(x.Vars) != len(y.Vars) {
			return false
		}
		for i := range x.Vars {
			if x.Vars[i] != y.Vars[i] {
				return false
			}
		}
		if (x.Where == nil) != (y.Where == nil) {
			return false
		}
		if x.Where != nil && !Equal(x.Where, y.Where) {
			return false
		}
		return Equal(x.Body, y.Body)
	}
	return false
}

// Substitute replaces free references by name. Quantifier-bound names
// shadow the substitution inside their body and guard.
func Substitute(e Expr, bindings map[string]Expr) Expr {
	if len(bindings) == 0 {
		return e
	}
	switch x := e.(type) {
	case Ref:
		if r, ok := bindings[x.Name]; ok {
			return r
		}
		return x
	case Apply:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = Substitute(a, bindings)
		}
		return Apply{Op: x.Op, Args: args}
	case Compare:
		return Compare{Op: x.Op, Left: Substitute(x.Left, bindings), Right: Substitute(x.Right, bindings)}
	case Logic:
		args := make([]Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = Substitute(a, bindings)
		}
		return Logic{Op: x.Op, Args: args}
	case Quantifier:
		inner := bindings
		for _, v := range x.Vars {
			if _, shadowed := bindings[v.Name]; shadowed {
				inner = make(map[string]Expr, len(bindings))
				for k, b := range bindings {
					inner[k] = b
				}
				for _, bv := range x.Vars {
					delete(inner, bv.Name)
				}
				break
			}
		}
		q := Quantifier{Kind: x.Kind, Vars: x.Vars, Body: Substitute(x.Body, inner)}
		if x.Where != nil {
			q.Where = Substitute(x.Where, inner)
		}
		return q
	}
	return e
}

// References collects the names of all free references in e, in
// first-appearance order.
func References(e Expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(e Expr, bound map[string]bool)
	walk = func(e Expr, bound map[string]bool) {
		switch x := e.(type) {
		case Ref:
			if !bound[x.Name] && !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x.Name)
			}
		case Apply:
			for _, a := range x.Args {
				walk(a, bound)
			}
		case Compare:
			walk(x.Left, bound)
			walk(x.Right, bound)
		case Logic:
			for _, a := range x.Args {
				walk(a, bound)
			}
		case Quantifier:
			inner := make(map[string]bool, len(bound)+len(x.Vars))
			for k := range bound {
				inner[k] = true
			}
			for _, v := range x.Vars {
				inner[v.Name] = true
			}
			if x.Where != nil {
				walk(x.Where, inner)
			}
			walk(x.Body, inner)
		}
	}
	walk(e, map[string]bool{})
	return out
}

// UsesOp reports whether e applies the named operation anywhere.
func UsesOp(e Expr, op string) bool {
	switch x := e.(type) {
	case Apply:
		if x.Op == op {
			return true
		}
		for _, a := range x.Args {
			if UsesOp(a, op) {
				return true
			}
		}
	case Compare:
		return UsesOp(x.Left, op) || UsesOp(x.Right, op)
	case Logic:
		for _, a := range x.Args {
			if UsesOp(a, op) {
				return true
			}
		}
	case Quantifier:
		if x.Where != nil && UsesOp(x.Where, op) {
			return true
		}
		return UsesOp(x.Body, op)
	}
	return false
}
