package solver

import (
	"fmt"
	"strings"
)

// ValueKind tags the variants of a solver-neutral Value.
type ValueKind int

const (
	// ValueInt is a numeric value.
	ValueInt ValueKind = iota
	// ValueBool is a boolean value.
	ValueBool
	// ValueSym is a bare symbol, e.g. a variable or function name the
	// solver left uninterpreted.
	ValueSym
	// ValueApp is a symbolic application of Sym to Args.
	ValueApp
)

// Value is the solver-neutral representation of a model value or a
// simplified term. Backends produce Values; the result converter turns
// them into language expressions, so solver-native types never cross
// the public boundary.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Sym  string
	Args []Value
}

// IntValue builds a numeric value.
func IntValue(v int64) Value { return Value{Kind: ValueInt, Int: v} }

// BoolValue builds a boolean value.
func BoolValue(v bool) Value { return Value{Kind: ValueBool, Bool: v} }

// SymValue builds a bare symbol.
func SymValue(name string) Value { return Value{Kind: ValueSym, Sym: name} }

// AppValue builds a symbolic application.
func AppValue(name string, args ...Value) Value {
	return Value{Kind: ValueApp, Sym: name, Args: args}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueSym:
		return v.Sym
	case ValueApp:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("(%s %s)", v.Sym, strings.Join(parts, " "))
	}
	return "?"
}

// Assignment binds a variable name to its model value.
type Assignment struct {
	Name  string
	Value Value
}
