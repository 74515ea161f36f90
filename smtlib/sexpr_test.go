package smtlib

import (
	"bufio"
	"strings"
	"testing"

	"github.com/c360studio/algebra/solver"
)

func TestReadSexpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare atom", "unsat\n", "unsat"},
		{"flat list", "(error \"oops\")\n", "(error \"oops\")"},
		{"nested", "(model (define-fun x () Int 3))\n", "(model (define-fun x () Int 3))"},
		{"multiline", "(model\n  (define-fun x () Int 3)\n)\n", "(model   (define-fun x () Int 3) )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSexpr(bufio.NewReader(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("readSexpr: %v", err)
			}
			if got != tt.want {
				t.Errorf("readSexpr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadSexprSequence(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("sat\n(model)\n"))
	first, err := readSexpr(r)
	if err != nil || first != "sat" {
		t.Fatalf("first = %q, %v", first, err)
	}
	second, err := readSexpr(r)
	if err != nil || second != "(model)" {
		t.Fatalf("second = %q, %v", second, err)
	}
}

func TestParseSexpr(t *testing.T) {
	node, err := parseSexpr("(= (|•| x y) 3)")
	if err != nil {
		t.Fatalf("parseSexpr: %v", err)
	}
	if node.isAtom() || len(node.list) != 3 {
		t.Fatalf("unexpected shape: %+v", node)
	}
	if node.list[0].atom != "=" {
		t.Errorf("head = %q, want =", node.list[0].atom)
	}
	inner := node.list[1]
	if inner.isAtom() || inner.list[0].atom != "•" {
		t.Errorf("quoted symbol not unquoted: %+v", inner)
	}
}

func TestParseSexprErrors(t *testing.T) {
	for _, input := range []string{"(a (b)", "a b", ")"} {
		if _, err := parseSexpr(input); err == nil {
			t.Errorf("parseSexpr(%q) succeeded, want error", input)
		}
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input string
		want  solver.Value
	}{
		{"12", solver.IntValue(12)},
		{"true", solver.BoolValue(true)},
		{"false", solver.BoolValue(false)},
		{"x", solver.SymValue("x")},
		{"(- 5)", solver.IntValue(-5)},
		{"(* 5 x)", solver.AppValue("*", solver.IntValue(5), solver.SymValue("x"))},
		{"(- x)", solver.AppValue("-", solver.SymValue("x"))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := parseSexpr(tt.input)
			if err != nil {
				t.Fatalf("parseSexpr: %v", err)
			}
			got := toValue(node)
			if got.String() != tt.want.String() {
				t.Errorf("toValue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"x", "x"},
		{"plus", "plus"},
		{"+", "+"},
		{"<=", "<="},
		{"•", "|•|"},
		{"my op", "|my op|"},
		{"3d", "|3d|"},
		{"", "||"},
	}
	for _, tt := range tests {
		if got := symbol(tt.name); got != tt.want {
			t.Errorf("symbol(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
