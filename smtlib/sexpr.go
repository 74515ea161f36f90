package smtlib

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/algebra/solver"
)

// sexpr is a parsed s-expression: either an atom or a list.
type sexpr struct {
	atom string
	list []sexpr
}

func (s sexpr) isAtom() bool { return s.list == nil }

// readSexpr reads one balanced s-expression (or a bare atom line) from
// the solver's output stream.
func readSexpr(r *bufio.Reader) (string, error) {
	var b strings.Builder
	depth := 0
	started := false
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		switch c {
		case '(':
			depth++
			started = true
			b.WriteByte(c)
		case ')':
			depth--
			b.WriteByte(c)
			if started && depth == 0 {
				return b.String(), nil
			}
		case '\n':
			if started && depth == 0 && b.Len() > 0 {
				return b.String(), nil
			}
			if depth > 0 {
				b.WriteByte(' ')
			}
		default:
			if depth > 0 || !isSpace(c) {
				started = true
				b.WriteByte(c)
			}
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// parseSexpr parses a balanced s-expression string.
func parseSexpr(s string) (sexpr, error) {
	toks := tokenize(s)
	node, rest, err := parseTokens(toks)
	if err != nil {
		return sexpr{}, err
	}
	if len(rest) != 0 {
		return sexpr{}, fmt.Errorf("trailing tokens in %q", s)
	}
	return node, nil
}

func tokenize(s string) []string {
	var toks []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '|':
			j := strings.IndexByte(s[i+1:], '|')
			if j < 0 {
				toks = append(toks, s[i+1:])
				i = len(s)
			} else {
				toks = append(toks, s[i+1:i+1+j])
				i += j + 2
			}
		default:
			j := i
			for j < len(s) && !isSpace(s[j]) && s[j] != '(' && s[j] != ')' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}

func parseTokens(toks []string) (sexpr, []string, error) {
	if len(toks) == 0 {
		return sexpr{}, nil, fmt.Errorf("unexpected end of s-expression")
	}
	tok := toks[0]
	if tok == "(" {
		rest := toks[1:]
		node := sexpr{list: []sexpr{}}
		for {
			if len(rest) == 0 {
				return sexpr{}, nil, fmt.Errorf("unbalanced s-expression")
			}
			if rest[0] == ")" {
				return node, rest[1:], nil
			}
			child, r, err := parseTokens(rest)
			if err != nil {
				return sexpr{}, nil, err
			}
			node.list = append(node.list, child)
			rest = r
		}
	}
	if tok == ")" {
		return sexpr{}, nil, fmt.Errorf("unexpected )")
	}
	return sexpr{atom: tok}, toks[1:], nil
}

// toValue converts a parsed s-expression into a solver-neutral value.
// Numerals and booleans become literals; anything else is kept
// symbolic so the result converter can rebuild an operation tree.
func toValue(s sexpr) solver.Value {
	if s.isAtom() {
		if n, err := strconv.ParseInt(s.atom, 10, 64); err == nil {
			return solver.IntValue(n)
		}
		switch s.atom {
		case "true":
			return solver.BoolValue(true)
		case "false":
			return solver.BoolValue(false)
		}
		return solver.SymValue(s.atom)
	}
	if len(s.list) == 0 {
		return solver.SymValue("()")
	}
	head := s.list[0]
	// (- 5) is a negative numeral, not an application.
	if head.isAtom() && head.atom == "-" && len(s.list) == 2 && s.list[1].isAtom() {
		if n, err := strconv.ParseInt(s.list[1].atom, 10, 64); err == nil {
			return solver.IntValue(-n)
		}
	}
	name := head.atom
	if !head.isAtom() {
		name = "@app"
	}
	args := make([]solver.Value, 0, len(s.list)-1)
	for _, c := range s.list[1:] {
		args = append(args, toValue(c))
	}
	return solver.AppValue(name, args...)
}

// symbol renders an operation or variable name as an SMT-LIB symbol,
// quoting anything outside the simple-symbol alphabet (user operation
// names like • routinely are).
func symbol(name string) string {
	if name == "" {
		return "||"
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			continue
		}
		switch c {
		case '_', '+', '-', '*', '/', '<', '>', '=', '%', '?', '!', '.', '$', '~', '&', '^', '@':
			continue
		}
		return "|" + name + "|"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "|" + name + "|"
	}
	return name
}
