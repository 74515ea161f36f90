// Package smtlib drives an external SMT solver over the SMT-LIB2 text
// protocol. It is the default backend: a long-lived z3 process on
// stdin/stdout pipes, which keeps the engine out-of-process and the
// module free of cgo.
package smtlib

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/c360studio/algebra/solver"
)

// BackendName is the name this backend registers under.
const BackendName = "z3"

// DefaultBinary is the solver binary used when none is configured.
const DefaultBinary = "z3"

// defaultTimeout bounds a check-sat when the caller sets none; without
// it a hard quantified query could block the session forever.
const defaultTimeout = 30 * time.Second

const syncMarker = "::sync::"

func init() {
	solver.Register(BackendName, func(opts solver.Options) (solver.Backend, error) {
		return New(opts)
	})
}

// term is an SMT-LIB term rendered as text.
type term string

func (t term) String() string { return string(t) }

// Backend is a solver.Backend over one z3 process. It is
// single-threaded, like the session that owns it.
type Backend struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	out     *bufio.Reader
	logger  *slog.Logger
	timeout time.Duration

	consts map[string]solver.Sort
	funs   map[solver.OpKey]bool
	closed bool
}

// New starts the solver process and sends the session prelude.
func New(opts solver.Options) (*Backend, error) {
	bin := opts.BinaryPath
	if bin == "" {
		bin = DefaultBinary
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cmd := exec.Command(bin, "-in")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "stdin pipe", Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "stdout pipe", Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "stderr pipe", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "start " + bin, Err: err}
	}
	go drainStderr(stderr, logger)

	b := &Backend{
		cmd:     cmd,
		stdin:   stdin,
		out:     bufio.NewReader(stdout),
		logger:  logger,
		timeout: timeout,
		consts:  make(map[string]solver.Sort),
		funs:    make(map[solver.OpKey]bool),
	}
	if err := b.prelude(); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func drainStderr(r io.Reader, logger *slog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		logger.Warn("solver stderr", slog.String("backend", BackendName), slog.String("line", sc.Text()))
	}
}

func (b *Backend) prelude() error {
	b.send("(set-option :produce-models true)")
	return b.sync()
}

// Name implements solver.Backend.
func (b *Backend) Name() string { return BackendName }

// Capabilities implements solver.Backend.
func (b *Backend) Capabilities() solver.Capabilities {
	return solver.Capabilities{
		SolverName: "z3",
		NativeOps: map[solver.OpKey]string{
			{Name: "+", Arity: 2}: "LIA",
			{Name: "-", Arity: 2}: "LIA",
			{Name: "-", Arity: 1}: "LIA",
			{Name: "*", Arity: 2}: "LIA",
			{Name: "/", Arity: 2}: "LIA",
		},
		Quantifiers:       true,
		Arithmetic:        true,
		UninterpretedFuns: true,
		Models:            true,
		Simplification:    true,
	}
}

func (b *Backend) send(lines ...string) {
	for _, l := range lines {
		if _, err := io.WriteString(b.stdin, l+"\n"); err != nil {
			b.logger.Warn("solver write failed", slog.String("error", err.Error()))
		}
	}
}

// sync flushes pending commands and surfaces any (error ...) responses
// the solver emitted for them. Silent commands produce no output, so an
// echo marker is the only way to know the solver caught up.
func (b *Backend) sync() error {
	b.send(fmt.Sprintf("(echo \"%s\")", syncMarker))
	var errs []string
	for {
		line, err := readSexpr(b.out)
		if err != nil {
			return &solver.EngineError{Backend: BackendName, Message: "read", Err: err}
		}
		if strings.Contains(line, syncMarker) {
			break
		}
		if strings.HasPrefix(line, "(error") {
			errs = append(errs, line)
		}
	}
	if len(errs) > 0 {
		return &solver.EngineError{Backend: BackendName, Message: strings.Join(errs, "; ")}
	}
	return nil
}

func sortName(s solver.Sort) string {
	if s == solver.SortBool {
		return "Bool"
	}
	return "Int"
}

// IntLit implements solver.Backend.
func (b *Backend) IntLit(v int64) solver.Term {
	if v < 0 {
		return term(fmt.Sprintf("(- %d)", -v))
	}
	return term(fmt.Sprintf("%d", v))
}

// BoolLit implements solver.Backend.
func (b *Backend) BoolLit(v bool) solver.Term {
	if v {
		return term("true")
	}
	return term("false")
}

// Const implements solver.Backend. Constants must be declared outside
// query scopes: a declaration made under a push is lost on pop, while
// the local cache would still consider it live.
func (b *Backend) Const(name string, sort solver.Sort) (solver.Term, error) {
	if prev, ok := b.consts[name]; ok {
		if prev != sort {
			return nil, &solver.EngineError{Backend: BackendName,
				Message: fmt.Sprintf("constant %s redeclared with different sort", name)}
		}
		return term(symbol(name)), nil
	}
	b.send(fmt.Sprintf("(declare-const %s %s)", symbol(name), sortName(sort)))
	b.consts[name] = sort
	return term(symbol(name)), nil
}

// BoundVar implements solver.Backend.
func (b *Backend) BoundVar(name string, sort solver.Sort) solver.Term {
	return term(symbol(name))
}

// DeclareFun implements solver.Backend.
func (b *Backend) DeclareFun(name string, arity int, result solver.Sort) error {
	key := solver.OpKey{Name: name, Arity: arity}
	if b.funs[key] {
		return nil
	}
	params := strings.TrimSpace(strings.Repeat("Int ", arity))
	b.send(fmt.Sprintf("(declare-fun %s (%s) %s)", symbol(name), params, sortName(result)))
	b.funs[key] = true
	return nil
}

// Apply implements solver.Backend.
func (b *Backend) Apply(name string, args []solver.Term) (solver.Term, error) {
	if len(args) == 0 {
		return term(symbol(name)), nil
	}
	return term("(" + symbol(name) + " " + joinTerms(args) + ")"), nil
}

var opSymbols = map[solver.Op]string{
	solver.OpAdd: "+", solver.OpSub: "-", solver.OpMul: "*", solver.OpDiv: "div",
	solver.OpNeg: "-", solver.OpEq: "=", solver.OpDistinct: "distinct",
	solver.OpLt: "<", solver.OpLe: "<=", solver.OpGt: ">", solver.OpGe: ">=",
	solver.OpAnd: "and", solver.OpOr: "or", solver.OpNot: "not",
	solver.OpImplies: "=>", solver.OpIff: "=", solver.OpIte: "ite",
}

// Op implements solver.Backend.
func (b *Backend) Op(op solver.Op, args []solver.Term) (solver.Term, error) {
	sym, ok := opSymbols[op]
	if !ok {
		return nil, &solver.UnsupportedError{Backend: BackendName, Construct: op.String()}
	}
	if op == solver.OpNeg || op == solver.OpNot {
		if len(args) != 1 {
			return nil, &solver.ArityError{Op: op.String(), Want: 1, Got: len(args)}
		}
	} else if len(args) < 2 {
		return nil, &solver.ArityError{Op: op.String(), Want: 2, Got: len(args)}
	}
	return term("(" + sym + " " + joinTerms(args) + ")"), nil
}

// Quantify implements solver.Backend.
func (b *Backend) Quantify(q solver.Quant, vars []solver.SortedVar, body solver.Term) (solver.Term, error) {
	kw := "forall"
	if q == solver.QuantExists {
		kw = "exists"
	}
	var sb strings.Builder
	sb.WriteString("(" + kw + " (")
	for i, v := range vars {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("(" + symbol(v.Name) + " " + sortName(v.Sort) + ")")
	}
	sb.WriteString(") " + body.String() + ")")
	return term(sb.String()), nil
}

// Assert implements solver.Backend.
func (b *Backend) Assert(t solver.Term) error {
	b.send("(assert " + t.String() + ")")
	return b.sync()
}

// Push implements solver.Backend.
func (b *Backend) Push() error {
	b.send("(push 1)")
	return nil
}

// Pop implements solver.Backend.
func (b *Backend) Pop() error {
	b.send("(pop 1)")
	return nil
}

// Check implements solver.Backend. The timeout rides on the solver's
// own :timeout option, so an exceeded budget comes back as unknown
// rather than an error.
func (b *Backend) Check(timeout time.Duration) (solver.Status, error) {
	if err := b.sync(); err != nil {
		return solver.StatusUnknown, err
	}
	if timeout <= 0 {
		timeout = b.timeout
	}
	b.send(fmt.Sprintf("(set-option :timeout %d)", timeout.Milliseconds()))
	b.send("(check-sat)")
	for {
		line, err := readSexpr(b.out)
		if err != nil {
			return solver.StatusUnknown, &solver.EngineError{Backend: BackendName, Message: "read check-sat", Err: err}
		}
		switch strings.TrimSpace(line) {
		case "sat":
			return solver.StatusSat, nil
		case "unsat":
			return solver.StatusUnsat, nil
		case "unknown", "timeout":
			return solver.StatusUnknown, nil
		}
		if strings.HasPrefix(line, "(error") {
			return solver.StatusUnknown, &solver.EngineError{Backend: BackendName, Message: line}
		}
	}
}

// Model implements solver.Backend. Skolem constants that z3 invents for
// negated universals (x!0 and the like) are renamed back to their
// source variable.
func (b *Backend) Model() ([]solver.Assignment, error) {
	b.send("(get-model)")
	raw, err := readSexpr(b.out)
	if err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "read model", Err: err}
	}
	node, err := parseSexpr(raw)
	if err != nil {
		return nil, &solver.EngineError{Backend: BackendName, Message: "parse model", Err: err}
	}
	entries := node.list
	if len(entries) > 0 && entries[0].isAtom() && entries[0].atom == "model" {
		entries = entries[1:]
	}
	var out []solver.Assignment
	for _, e := range entries {
		// (define-fun name () Sort value)
		if e.isAtom() || len(e.list) != 5 || e.list[0].atom != "define-fun" {
			continue
		}
		if !e.list[2].isAtom() && len(e.list[2].list) != 0 {
			continue // function definition, not a constant
		}
		name := e.list[1].atom
		if i := strings.IndexByte(name, '!'); i > 0 {
			name = name[:i]
		}
		out = append(out, solver.Assignment{Name: name, Value: toValue(e.list[4])})
	}
	return out, nil
}

// Simplify implements solver.Backend.
func (b *Backend) Simplify(t solver.Term) (solver.Value, error) {
	if err := b.sync(); err != nil {
		return solver.Value{}, err
	}
	b.send("(simplify " + t.String() + ")")
	raw, err := readSexpr(b.out)
	if err != nil {
		return solver.Value{}, &solver.EngineError{Backend: BackendName, Message: "read simplify", Err: err}
	}
	if strings.HasPrefix(raw, "(error") {
		return solver.Value{}, &solver.EngineError{Backend: BackendName, Message: raw}
	}
	node, err := parseSexpr(raw)
	if err != nil {
		return solver.Value{}, &solver.EngineError{Backend: BackendName, Message: "parse simplify", Err: err}
	}
	return toValue(node), nil
}

// Reset implements solver.Backend.
func (b *Backend) Reset() error {
	b.send("(reset)")
	b.consts = make(map[string]solver.Sort)
	b.funs = make(map[solver.OpKey]bool)
	return b.prelude()
}

// Close implements solver.Backend.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.send("(exit)")
	_ = b.stdin.Close()
	done := make(chan error, 1)
	go func() { done <- b.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		_ = b.cmd.Process.Kill()
		return <-done
	}
}

func joinTerms(args []solver.Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
