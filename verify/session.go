package verify

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/algebra/expr"
	"github.com/c360studio/algebra/solver"
	"github.com/c360studio/algebra/structure"
	"github.com/c360studio/algebra/translate"
)

// StructureLoadError wraps a translation failure while asserting one of
// a structure's members. Structures loaded before the failure remain
// usable.
type StructureLoadError struct {
	Structure string
	Member    string
	Err       error
}

func (e *StructureLoadError) Error() string {
	return fmt.Sprintf("loading %s.%s: %v", e.Structure, e.Member, e.Err)
}

func (e *StructureLoadError) Unwrap() error { return e.Err }

// Stats counts session activity, for diagnostics and tests.
type Stats struct {
	StructuresLoaded int
	AxiomsAsserted   int
	Verifications    int
}

// Session owns one long-lived solver context and the caches around it:
// which structures are already asserted and which special-element
// constants exist. It is the only mutable state in the core and must
// not be shared across concurrent callers: use one session per caller
// or serialize externally.
type Session struct {
	id         string
	logger     *slog.Logger
	registry   *structure.Registry
	resolver   *structure.Resolver
	backend    solver.Backend
	translator *translate.Translator
	timeout    time.Duration

	rules    *translate.Registry
	loaded   map[string]bool
	elements translate.Env
	stats    Stats
}

// Option configures a session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithTimeout sets the per-query solver timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithRules replaces the default translation rule registry, the hook
// for registering additional operation translators.
func WithRules(rules *translate.Registry) Option {
	return func(s *Session) { s.rules = rules }
}

// NewSession creates a session over a backend and a structure registry.
// The registry may be shared across sessions; the backend may not.
func NewSession(backend solver.Backend, registry *structure.Registry, opts ...Option) *Session {
	s := &Session{
		id:       uuid.New().String(),
		logger:   slog.Default(),
		registry: registry,
		resolver: structure.NewResolver(registry),
		backend:  backend,
		loaded:   make(map[string]bool),
		elements: make(translate.Env),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rules == nil {
		s.rules = translate.NewRegistry()
	}
	s.translator = translate.New(backend, s.rules)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Stats returns a copy of the session's counters.
func (s *Session) Stats() Stats { return s.stats }

// Backend returns the session's backend.
func (s *Session) Backend() solver.Backend { return s.backend }

// Translator returns the session's translator, for registering
// additional operation rules before first use.
func (s *Session) Translator() *translate.Translator { return s.translator }

// EnsureLoaded makes sure the named structure and its transitive
// dependencies are asserted as background theory. It is idempotent:
// a structure's axioms enter the solver at most once per session.
func (s *Session) EnsureLoaded(name string) error {
	if s.loaded[name] {
		return nil
	}
	order, err := s.resolver.Resolve(name)
	if err != nil {
		return err
	}
	for _, n := range order {
		if s.loaded[n] {
			continue
		}
		if err := s.loadStructure(n); err != nil {
			return err
		}
		s.loaded[n] = true
		s.stats.StructuresLoaded++
		metricStructuresLoaded.Inc()
	}
	return nil
}

// loadStructure asserts one structure's members: special elements
// first, then derived-operation definitions, then axioms.
func (s *Session) loadStructure(name string) error {
	def, ok := s.registry.Get(name)
	if !ok {
		return &structure.UnknownStructureError{Name: name}
	}

	for _, el := range def.Elements() {
		term, err := s.backend.Const(el.Name, translate.SortOf(el.Type))
		if err != nil {
			return &StructureLoadError{Structure: name, Member: el.Name, Err: err}
		}
		s.elements[el.Name] = term
	}

	for _, fn := range def.Functions() {
		if err := s.loadFunction(name, fn); err != nil {
			return err
		}
	}

	for _, ax := range def.Axioms() {
		term, err := s.translator.Translate(ax.Proposition, s.elements)
		if err != nil {
			return &StructureLoadError{Structure: name, Member: ax.Name, Err: err}
		}
		if err := s.backend.Assert(term); err != nil {
			return &StructureLoadError{Structure: name, Member: ax.Name, Err: err}
		}
		s.stats.AxiomsAsserted++
	}

	s.logger.Debug("structure loaded",
		slog.String("session", s.id),
		slog.String("structure", name),
		slog.Int("axioms", len(def.Axioms())))
	return nil
}

// loadFunction asserts a derived operation as a definitional axiom
// ∀params. f(params) = body. The symbol is fresh and the body explicit,
// so the assertion is a conservative extension, provided the body does
// not mention f itself; self-reference is rejected here.
func (s *Session) loadFunction(structName string, fn structure.FunctionDef) error {
	if expr.UsesOp(fn.Body, fn.Name) {
		return &StructureLoadError{Structure: structName, Member: fn.Name,
			Err: &solver.UnsupportedError{Backend: s.backend.Name(),
				Construct: "recursive derived operation"}}
	}
	// A name covered by a translation rule (e.g. a definition of "-")
	// keeps its native meaning; the equation then constrains the body's
	// operations instead of introducing a fresh symbol.
	if _, native := s.rules.Lookup(fn.Name, len(fn.Params)); !native {
		if err := s.translator.Declare(fn.Name, len(fn.Params)); err != nil {
			return &StructureLoadError{Structure: structName, Member: fn.Name, Err: err}
		}
	}

	params := make([]expr.Expr, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = expr.Var(p.Name)
	}
	def := expr.Forall(fn.Params, expr.Eq(expr.Op(fn.Name, params...), fn.Body))

	term, err := s.translator.Translate(def, s.elements)
	if err != nil {
		return &StructureLoadError{Structure: structName, Member: fn.Name, Err: err}
	}
	if err := s.backend.Assert(term); err != nil {
		return &StructureLoadError{Structure: structName, Member: fn.Name, Err: err}
	}
	s.stats.AxiomsAsserted++
	return nil
}

// WithScope pushes a solver scope, runs f, and pops the scope whether
// or not f failed, so per-query assertions never leak into later
// queries.
func (s *Session) WithScope(f func() error) error {
	if err := s.backend.Push(); err != nil {
		return err
	}
	ferr := f()
	if perr := s.backend.Pop(); perr != nil && ferr == nil {
		return perr
	}
	return ferr
}

// Verify checks an axiom against the named structure's theory:
// load dependencies, push a scope, assert the negated goal, and check.
// Unsatisfiable means the axiom holds everywhere the background theory
// does.
func (s *Session) Verify(structName string, axiom expr.Expr) Result {
	s.stats.Verifications++
	res := s.verify(structName, axiom)
	metricVerifications.WithLabelValues(res.Outcome.String()).Inc()
	if res.Outcome == OutcomeError {
		s.logger.Warn("verification error",
			slog.String("session", s.id),
			slog.String("structure", structName),
			slog.String("error", res.Err.Error()))
	}
	return res
}

func (s *Session) verify(structName string, axiom expr.Expr) Result {
	if err := s.EnsureLoaded(structName); err != nil {
		return errored(err)
	}
	// Free references are arbitrary elements, so x+1 = x is checked for
	// every x and refuted by any one value.
	env, err := s.envFor(axiom)
	if err != nil {
		return errored(err)
	}
	goal, err := s.translator.Translate(axiom, env)
	if err != nil {
		return errored(err)
	}

	var res Result
	err = s.WithScope(func() error {
		negated, err := s.backend.Op(solver.OpNot, []solver.Term{goal})
		if err != nil {
			return err
		}
		if err := s.backend.Assert(negated); err != nil {
			return err
		}
		status, err := s.backend.Check(s.timeout)
		if err != nil {
			return err
		}
		switch status {
		case solver.StatusUnsat:
			res = valid()
		case solver.StatusSat:
			res = invalid(s.counterexample(axiom))
		default:
			res = unknown("solver returned unknown (timeout or incomplete theory)")
		}
		return nil
	})
	if err != nil {
		return errored(err)
	}
	return res
}

// counterexample extracts model values for the names the axiom talks
// about: its quantified variables and free references.
func (s *Session) counterexample(axiom expr.Expr) []Binding {
	model, err := s.backend.Model()
	if err != nil {
		s.logger.Warn("model extraction failed",
			slog.String("session", s.id), slog.String("error", err.Error()))
		return nil
	}
	relevant := axiomNames(axiom)
	var out []Binding
	for _, a := range model {
		if len(relevant) > 0 && !relevant[a.Name] {
			continue
		}
		out = append(out, Binding{Name: a.Name, Value: toExpr(a.Value)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// axiomNames collects quantifier-bound and free reference names.
func axiomNames(e expr.Expr) map[string]bool {
	names := make(map[string]bool)
	for _, r := range expr.References(e) {
		names[r] = true
	}
	var walk func(expr.Expr)
	walk = func(e expr.Expr) {
		switch x := e.(type) {
		case expr.Quantifier:
			for _, v := range x.Vars {
				names[v.Name] = true
			}
			if x.Where != nil {
				walk(x.Where)
			}
			walk(x.Body)
		case expr.Apply:
			for _, a := range x.Args {
				walk(a)
			}
		case expr.Compare:
			walk(x.Left)
			walk(x.Right)
		case expr.Logic:
			for _, a := range x.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return names
}

// AreEquivalent proves e1 = e2 by checking that their inequality is
// unsatisfiable. Free references are treated as arbitrary elements, so
// equivalence means equality for every value of them.
func (s *Session) AreEquivalent(e1, e2 expr.Expr) (bool, error) {
	env, err := s.envFor(e1, e2)
	if err != nil {
		return false, err
	}
	t1, err := s.translator.Translate(e1, env)
	if err != nil {
		return false, err
	}
	t2, err := s.translator.Translate(e2, env)
	if err != nil {
		return false, err
	}

	var equivalent bool
	err = s.WithScope(func() error {
		eq, err := s.backend.Op(solver.OpEq, []solver.Term{t1, t2})
		if err != nil {
			return err
		}
		ne, err := s.backend.Op(solver.OpNot, []solver.Term{eq})
		if err != nil {
			return err
		}
		if err := s.backend.Assert(ne); err != nil {
			return err
		}
		status, err := s.backend.Check(s.timeout)
		if err != nil {
			return err
		}
		if status == solver.StatusUnknown {
			return fmt.Errorf("equivalence check inconclusive")
		}
		equivalent = status == solver.StatusUnsat
		return nil
	})
	return equivalent, err
}

// Evaluate reduces an expression to its simplest form and returns it as
// a language expression: Evaluate(3 * (2 + 2)) yields the constant 12.
func (s *Session) Evaluate(e expr.Expr) (expr.Expr, error) {
	return s.EvaluateWith(e, nil)
}

// EvaluateWith substitutes bindings for free references before
// evaluating.
func (s *Session) EvaluateWith(e expr.Expr, bindings map[string]expr.Expr) (expr.Expr, error) {
	return s.Simplify(expr.Substitute(e, bindings))
}

// Simplify rewrites an expression into a simpler equivalent one, e.g.
// (3+2)*x into 5*x. The result is a language expression and composes
// into further expressions.
func (s *Session) Simplify(e expr.Expr) (expr.Expr, error) {
	env, err := s.envFor(e)
	if err != nil {
		return nil, err
	}
	t, err := s.translator.Translate(e, env)
	if err != nil {
		return nil, err
	}
	v, err := s.backend.Simplify(t)
	if err != nil {
		return nil, err
	}
	return toExpr(v), nil
}

// envFor builds a translation env covering the special elements plus
// any other free references, which are declared as arbitrary element
// constants.
func (s *Session) envFor(exprs ...expr.Expr) (translate.Env, error) {
	env := make(translate.Env, len(s.elements))
	for k, v := range s.elements {
		env[k] = v
	}
	for _, e := range exprs {
		for _, name := range expr.References(e) {
			if _, ok := env[name]; ok {
				continue
			}
			term, err := s.backend.Const(name, solver.SortElem)
			if err != nil {
				return nil, err
			}
			env[name] = term
		}
	}
	return env, nil
}

// Reset drops the loaded-structure cache, special elements, and all
// solver state, returning the session to its initial condition.
func (s *Session) Reset() error {
	if err := s.backend.Reset(); err != nil {
		return err
	}
	s.translator.Reset()
	s.loaded = make(map[string]bool)
	s.elements = make(translate.Env)
	return nil
}

// Close releases the backend.
func (s *Session) Close() error {
	return s.backend.Close()
}
