package sat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/algebra/expr"
	"github.com/c360studio/algebra/sat"
	"github.com/c360studio/algebra/solver"
	"github.com/c360studio/algebra/structure"
	"github.com/c360studio/algebra/verify"
)

// The boolean fragment end to end: a structure whose elements and axioms
// are purely propositional verifies on the SAT backend without any
// external solver.
func TestPropositionalSession(t *testing.T) {
	r := structure.NewRegistry()
	require.NoError(t, r.RegisterStructure(&structure.Def{
		Name: "Chain",
		Members: []structure.Member{
			structure.ElementDecl{Name: "p", Type: "Bool"},
			structure.ElementDecl{Name: "q", Type: "Bool"},
			structure.ElementDecl{Name: "r", Type: "Bool"},
			structure.AxiomDecl{Name: "pq", Proposition: expr.Implies(expr.Var("p"), expr.Var("q"))},
			structure.AxiomDecl{Name: "qr", Proposition: expr.Implies(expr.Var("q"), expr.Var("r"))},
		},
	}))

	backend, err := solver.Open(sat.BackendName, solver.Options{Timeout: time.Second})
	require.NoError(t, err)
	s := verify.NewSession(backend, r)
	defer s.Close()

	res := s.Verify("Chain", expr.Implies(expr.Var("p"), expr.Var("r")))
	assert.Equal(t, verify.OutcomeValid, res.Outcome, "implication chains: %s", res)

	res = s.Verify("Chain", expr.Implies(expr.Var("r"), expr.Var("p")))
	require.Equal(t, verify.OutcomeInvalid, res.Outcome, "converse must fail: %s", res)
	values := make(map[string]expr.Expr)
	for _, b := range res.Counterexample {
		values[b.Name] = b.Value
	}
	assert.True(t, expr.Equal(values["r"], expr.Bool(true)), "counterexample %v", res.Counterexample)
	assert.True(t, expr.Equal(values["p"], expr.Bool(false)), "counterexample %v", res.Counterexample)
}

// Axioms outside the fragment fail at load time with a structured error
// instead of corrupting the session.
func TestArithmeticRejected(t *testing.T) {
	r := structure.NewRegistry()
	require.NoError(t, r.RegisterStructure(&structure.Def{
		Name: "Numeric",
		Members: []structure.Member{
			structure.ElementDecl{Name: "zero", Type: "N"},
			structure.AxiomDecl{Name: "zero_add", Proposition: expr.Forall(
				[]expr.BoundVar{expr.Elem("x")},
				expr.Eq(expr.Op("+", expr.Var("zero"), expr.Var("x")), expr.Var("x")))},
		},
	}))

	s := verify.NewSession(sat.New(solver.Options{}), r)
	defer s.Close()

	err := s.EnsureLoaded("Numeric")
	var loadErr *verify.StructureLoadError
	require.ErrorAs(t, err, &loadErr)
	var unsupported *solver.UnsupportedError
	assert.ErrorAs(t, err, &unsupported)
}
