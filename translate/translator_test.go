package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/algebra/expr"
	"github.com/c360studio/algebra/solver"
	"github.com/c360studio/algebra/solver/solvertest"
)

func newTranslator() (*Translator, *solvertest.Fake) {
	fake := solvertest.New()
	return New(fake, NewRegistry()), fake
}

func TestTranslateLiteralsAndRefs(t *testing.T) {
	tr, fake := newTranslator()

	x, err := fake.Const("x", solver.SortElem)
	require.NoError(t, err)
	env := Env{"x": x}

	term, err := tr.Translate(expr.Op("+", expr.Var("x"), expr.Int(1)), env)
	require.NoError(t, err)
	assert.Equal(t, "(+ x 1)", term.String())
}

func TestTranslateUnboundRef(t *testing.T) {
	tr, _ := newTranslator()

	_, err := tr.Translate(expr.Var("ghost"), nil)
	var unbound *UnboundRefError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "ghost", unbound.Name)
}

func TestTranslateRuleDispatch(t *testing.T) {
	tr, _ := newTranslator()

	// Arithmetic ops are pre-registered rules, so no uninterpreted
	// declaration should happen.
	term, err := tr.Translate(
		expr.Op("*", expr.Int(3), expr.Op("+", expr.Int(2), expr.Int(2))), nil)
	require.NoError(t, err)
	assert.Equal(t, "(* 3 (+ 2 2))", term.String())
	assert.False(t, tr.Declared("*", 2))
	assert.False(t, tr.Declared("+", 2))
}

func TestTranslateUninterpretedFallback(t *testing.T) {
	tr, fake := newTranslator()

	e := expr.Forall([]expr.BoundVar{expr.Elem("x"), expr.Elem("y")},
		expr.Eq(expr.Op("•", expr.Var("x"), expr.Var("y")),
			expr.Op("•", expr.Var("y"), expr.Var("x"))))

	term, err := tr.Translate(e, nil)
	require.NoError(t, err)
	assert.Equal(t, "(forall (x y) (= (• x y) (• y x)))", term.String())

	// Both uses resolve to a single declaration.
	key := solver.OpKey{Name: "•", Arity: 2}
	assert.Equal(t, 1, fake.Declared[key])
	assert.True(t, tr.Declared("•", 2))

	// Re-translating is deterministic and declares nothing new.
	_, err = tr.Translate(e, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Declared[key])
}

func TestTranslateArityDistinguishes(t *testing.T) {
	tr, fake := newTranslator()

	_, err := tr.Operation("f", []solver.Term{solvertest.Term("a")})
	require.NoError(t, err)
	_, err = tr.Operation("f", []solver.Term{solvertest.Term("a"), solvertest.Term("b")})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Declared[solver.OpKey{Name: "f", Arity: 1}])
	assert.Equal(t, 1, fake.Declared[solver.OpKey{Name: "f", Arity: 2}])
}

func TestRegisterRuleAfterUninterpreted(t *testing.T) {
	tr, _ := newTranslator()

	_, err := tr.Operation("op", []solver.Term{solvertest.Term("a"), solvertest.Term("b")})
	require.NoError(t, err)

	err = tr.RegisterRule("op", 2, func(b solver.Backend, args []solver.Term) (solver.Term, error) {
		return b.Op(solver.OpAdd, args)
	})
	assert.Error(t, err)
}

func TestRegisterRuleDuplicate(t *testing.T) {
	tr, _ := newTranslator()

	err := tr.RegisterRule("+", 2, func(b solver.Backend, args []solver.Term) (solver.Term, error) {
		return b.Op(solver.OpAdd, args)
	})
	assert.Error(t, err, "the default registry already maps +/2")
}

func TestTranslateNotEqual(t *testing.T) {
	tr, _ := newTranslator()

	term, err := tr.Translate(expr.Ne(expr.Int(1), expr.Int(2)), nil)
	require.NoError(t, err)
	assert.Equal(t, "(not (= 1 2))", term.String())
}

func TestTranslateWhereGuard(t *testing.T) {
	tr, _ := newTranslator()

	body := expr.Eq(expr.Op("+", expr.Var("x"), expr.Int(0)), expr.Var("x"))
	guard := expr.Ge(expr.Var("x"), expr.Int(0))

	t.Run("forall becomes implication", func(t *testing.T) {
		term, err := tr.Translate(expr.ForallWhere(
			[]expr.BoundVar{expr.Elem("x")}, guard, body), nil)
		require.NoError(t, err)
		assert.Equal(t, "(forall (x) (=> (>= x 0) (= (+ x 0) x)))", term.String())
	})

	t.Run("exists becomes conjunction", func(t *testing.T) {
		q := expr.Quantifier{
			Kind:  expr.QuantExists,
			Vars:  []expr.BoundVar{expr.Elem("x")},
			Where: guard,
			Body:  body,
		}
		term, err := tr.Translate(q, nil)
		require.NoError(t, err)
		assert.Equal(t, "(exists (x) (and (>= x 0) (= (+ x 0) x)))", term.String())
	})
}

func TestTranslateLogicArity(t *testing.T) {
	tr, _ := newTranslator()

	bad := expr.Logic{Op: expr.LogicImplies, Args: []expr.Expr{expr.Bool(true)}}
	_, err := tr.Translate(bad, nil)
	var arity *solver.ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 2, arity.Want)
	assert.Equal(t, 1, arity.Got)
}

func TestReset(t *testing.T) {
	tr, fake := newTranslator()

	_, err := tr.Operation("g", []solver.Term{solvertest.Term("a")})
	require.NoError(t, err)
	require.True(t, tr.Declared("g", 1))

	tr.Reset()
	assert.False(t, tr.Declared("g", 1))

	// After reset the symbol is declared again on next use.
	_, err = tr.Operation("g", []solver.Term{solvertest.Term("a")})
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Declared[solver.OpKey{Name: "g", Arity: 1}])
}

func TestSortOf(t *testing.T) {
	assert.Equal(t, solver.SortBool, SortOf("Bool"))
	assert.Equal(t, solver.SortElem, SortOf("M"))
	assert.Equal(t, solver.SortElem, SortOf(""))
}
