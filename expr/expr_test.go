package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/expr"
)

func env(values map[string]int64, dynamic map[string]bool) expr.Environment {
	return expr.EnvFunc(func(name string) (int64, bool, error) {
		v, ok := values[name]
		if !ok {
			return 0, false, expr.ErrUnknownSymbol
		}
		return v, dynamic[name], nil
	})
}

func TestParse_Arithmetic(t *testing.T) {
	e, err := expr.Parse("2+3*4", env(nil, nil))
	require.NoError(t, err)
	v, err := e.Eval(env(nil, nil))
	require.NoError(t, err)
	require.Equal(t, float64(14), v)
}

func TestParse_ImplicitMultiplication(t *testing.T) {
	e, err := expr.Parse("4n", env(map[string]int64{"n": 3}, nil))
	require.NoError(t, err)
	v, err := e.EvalInt(env(map[string]int64{"n": 3}, nil))
	require.NoError(t, err)
	require.Equal(t, int64(12), v)
}

func TestParse_UnaryRewriteInParens(t *testing.T) {
	e, err := expr.Parse("3*(-2)", env(nil, nil))
	require.NoError(t, err)
	v, err := e.Eval(env(nil, nil))
	require.NoError(t, err)
	require.Equal(t, float64(-6), v)

	e2, err := expr.Parse("3*(+2)", env(nil, nil))
	require.NoError(t, err)
	v2, err := e2.Eval(env(nil, nil))
	require.NoError(t, err)
	require.Equal(t, float64(6), v2)
}

func TestParse_LeadingMinusRejected(t *testing.T) {
	_, err := expr.Parse("-2+3", env(nil, nil))
	require.ErrorIs(t, err, expr.ErrIllFormed)
}

func TestParse_UnbalancedParens(t *testing.T) {
	_, err := expr.Parse("(2+3", env(nil, nil))
	require.ErrorIs(t, err, expr.ErrIllFormed)
}

func TestParse_AdjacentRestrictedOperators(t *testing.T) {
	_, err := expr.Parse("2++3", env(nil, nil))
	require.ErrorIs(t, err, expr.ErrIllFormed)
}

func TestParse_RestrictedBeforeCloseParen(t *testing.T) {
	_, err := expr.Parse("(2+3-)", env(nil, nil))
	require.ErrorIs(t, err, expr.ErrIllFormed)
}

func TestEval_DivisionByZeroIsInf(t *testing.T) {
	e, err := expr.Parse("1/0", env(nil, nil))
	require.NoError(t, err)
	v, err := e.Eval(env(nil, nil))
	require.NoError(t, err)
	require.True(t, v > 1e300)
}

func TestEvalInt_ClampsInfinity(t *testing.T) {
	e, err := expr.Parse("1/0", env(nil, nil))
	require.NoError(t, err)
	v, err := e.EvalInt(env(nil, nil))
	require.NoError(t, err)
	require.Equal(t, int64(1<<63-1), v)
}

func TestFactorial_RoundsToNearestNonNegativeInt(t *testing.T) {
	e, err := expr.Parse("4.6!", env(nil, nil))
	require.NoError(t, err)
	v, err := e.Eval(env(nil, nil))
	require.NoError(t, err)
	require.Equal(t, float64(120), v) // round(4.6)=5, 5!=120
}

func TestParse_TernaryAndFunctions(t *testing.T) {
	e, err := expr.Parse("if(n>2,min(n,10),max(n,10))", env(map[string]int64{"n": 5}, nil))
	require.NoError(t, err)
	v, err := e.EvalInt(env(map[string]int64{"n": 5}, nil))
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestParse_UnknownSymbolAtEval(t *testing.T) {
	e, err := expr.Parse("width*2", env(map[string]int64{"width": 4}, nil))
	require.NoError(t, err)
	_, err = e.Eval(env(nil, nil))
	require.ErrorIs(t, err, expr.ErrUnknownSymbol)
}

func TestIsDynamic(t *testing.T) {
	e, err := expr.Parse("width*2", env(map[string]int64{"width": 4}, map[string]bool{"width": true}))
	require.NoError(t, err)
	require.True(t, e.IsDynamic())

	e2, err := expr.Parse("4*2", env(nil, nil))
	require.NoError(t, err)
	require.False(t, e2.IsDynamic())
}
