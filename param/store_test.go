package param_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/param"
)

func TestStaticValue(t *testing.T) {
	s := param.NewStore()
	p, err := s.CreateStatic(1, "n", 42)
	require.NoError(t, err)
	v, err := s.Value(p)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestDuplicateName(t *testing.T) {
	s := param.NewStore()
	_, err := s.CreateStatic(1, "n", 1)
	require.NoError(t, err)
	_, err = s.CreateDynamic(1, "n")
	require.ErrorIs(t, err, param.ErrNameDuplicate)
}

func TestDynamicUndefinedUntilSet(t *testing.T) {
	s := param.NewStore()
	p, err := s.CreateDynamic(1, "width")
	require.NoError(t, err)
	_, err = s.Value(p)
	require.ErrorIs(t, err, param.ErrValueUndefined)

	require.NoError(t, s.SetValue(p, 7))
	v, err := s.Value(p)
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestSetValueRejectsNonDynamic(t *testing.T) {
	s := param.NewStore()
	p, _ := s.CreateStatic(1, "n", 1)
	err := s.SetValue(p, 2)
	require.ErrorIs(t, err, param.ErrNotDynamic)
}

func TestInheritedDelegates(t *testing.T) {
	s := param.NewStore()
	parent, _ := s.CreateStatic(1, "n", 9)
	child, err := s.CreateInherited(2, "n", parent)
	require.NoError(t, err)
	v, err := s.Value(child)
	require.NoError(t, err)
	require.Equal(t, int64(9), v)
}

func TestDerivedEvaluatesExpression(t *testing.T) {
	s := param.NewStore()
	n, _ := s.CreateStatic(1, "n", 3)
	d, err := s.CreateDerived(1, "twice_n", "n*2", []*param.Parameter{n})
	require.NoError(t, err)
	v, err := s.Value(d)
	require.NoError(t, err)
	require.Equal(t, int64(6), v)
}

func TestEscalatedLookup(t *testing.T) {
	s := param.NewStore()
	_, err := s.CreateStatic(1, "n", 5)
	require.NoError(t, err)
	s.SetParent(2, 1)
	p, err := s.Lookup(2, "n")
	require.NoError(t, err)
	v, err := s.Value(p)
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
}

func TestLookupNotFound(t *testing.T) {
	s := param.NewStore()
	_, err := s.Lookup(1, "missing")
	require.ErrorIs(t, err, param.ErrNotFound)
}

func TestIsResolved(t *testing.T) {
	s := param.NewStore()
	p, _ := s.CreateDynamic(1, "width")
	require.False(t, s.IsResolved(1))
	require.NoError(t, s.SetValue(p, 3))
	require.True(t, s.IsResolved(1))
}

func TestIsResolved_DerivedOverDynamic(t *testing.T) {
	s := param.NewStore()
	w, _ := s.CreateDynamic(1, "width")
	require.NoError(t, s.SetValue(w, 1)) // must resolve before CreateDerived parses it
	_, err := s.CreateDerived(1, "double", "width*2", []*param.Parameter{w})
	require.NoError(t, err)
	require.True(t, s.IsResolved(1))
}

func TestEnvironment_ResolvesViaEscalation(t *testing.T) {
	s := param.NewStore()
	_, err := s.CreateStatic(1, "n", 11)
	require.NoError(t, err)
	s.SetParent(2, 1)
	env := s.Environment(2)
	v, dyn, err := env.Lookup("n")
	require.NoError(t, err)
	require.False(t, dyn)
	require.Equal(t, int64(11), v)
}
