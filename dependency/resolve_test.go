package dependency_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/dependency"
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

func rate(t *testing.T, text string) *expr.Expression {
	t.Helper()
	e, err := expr.Parse(text, expr.EnvFunc(func(string) (int64, bool, error) {
		return 0, false, expr.ErrUnknownSymbol
	}))
	require.NoError(t, err)
	return e
}

func noParams() expr.Environment {
	return expr.EnvFunc(func(string) (int64, bool, error) { return 0, false, expr.ErrUnknownSymbol })
}

func TestResolve_SameRateOneToOne(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	_, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)

	dep, err := dependency.Resolve(b, 3, 0, 0, noParams())
	require.NoError(t, err)
	require.Len(t, dep.Ranges, 1)
	require.Equal(t, a, dep.Ranges[0].Vertex)
	require.Equal(t, int64(3), dep.Ranges[0].Low)
	require.Equal(t, int64(3), dep.Ranges[0].High)
}

func TestResolve_FanInSpansMultipleProducerFirings(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	_, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "6"))
	require.NoError(t, err)

	dep, err := dependency.Resolve(b, 0, 0, 0, noParams())
	require.NoError(t, err)
	require.Len(t, dep.Ranges, 1)
	require.Equal(t, int64(0), dep.Ranges[0].Low)
	require.Equal(t, int64(2), dep.Ranges[0].High)
}

func TestResolve_DelayInitSatisfiesEarlyFirings(t *testing.T) {
	g := pisdf.NewGraph("g")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	e, err := pisdf.NewEdge(g, a, 0, rate(t, "2"), b, 0, rate(t, "2"))
	require.NoError(t, err)
	e.Delay = pisdf.NewPersistentDelay(e, rate(t, "4"))
	e.Delay.Level = 4

	dep, err := dependency.Resolve(b, 0, 0, 0, noParams())
	require.NoError(t, err)
	require.Equal(t, int64(2), dep.InitTokens)
	require.Empty(t, dep.Ranges)

	dep, err = dependency.Resolve(b, 1, 0, 0, noParams())
	require.NoError(t, err)
	require.Equal(t, int64(2), dep.InitTokens)
	require.Empty(t, dep.Ranges)

	dep, err = dependency.Resolve(b, 2, 0, 0, noParams())
	require.NoError(t, err)
	require.Equal(t, int64(0), dep.InitTokens)
	require.Len(t, dep.Ranges, 1)
	require.Equal(t, int64(0), dep.Ranges[0].Low)
	require.Equal(t, int64(0), dep.Ranges[0].High)
}

func TestResolve_UnconnectedPortRejected(t *testing.T) {
	g := pisdf.NewGraph("g")
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	b.In = []*pisdf.Edge{nil}
	_, err := dependency.Resolve(b, 0, 0, 0, noParams())
	require.ErrorIs(t, err, dependency.ErrNoSuchPort)
}

func TestResolve_ExternInputIsUnresolved(t *testing.T) {
	g := pisdf.NewGraph("g")
	ext, _ := pisdf.NewVertex(g, "ext", pisdf.ExternInputInterface)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	_, err := pisdf.NewEdge(g, ext, 0, rate(t, "1"), b, 0, rate(t, "1"))
	require.NoError(t, err)

	dep, err := dependency.Resolve(b, 0, 0, 0, noParams())
	require.NoError(t, err)
	require.Len(t, dep.Ranges, 1)
	require.True(t, dep.Ranges[0].Unresolved)
}

func TestResolve_AscendsThroughInputInterface(t *testing.T) {
	top := pisdf.NewGraph("top")
	producer, _ := pisdf.NewVertex(top, "producer", pisdf.Normal)
	container, _ := pisdf.NewVertex(top, "sub0", pisdf.Graph_)
	_, err := pisdf.NewEdge(top, producer, 0, rate(t, "2"), container, 0, rate(t, "2"))
	require.NoError(t, err)

	sub, err := pisdf.NewSubgraph(top, container, "sub")
	require.NoError(t, err)
	iface, _ := pisdf.NewVertex(sub, "in0", pisdf.InputInterface)
	consumer, _ := pisdf.NewVertex(sub, "consumer", pisdf.Normal)
	_, err = pisdf.NewEdge(sub, iface, 0, rate(t, "2"), consumer, 0, rate(t, "2"))
	require.NoError(t, err)

	dep, err := dependency.Resolve(consumer, 0, 0, 0, noParams())
	require.NoError(t, err)
	require.Len(t, dep.Ranges, 1)
	require.Equal(t, producer, dep.Ranges[0].Vertex)
	require.Equal(t, int64(0), dep.Ranges[0].Low)
}
