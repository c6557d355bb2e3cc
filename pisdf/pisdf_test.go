package pisdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

func constExpr(t *testing.T, text string) *expr.Expression {
	t.Helper()
	e, err := expr.Parse(text, expr.EnvFunc(func(string) (int64, bool, error) {
		return 0, false, expr.ErrUnknownSymbol
	}))
	require.NoError(t, err)
	return e
}

func TestNewVertex_PortPreallocation(t *testing.T) {
	g := pisdf.NewGraph("top")
	fork, err := pisdf.NewVertex(g, "fork0", pisdf.Fork)
	require.NoError(t, err)
	require.Len(t, fork.In, 1)
	require.Empty(t, fork.Out)

	end, err := pisdf.NewVertex(g, "end0", pisdf.End)
	require.NoError(t, err)
	require.Len(t, end.In, 1)
	require.Len(t, end.Out, 0)
}

func TestNewVertex_DuplicateNameRejected(t *testing.T) {
	g := pisdf.NewGraph("top")
	_, err := pisdf.NewVertex(g, "a", pisdf.Normal)
	require.NoError(t, err)
	_, err = pisdf.NewVertex(g, "a", pisdf.Normal)
	require.ErrorIs(t, err, pisdf.ErrVertexNameDuplicate)
}

func TestNewVertex_UnregisteredSubtypeRejected(t *testing.T) {
	g := pisdf.NewGraph("top")
	_, err := pisdf.NewVertex(g, "x", pisdf.Subtype(255))
	require.ErrorIs(t, err, pisdf.ErrSubtypeMismatch)
}

func TestNewEdge_ConnectsBothEndpoints(t *testing.T) {
	g := pisdf.NewGraph("top")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	rate := constExpr(t, "4")
	e, err := pisdf.NewEdge(g, a, 0, rate, b, 0, rate)
	require.NoError(t, err)
	require.Same(t, e, a.Out[0])
	require.Same(t, e, b.In[0])
	require.Len(t, g.Edges, 1)
}

func TestNewEdge_DuplicatePortRejected(t *testing.T) {
	g := pisdf.NewGraph("top")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	c, _ := pisdf.NewVertex(g, "c", pisdf.Normal)
	rate := constExpr(t, "1")
	_, err := pisdf.NewEdge(g, a, 0, rate, b, 0, rate)
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, c, 0, rate, b, 0, rate)
	require.ErrorIs(t, err, pisdf.ErrDuplicatePortConnection)
}

func TestNewEdge_ForkMaxInEnforced(t *testing.T) {
	g := pisdf.NewGraph("top")
	fork, _ := pisdf.NewVertex(g, "fork0", pisdf.Fork)
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	rate := constExpr(t, "1")
	_, err := pisdf.NewEdge(g, a, 0, rate, fork, 0, rate)
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, b, 0, rate, fork, 1, rate)
	require.ErrorIs(t, err, pisdf.ErrPortOutOfRange)
}

func TestDisconnect_IsIdempotent(t *testing.T) {
	g := pisdf.NewGraph("top")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	rate := constExpr(t, "1")
	e, _ := pisdf.NewEdge(g, a, 0, rate, b, 0, rate)
	pisdf.Disconnect(g, e)
	require.Empty(t, g.Edges)
	require.NotPanics(t, func() { pisdf.Disconnect(g, e) })
}

func TestNewSubgraph_EscalatesParameters(t *testing.T) {
	top := pisdf.NewGraph("top")
	_, err := top.Params.CreateStatic(top.ID, "n", 8)
	require.NoError(t, err)

	container, err := pisdf.NewVertex(top, "sub0", pisdf.Graph_)
	require.NoError(t, err)
	sub, err := pisdf.NewSubgraph(top, container, "sub")
	require.NoError(t, err)

	p, err := sub.Params.Lookup(sub.ID, "n")
	require.NoError(t, err)
	v, err := sub.Params.Value(p)
	require.NoError(t, err)
	require.Equal(t, int64(8), v)
}

func TestNewSubgraph_RejectsWrongSubtype(t *testing.T) {
	top := pisdf.NewGraph("top")
	normal, _ := pisdf.NewVertex(top, "n0", pisdf.Normal)
	_, err := pisdf.NewSubgraph(top, normal, "sub")
	require.ErrorIs(t, err, pisdf.ErrSubtypeMismatch)
}

func TestConvert_GraphRoundTrip(t *testing.T) {
	top := pisdf.NewGraph("top")
	container, _ := pisdf.NewVertex(top, "sub0", pisdf.Graph_)
	sub, err := pisdf.NewSubgraph(top, container, "sub")
	require.NoError(t, err)

	got, ok := pisdf.Convert[*pisdf.Graph](container)
	require.True(t, ok)
	require.Same(t, sub, got)

	_, ok = pisdf.Convert[*pisdf.Graph](&pisdf.Vertex{Subtype: pisdf.Normal})
	require.False(t, ok)
}

func TestConnectedComponents_SplitsDisjointSubgraphs(t *testing.T) {
	g := pisdf.NewGraph("top")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	c, _ := pisdf.NewVertex(g, "c", pisdf.Normal)
	_, _ = pisdf.NewVertex(g, "d", pisdf.Normal)
	rate := constExpr(t, "1")
	_, err := pisdf.NewEdge(g, a, 0, rate, b, 0, rate)
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, b, 1, rate, c, 1, rate)
	require.NoError(t, err)

	comps := g.ConnectedComponents()
	require.Len(t, comps, 2)
}

func TestClone_PreservesStructureAndSetsRef(t *testing.T) {
	g := pisdf.NewGraph("proto")
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	b, _ := pisdf.NewVertex(g, "b", pisdf.Normal)
	rate := constExpr(t, "2")
	_, err := pisdf.NewEdge(g, a, 0, rate, b, 0, rate)
	require.NoError(t, err)

	clone, err := g.Clone("_inst", 3)
	require.NoError(t, err)
	require.Len(t, clone.Vertices, 2)
	require.Len(t, clone.Edges, 1)
	for _, v := range clone.Vertices {
		require.NotNil(t, v.Ref)
		require.Equal(t, 3, v.Instance)
	}
}

func TestStats_CountsDelaysAndConfigActors(t *testing.T) {
	g := pisdf.NewGraph("top")
	cfg, _ := pisdf.NewVertex(g, "cfg", pisdf.Config)
	a, _ := pisdf.NewVertex(g, "a", pisdf.Normal)
	rate := constExpr(t, "1")
	_, err := pisdf.NewEdge(g, cfg, 0, rate, a, 0, rate)
	require.NoError(t, err)

	require.Equal(t, 1, g.Stats().ConfigActors)
	require.Equal(t, 2, g.Stats().VertexCount)
}
