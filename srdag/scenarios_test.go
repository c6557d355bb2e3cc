package srdag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiderflow/pisdf/brv"
	"github.com/spiderflow/pisdf/optim"
	"github.com/spiderflow/pisdf/param"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/srdag"
)

// TestScenario_FlatStatic is spec.md §8's S1: a fan-out that the
// transform expresses as a single Fork4 from the one V0 firing, with no
// Join, and that the optimizer leaves in that shape.
func TestScenario_FlatStatic(t *testing.T) {
	g := pisdf.NewGraph("s1")
	v0, _ := pisdf.NewVertex(g, "v0", pisdf.Normal)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)
	_, err := pisdf.NewEdge(g, v0, 0, rate(t, "4"), v1, 0, rate(t, "1"))
	require.NoError(t, err)

	require.NoError(t, brv.Solve(g, g.Environment()))
	require.EqualValues(t, 1, v0.RV)
	require.EqualValues(t, 4, v1.RV)

	sr, err := srdag.Transform(g, g.Environment())
	require.NoError(t, err)
	_, err = optim.Optimize(sr, g.Environment())
	require.NoError(t, err)

	var fork *pisdf.Vertex
	var forkCount, joinCount int
	for _, v := range sr.Vertices {
		switch v.Subtype {
		case pisdf.Fork:
			forkCount++
			fork = v
		case pisdf.Join:
			joinCount++
		}
	}
	require.Equal(t, 1, forkCount)
	require.Equal(t, 0, joinCount)
	require.Len(t, fork.Out, 4)
	require.Same(t, v0, fork.In[0].Source.Ref)
}

// TestScenario_Delay is spec.md §8's S2: a sufficient local delay splices
// one Init and one End around the edge. The Fork after Init and the Join
// before End that the transform inserts stay in the optimized graph:
// JoinEnd only bypasses a Join with a single input.
func TestScenario_Delay(t *testing.T) {
	g := pisdf.NewGraph("s2")
	v0, _ := pisdf.NewVertex(g, "v0", pisdf.Normal)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)
	e, err := pisdf.NewEdge(g, v0, 0, rate(t, "1"), v1, 0, rate(t, "1"))
	require.NoError(t, err)
	d := pisdf.NewLocalDelay(e, rate(t, "2"))
	d.Level = 2

	require.NoError(t, brv.Solve(g, g.Environment()))
	sr, err := srdag.Transform(g, g.Environment())
	require.NoError(t, err)
	_, err = optim.Optimize(sr, g.Environment())
	require.NoError(t, err)

	var initCount, endCount int
	for _, v := range sr.Vertices {
		switch v.Subtype {
		case pisdf.Init:
			initCount++
		case pisdf.End:
			endCount++
		}
	}
	require.Equal(t, 1, initCount, "a sufficient local delay on a balanced single-firing edge splices exactly one Init")
	require.Equal(t, 1, endCount, "and exactly one End")
}

// TestScenario_SelfLoopInsufficientDelay is spec.md §8's S3: a self-loop
// whose delay level cannot cover the consumer's per-firing demand must
// fail with ErrInsufficientDelay rather than silently underflow.
func TestScenario_SelfLoopInsufficientDelay(t *testing.T) {
	g := pisdf.NewGraph("s3")
	v, _ := pisdf.NewVertex(g, "v", pisdf.Normal)
	e, err := pisdf.NewEdge(g, v, 0, rate(t, "2"), v, 0, rate(t, "2"))
	require.NoError(t, err)
	d := pisdf.NewLocalDelay(e, rate(t, "1"))
	d.Level = 1

	require.NoError(t, brv.Solve(g, g.Environment()))
	require.EqualValues(t, 1, v.RV)

	_, err = srdag.Transform(g, g.Environment())
	require.ErrorIs(t, err, srdag.ErrInsufficientDelay)
}

// TestScenario_HierarchicalStatic is spec.md §8's S4: a Graph_ vertex
// hosting one internal actor at rate 1 fully disappears after
// transformation, leaving only the three real actor clones.
func TestScenario_HierarchicalStatic(t *testing.T) {
	top := pisdf.NewGraph("s4")
	v0, _ := pisdf.NewVertex(top, "v0", pisdf.Normal)
	sub, _ := pisdf.NewVertex(top, "sub", pisdf.Graph_)
	v1, _ := pisdf.NewVertex(top, "v1", pisdf.Normal)
	_, err := pisdf.NewEdge(top, v0, 0, rate(t, "1"), sub, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(top, sub, 0, rate(t, "1"), v1, 0, rate(t, "1"))
	require.NoError(t, err)

	subg, err := pisdf.NewSubgraph(top, sub, "sub")
	require.NoError(t, err)
	in0, _ := pisdf.NewVertex(subg, "in0", pisdf.InputInterface)
	v2, _ := pisdf.NewVertex(subg, "v2", pisdf.Normal)
	out0, _ := pisdf.NewVertex(subg, "out0", pisdf.OutputInterface)
	_, err = pisdf.NewEdge(subg, in0, 0, rate(t, "1"), v2, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(subg, v2, 0, rate(t, "1"), out0, 0, rate(t, "1"))
	require.NoError(t, err)

	require.NoError(t, brv.Solve(top, top.Environment()))
	sr, err := srdag.Transform(top, top.Environment())
	require.NoError(t, err)
	_, err = optim.Optimize(sr, top.Environment())
	require.NoError(t, err)

	require.Len(t, sr.Vertices, 3)
	require.Len(t, sr.Edges, 2)

	var refs []*pisdf.Vertex
	for _, v := range sr.Vertices {
		refs = append(refs, v.Ref)
	}
	require.ElementsMatch(t, []*pisdf.Vertex{v0, v2, v1}, refs)
}

// TestScenario_DynamicSubgraph is spec.md §8's S5: brv.Solve refuses to
// run while a Config actor's output parameter is unresolved, and
// succeeds once the host has published its value — the two-pass
// Ginit/Grun split collapses to two ordinary Solve+Transform calls (see
// DESIGN.md's srdag Open decision).
func TestScenario_DynamicSubgraph(t *testing.T) {
	g := pisdf.NewGraph("s5")
	cfg, _ := pisdf.NewVertex(g, "cfg", pisdf.Config)
	v2, _ := pisdf.NewVertex(g, "v2", pisdf.Normal)

	width, err := g.Params.CreateDynamic(g.ID, "width")
	require.NoError(t, err)
	cfg.OutParams = []*param.Parameter{width}
	v2.InParams = []*param.Parameter{width}

	_, err = pisdf.NewEdge(g, cfg, 0, rate(t, "1"), v2, 0, rate(t, "width"))
	require.NoError(t, err)

	err = brv.Solve(g, g.Environment())
	require.ErrorIs(t, err, brv.ErrRateUnresolved)

	require.NoError(t, g.Params.SetValue(width, 3))
	require.NoError(t, brv.Solve(g, g.Environment()))
	require.EqualValues(t, 3, v2.RV)

	sr, err := srdag.Transform(g, g.Environment())
	require.NoError(t, err)

	var v2Clones int
	for _, v := range sr.Vertices {
		if v.Ref == v2 {
			v2Clones++
		}
	}
	require.Equal(t, 3, v2Clones)
}

// TestScenario_ForkForkCollapse is spec.md §8's S6: a chain of nested
// forks (fork -> fork_0 -> {fork_1, fork_2}) collapses into a single
// Fork. The fixture mirrors the original forkForkTest2 topology, whose
// merge order is the source of the documented final port order
// v3,v4,v2,v5,v6,v1 — an exact, order-sensitive check, since the whole
// point of the ForkFork contract is that downstream byte offsets track
// port position.
func TestScenario_ForkForkCollapse(t *testing.T) {
	g := pisdf.NewGraph("s6")
	src, _ := pisdf.NewVertex(g, "v", pisdf.Normal)
	fork, _ := pisdf.NewVertex(g, "fork", pisdf.Fork)
	fork0, _ := pisdf.NewVertex(g, "fork_0", pisdf.Fork)
	fork1, _ := pisdf.NewVertex(g, "fork_1", pisdf.Fork)
	fork2, _ := pisdf.NewVertex(g, "fork_2", pisdf.Fork)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)
	v2, _ := pisdf.NewVertex(g, "v2", pisdf.Normal)
	v3, _ := pisdf.NewVertex(g, "v3", pisdf.Normal)
	v4, _ := pisdf.NewVertex(g, "v4", pisdf.Normal)
	v5, _ := pisdf.NewVertex(g, "v5", pisdf.Normal)
	v6, _ := pisdf.NewVertex(g, "v6", pisdf.Normal)

	_, err := pisdf.NewEdge(g, src, 0, rate(t, "6"), fork, 0, rate(t, "6"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork, 0, rate(t, "5"), fork0, 0, rate(t, "5"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork, 1, rate(t, "1"), v1, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork0, 0, rate(t, "2"), fork1, 0, rate(t, "2"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork0, 1, rate(t, "1"), v2, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork0, 2, rate(t, "2"), fork2, 0, rate(t, "2"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork1, 0, rate(t, "1"), v3, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork1, 1, rate(t, "1"), v4, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork2, 0, rate(t, "1"), v5, 0, rate(t, "1"))
	require.NoError(t, err)
	_, err = pisdf.NewEdge(g, fork2, 1, rate(t, "1"), v6, 0, rate(t, "1"))
	require.NoError(t, err)

	_, err = optim.Optimize(g, noParams())
	require.NoError(t, err)

	var forkCount int
	var merged *pisdf.Vertex
	for _, v := range g.Vertices {
		if v.Subtype == pisdf.Fork {
			forkCount++
			merged = v
		}
	}
	require.Equal(t, 1, forkCount)

	var reached []*pisdf.Vertex
	for _, e := range merged.Out {
		require.NotNil(t, e, "merged fork must have no port gaps")
		reached = append(reached, e.Sink)
	}
	require.Equal(t, []*pisdf.Vertex{v3, v4, v2, v5, v6, v1}, reached)
}
