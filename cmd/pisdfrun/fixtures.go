// File: fixtures.go
// Role: the small set of self-contained graphs this CLI can run,
// mirroring spec.md §8's S1/S2/S4 scenarios. The full S1-S6 matrix is
// exercised by the package test suites instead of by this CLI.
package main

import (
	"fmt"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/runner"
)

// fixture is a ready-to-run graph plus the Normal/Config actor kernels
// it needs; structural actors synthesized by transformation (Fork,
// Join, Init, End, ...) get their behavior from runner's builtins.
type fixture struct {
	Graph   *pisdf.Graph
	Kernels map[string]runner.KernelFunc
}

func constRate(text string) *expr.Expression {
	e, err := expr.Parse(text, expr.EnvFunc(func(string) (int64, bool, error) {
		return 0, false, expr.ErrUnknownSymbol
	}))
	if err != nil {
		panic(fmt.Sprintf("pisdfrun: invalid fixture rate %q: %v", text, err))
	}
	return e
}

// cloneName reproduces srdag's single-rate clone naming
// ("<graph>-<vertex>_<instance>") so a fixture can pre-register kernels
// for every firing before transformation runs.
func cloneName(graphName, vertexName string, instance int) string {
	return fmt.Sprintf("%s-%s_%d", graphName, vertexName, instance)
}

func countingKernel(counter *int) runner.KernelFunc {
	return func(_ []int64, _ []int64, _ [][]byte, outputs [][]byte) error {
		*counter++
		for _, out := range outputs {
			for i := range out {
				out[i] = byte(*counter)
			}
		}
		return nil
	}
}

func passthroughKernel(_ []int64, _ []int64, inputs [][]byte, outputs [][]byte) error {
	for i, out := range outputs {
		if i < len(inputs) {
			copy(out, inputs[i])
		}
	}
	return nil
}

// buildFlat is spec.md §8's S1: V0(out=4) -> V1(in=1), so RV(V1)=4 and
// the transform links V0's single firing to the four V1 firings through
// one Fork4.
func buildFlat() *fixture {
	g := pisdf.NewGraph("flat")
	v0, _ := pisdf.NewVertex(g, "v0", pisdf.Normal)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)
	_, _ = pisdf.NewEdge(g, v0, 0, constRate("4"), v1, 0, constRate("1"))

	var fired int
	kernels := map[string]runner.KernelFunc{
		cloneName("flat", "v0", 0): countingKernel(&fired),
	}
	for i := 0; i < 4; i++ {
		kernels[cloneName("flat", "v1", i)] = passthroughKernel
	}
	return &fixture{Graph: g, Kernels: kernels}
}

// buildDelay is spec.md §8's S2: V0 -> V1 at rate 1/1 with a local delay
// of 2, producing an Init/End split around the edge.
func buildDelay() *fixture {
	g := pisdf.NewGraph("delay")
	v0, _ := pisdf.NewVertex(g, "v0", pisdf.Normal)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)
	e, _ := pisdf.NewEdge(g, v0, 0, constRate("1"), v1, 0, constRate("1"))
	d := pisdf.NewLocalDelay(e, constRate("2"))
	d.Level = 2

	kernels := map[string]runner.KernelFunc{
		cloneName("delay", "v0", 0): passthroughKernel,
		cloneName("delay", "v1", 0): passthroughKernel,
	}
	return &fixture{Graph: g, Kernels: kernels}
}

// buildHierarchical is spec.md §8's S4: a Graph_ vertex nests V2 between
// V0 and V1, each side running at rate 1.
func buildHierarchical() *fixture {
	g := pisdf.NewGraph("hier")
	v0, _ := pisdf.NewVertex(g, "v0", pisdf.Normal)
	sub, _ := pisdf.NewVertex(g, "sub", pisdf.Graph_)
	v1, _ := pisdf.NewVertex(g, "v1", pisdf.Normal)

	subg, err := pisdf.NewSubgraph(g, sub, "sub")
	if err != nil {
		panic(err)
	}
	inIf, _ := pisdf.NewVertex(subg, "in", pisdf.InputInterface)
	v2, _ := pisdf.NewVertex(subg, "v2", pisdf.Normal)
	outIf, _ := pisdf.NewVertex(subg, "out", pisdf.OutputInterface)
	_, _ = pisdf.NewEdge(subg, inIf, 0, constRate("1"), v2, 0, constRate("1"))
	_, _ = pisdf.NewEdge(subg, v2, 0, constRate("1"), outIf, 0, constRate("1"))

	_, _ = pisdf.NewEdge(g, v0, 0, constRate("1"), sub, 0, constRate("1"))
	_, _ = pisdf.NewEdge(g, sub, 0, constRate("1"), v1, 0, constRate("1"))

	kernels := map[string]runner.KernelFunc{
		cloneName("hier", "v0", 0):       passthroughKernel,
		cloneName("hier", "v1", 0):       passthroughKernel,
		cloneName("hier-sub_0", "v2", 0): passthroughKernel,
	}
	return &fixture{Graph: g, Kernels: kernels}
}

var fixtures = map[string]func() *fixture{
	"flat":         buildFlat,
	"delay":        buildDelay,
	"hierarchical": buildHierarchical,
}
