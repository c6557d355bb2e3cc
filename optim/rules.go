// File: rules.go
// Role: the individual peephole rewrite rules.
package optim

import (
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

func rateOf(e *expr.Expression, env expr.Environment) (int64, error) {
	v, err := e.EvalInt(env)
	if err != nil {
		return 0, ErrRateUnresolved
	}
	return v, nil
}

// bypass removes v, reconnecting v.In[0]'s source directly to v.Out[0]'s
// sink. Both rates must already be known equal by the caller.
func bypass(g *pisdf.Graph, v *pisdf.Vertex) error {
	in, out := v.In[0], v.Out[0]
	srcV, srcPort, srcRate := in.Source, in.SourcePort, in.SourceRate
	dstV, dstPort := out.Sink, out.SinkPort
	dstRate := out.SinkRate
	pisdf.Disconnect(g, in)
	pisdf.Disconnect(g, out)
	if err := pisdf.RemoveVertex(g, v); err != nil {
		return err
	}
	_, err := pisdf.NewEdge(g, srcV, srcPort, srcRate, dstV, dstPort, dstRate)
	return err
}

// unitaryRate bypasses every Fork/Join/Duplicate/Repeat vertex with
// exactly one connected input and one connected output at equal rates:
// spec.md §4.7 UnitaryRate.
func unitaryRate(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		switch v.Subtype {
		case pisdf.Fork, pisdf.Join, pisdf.Duplicate, pisdf.Repeat:
		default:
			continue
		}
		if countConnected(v.In) != 1 || countConnected(v.Out) != 1 {
			continue
		}
		inRate, err := rateOf(v.In[0].SinkRate, env)
		if err != nil {
			return changed, err
		}
		outRate, err := rateOf(v.Out[0].SourceRate, env)
		if err != nil {
			return changed, err
		}
		if inRate != outRate {
			continue
		}
		if err := bypass(g, v); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// mergeSplitIntoParent handles ForkFork and DuplicateDuplicate: parent
// splits into several outputs, one of which solely feeds child (a
// same-kind split actor with no other input). The merged port layout is
// the concatenation of parent's ports before the merge point, child's
// ports in child's own order, and parent's remaining ports after the
// merge point shifted up to stay contiguous — so a consumer reading
// parent's outputs by port index never sees a gap or a reordered byte
// range. child is removed once its outputs have moved onto parent.
func mergeSplitIntoParent(g *pisdf.Graph, parent, child *pisdf.Vertex, parentOutPort int) error {
	bridgeEdge := parent.Out[parentOutPort]
	childOuts := snapshotEdges(child.Out)
	tailEdges := snapshotEdges(parent.Out[parentOutPort+1:])

	pisdf.Disconnect(g, bridgeEdge)
	type rewire struct {
		sourceRate *expr.Expression
		sink       *pisdf.Vertex
		sinkPort   int
		sinkRate   *expr.Expression
	}
	rewires := make([]rewire, 0, len(childOuts)+len(tailEdges))
	for _, e := range childOuts {
		rewires = append(rewires, rewire{e.SourceRate, e.Sink, e.SinkPort, e.SinkRate})
		pisdf.Disconnect(g, e)
	}
	for _, e := range tailEdges {
		rewires = append(rewires, rewire{e.SourceRate, e.Sink, e.SinkPort, e.SinkRate})
		pisdf.Disconnect(g, e)
	}
	for i, r := range rewires {
		if _, err := pisdf.NewEdge(g, parent, parentOutPort+i, r.sourceRate, r.sink, r.sinkPort, r.sinkRate); err != nil {
			return err
		}
	}
	return pisdf.RemoveVertex(g, child)
}

// mergeJoinIntoChild handles JoinJoin: a parent Join's single output
// feeds one input port of a child Join. The merged port layout is the
// concatenation of child's ports before the merge point, parent's ports
// in parent's own order, and child's remaining ports after the merge
// point shifted up to stay contiguous. parent is removed once its
// inputs have moved onto child.
func mergeJoinIntoChild(g *pisdf.Graph, parent, child *pisdf.Vertex) error {
	bridgeEdge := parent.Out[0]
	mergePort := bridgeEdge.SinkPort

	type rewire struct {
		producer     *pisdf.Vertex
		producerPort int
		producerRate *expr.Expression
		sinkRate     *expr.Expression
	}
	parentIns := snapshotEdges(parent.In)
	tailEdges := snapshotEdges(child.In[mergePort+1:])

	pisdf.Disconnect(g, bridgeEdge)
	rewires := make([]rewire, 0, len(parentIns)+len(tailEdges))
	for _, e := range parentIns {
		rewires = append(rewires, rewire{e.Source, e.SourcePort, e.SourceRate, e.SinkRate})
		pisdf.Disconnect(g, e)
	}
	for _, e := range tailEdges {
		rewires = append(rewires, rewire{e.Source, e.SourcePort, e.SourceRate, e.SinkRate})
		pisdf.Disconnect(g, e)
	}
	for i, r := range rewires {
		if _, err := pisdf.NewEdge(g, r.producer, r.producerPort, r.producerRate, child, mergePort+i, r.sinkRate); err != nil {
			return err
		}
	}
	return pisdf.RemoveVertex(g, parent)
}

// forkForkJoinJoin runs ForkFork, JoinJoin, and JoinFork once each over
// the current graph, reporting whether anything changed. Callers iterate
// this to a fixed point.
func forkForkJoinJoin(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Fork {
			continue
		}
		for port, e := range v.Out {
			if e == nil || e.Sink.Subtype != pisdf.Fork {
				continue
			}
			child := e.Sink
			if countConnected(child.In) != 1 {
				continue
			}
			if err := mergeSplitIntoParent(g, v, child, port); err != nil {
				return changed, err
			}
			changed = true
		}
	}
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Duplicate {
			continue
		}
		for port, e := range v.Out {
			if e == nil || e.Sink.Subtype != pisdf.Duplicate {
				continue
			}
			child := e.Sink
			if countConnected(child.In) != 1 {
				continue
			}
			if err := mergeSplitIntoParent(g, v, child, port); err != nil {
				return changed, err
			}
			changed = true
		}
	}
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Join || countConnected(v.Out) != 1 {
			continue
		}
		e := v.Out[0]
		if e == nil || e.Sink.Subtype != pisdf.Join {
			continue
		}
		if err := mergeJoinIntoChild(g, v, e.Sink); err != nil {
			return changed, err
		}
		changed = true
	}
	if jfChanged, err := joinFork(g, env); err != nil {
		return changed, err
	} else if jfChanged {
		changed = true
	}
	return changed, nil
}

// joinFork cancels a Join immediately feeding a Fork when their chunk
// boundaries align exactly: producer i of the join becomes the direct
// source for consumer i of the fork. Joins/forks whose chunk sizes don't
// line up one-to-one are left for a later pass (or the allocator) to
// reconcile; this rule only removes genuinely redundant pairs.
func joinFork(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Join || countConnected(v.Out) != 1 {
			continue
		}
		bridge := v.Out[0]
		if bridge == nil || bridge.Sink.Subtype != pisdf.Fork {
			continue
		}
		fork := bridge.Sink
		if countConnected(fork.In) != 1 {
			continue
		}
		joinIns := snapshotEdges(v.In)
		forkOuts := snapshotEdges(fork.Out)
		if len(joinIns) != len(forkOuts) || len(joinIns) == 0 {
			continue
		}
		aligned := true
		for i := range joinIns {
			jr, err := rateOf(joinIns[i].SourceRate, env)
			if err != nil {
				return changed, err
			}
			fr, err := rateOf(forkOuts[i].SinkRate, env)
			if err != nil {
				return changed, err
			}
			if jr != fr {
				aligned = false
				break
			}
		}
		if !aligned {
			continue
		}
		pisdf.Disconnect(g, bridge)
		for i := range joinIns {
			producer, producerPort, producerRate := joinIns[i].Source, joinIns[i].SourcePort, joinIns[i].SourceRate
			consumer, consumerPort, consumerRate := forkOuts[i].Sink, forkOuts[i].SinkPort, forkOuts[i].SinkRate
			pisdf.Disconnect(g, joinIns[i])
			pisdf.Disconnect(g, forkOuts[i])
			if _, err := pisdf.NewEdge(g, producer, producerPort, producerRate, consumer, consumerPort, consumerRate); err != nil {
				return changed, err
			}
		}
		if err := pisdf.RemoveVertex(g, v); err != nil {
			return changed, err
		}
		if err := pisdf.RemoveVertex(g, fork); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// repeatFork bypasses a Repeat vertex that is a pure pass-through
// (equal rates) feeding a Fork: spec.md §4.7 RepeatFork.
func repeatFork(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Repeat || countConnected(v.In) != 1 || countConnected(v.Out) != 1 {
			continue
		}
		if v.Out[0] == nil || v.Out[0].Sink.Subtype != pisdf.Fork {
			continue
		}
		inRate, err := rateOf(v.In[0].SinkRate, env)
		if err != nil {
			return changed, err
		}
		outRate, err := rateOf(v.Out[0].SourceRate, env)
		if err != nil {
			return changed, err
		}
		if inRate != outRate {
			continue
		}
		if err := bypass(g, v); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// duplicateDuplicate runs one pass of the Duplicate-into-Duplicate merge
// (handled inside forkForkJoinJoin already); kept as its own pipeline
// stage name to match spec.md §4.7's rule ordering.
func duplicateDuplicate(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Duplicate {
			continue
		}
		for port, e := range v.Out {
			if e == nil || e.Sink.Subtype != pisdf.Duplicate {
				continue
			}
			child := e.Sink
			if countConnected(child.In) != 1 {
				continue
			}
			if err := mergeSplitIntoParent(g, v, child, port); err != nil {
				return changed, err
			}
			changed = true
		}
	}
	return changed, nil
}

// joinEnd bypasses a Join with exactly one real input directly feeding
// an End actor: spec.md §4.7 JoinEnd.
func joinEnd(g *pisdf.Graph, _ expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Join || countConnected(v.In) != 1 || countConnected(v.Out) != 1 {
			continue
		}
		if v.Out[0] == nil || v.Out[0].Sink.Subtype != pisdf.End {
			continue
		}
		if err := bypass(g, v); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// initEnd removes an Init vertex whose single output directly feeds the
// End vertex of the same Delay at an equal rate: the delay's buffer
// round-trips every token unchanged within the iteration, so neither
// actor does anything observable: spec.md §4.7 InitEnd.
func initEnd(g *pisdf.Graph, env expr.Environment) (bool, error) {
	changed := false
	for _, v := range snapshot(g) {
		if v.Subtype != pisdf.Init || countConnected(v.Out) != 1 {
			continue
		}
		e := v.Out[0]
		if e == nil || e.Sink.Subtype != pisdf.End {
			continue
		}
		end := e.Sink
		if v.Delay == nil || end.Delay == nil || v.Delay != end.Delay {
			continue
		}
		outRate, err := rateOf(e.SourceRate, env)
		if err != nil {
			return changed, err
		}
		inRate, err := rateOf(e.SinkRate, env)
		if err != nil {
			return changed, err
		}
		if outRate != inRate {
			continue
		}
		pisdf.Disconnect(g, e)
		if err := pisdf.RemoveVertex(g, v); err != nil {
			return changed, err
		}
		if err := pisdf.RemoveVertex(g, end); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

func countConnected(edges []*pisdf.Edge) int {
	n := 0
	for _, e := range edges {
		if e != nil {
			n++
		}
	}
	return n
}

// snapshot copies g.Vertices so rules can remove vertices from g while
// iterating a stable view.
func snapshot(g *pisdf.Graph) []*pisdf.Vertex {
	out := make([]*pisdf.Vertex, len(g.Vertices))
	copy(out, g.Vertices)
	return out
}

func snapshotEdges(edges []*pisdf.Edge) []*pisdf.Edge {
	var out []*pisdf.Edge
	for _, e := range edges {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
