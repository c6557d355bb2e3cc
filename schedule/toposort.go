// File: toposort.go
// Role: dependency bookkeeping shared by both policies. Persistent-delay
// edges carry data produced by a prior iteration, so they never gate a
// firing within the current iteration and are excluded from the
// precedence graph entirely.
package schedule

import "github.com/spiderflow/pisdf/pisdf"

func isPrecedenceEdge(e *pisdf.Edge) bool {
	return e.Delay == nil || !e.Delay.Persistent
}

// predecessors returns, for every vertex, the in-graph vertices that must
// finish before it can start.
func predecessors(g *pisdf.Graph) map[*pisdf.Vertex][]*pisdf.Vertex {
	preds := make(map[*pisdf.Vertex][]*pisdf.Vertex, len(g.Vertices))
	for _, v := range g.Vertices {
		for _, e := range v.In {
			if e == nil || !isPrecedenceEdge(e) {
				continue
			}
			preds[v] = append(preds[v], e.Source)
		}
	}
	return preds
}

func successors(g *pisdf.Graph) map[*pisdf.Vertex][]*pisdf.Vertex {
	succs := make(map[*pisdf.Vertex][]*pisdf.Vertex, len(g.Vertices))
	for _, v := range g.Vertices {
		for _, e := range v.Out {
			if e == nil || !isPrecedenceEdge(e) {
				continue
			}
			succs[v] = append(succs[v], e.Sink)
		}
	}
	return succs
}

// topoOrder returns g.Vertices in a valid topological order over the
// precedence graph (Kahn's algorithm), or ErrCyclicGraph if one remains
// after excluding persistent-delay edges.
func topoOrder(g *pisdf.Graph) ([]*pisdf.Vertex, error) {
	preds := predecessors(g)
	remaining := make(map[*pisdf.Vertex]int, len(g.Vertices))
	succs := successors(g)

	var ready []*pisdf.Vertex
	for _, v := range g.Vertices {
		remaining[v] = len(preds[v])
		if remaining[v] == 0 {
			ready = append(ready, v)
		}
	}

	order := make([]*pisdf.Vertex, 0, len(g.Vertices))
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, next := range succs[v] {
			remaining[next]--
			if remaining[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if len(order) != len(g.Vertices) {
		return nil, ErrCyclicGraph
	}
	return order, nil
}

// criticalPathLength computes, for every vertex, the longest duration
// path from it to any sink (inclusive), used as ListSchedule's static
// priority.
func criticalPathLength(g *pisdf.Graph, order []*pisdf.Vertex, cost CostModel) (map[*pisdf.Vertex]float64, error) {
	succs := successors(g)
	priority := make(map[*pisdf.Vertex]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		d, err := cost.Duration(v)
		if err != nil {
			return nil, err
		}
		best := 0.0
		for _, next := range succs[v] {
			if p := priority[next]; p > best {
				best = p
			}
		}
		priority[v] = float64(d) + best
	}
	return priority, nil
}
