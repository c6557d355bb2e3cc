// File: clone.go
// Role: Deep/shallow graph duplication, used by the single-rate
// transformer to materialize RV instances of a prototype graph.
package pisdf

import "fmt"

// CloneEmpty returns a new graph with the same name suffix and parameter
// store linkage as g, but no vertices or edges. Callers typically use
// this as the basis for a per-instance single-rate subgraph before
// copying in RV-scaled vertices.
func (g *Graph) CloneEmpty(nameSuffix string) *Graph {
	return &Graph{
		ID:      nextGraphID(),
		Name:    g.Name + nameSuffix,
		Parent:  g.Parent,
		Dynamic: g.Dynamic,
		Params:  g.Params,
	}
}

// Clone returns a deep copy of g: every vertex and edge is duplicated
// with fresh pointer identity, rate/delay expressions are shared
// (expr.Expression is immutable once parsed), and each cloned vertex's
// Ref is set back to its prototype in g via SetAsReference.
//
// Clone does not recurse into nested subgraphs (Subtype == Graph_
// vertices keep a nil SubgraphRef on the clone); srdag clones hierarchy
// levels independently, one Job per level.
func (g *Graph) Clone(nameSuffix string, instance int) (*Graph, error) {
	clone := g.CloneEmpty(nameSuffix)
	index := make(map[*Vertex]*Vertex, len(g.Vertices))
	for _, v := range g.Vertices {
		nv := &Vertex{
			Name:      fmt.Sprintf("%s_%d", v.Name, instance),
			Subtype:   v.Subtype,
			InParams:  v.InParams,
			OutParams: v.OutParams,
			RV:        v.RV,
		}
		if err := clone.addVertex(nv); err != nil {
			return nil, err
		}
		if err := SetAsReference(nv, v, instance); err != nil {
			return nil, err
		}
		index[v] = nv
	}
	for _, e := range g.Edges {
		src, sink := index[e.Source], index[e.Sink]
		ne, err := NewEdge(clone, src, e.SourcePort, e.SourceRate, sink, e.SinkPort, e.SinkRate)
		if err != nil {
			return nil, err
		}
		if e.Delay != nil {
			ne.Delay = &Delay{
				Level:      e.Delay.Level,
				Persistent: e.Delay.Persistent,
				MemoryAddr: e.Delay.MemoryAddr,
				LevelExpr:  e.Delay.LevelExpr,
			}
		}
	}
	return clone, nil
}
