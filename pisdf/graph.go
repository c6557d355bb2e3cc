// File: graph.go
// Role: Graph construction (NewGraph, NewSubgraph) and vertex/edge
// registration into the owning graph's arena.
package pisdf

import (
	"fmt"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/param"
)

var graphIDCounter uint64

func nextGraphID() param.GraphID {
	graphIDCounter++
	return param.GraphID(graphIDCounter)
}

// NewGraph returns a fresh root graph with its own parameter store. Use
// NewSubgraph to nest a graph under a Graph_ vertex of an existing graph
// instead, so parameter lookups escalate correctly.
func NewGraph(name string) *Graph {
	id := nextGraphID()
	store := param.NewStore()
	return &Graph{
		ID:     id,
		Name:   name,
		Params: store,
	}
}

// NewSubgraph creates a graph nested inside container, which must belong
// to parent and have Subtype Graph_. The subgraph shares parent's
// parameter store and escalates lookups to it.
func NewSubgraph(parent *Graph, container *Vertex, name string) (*Graph, error) {
	if parent == nil {
		return nil, ErrNullParent
	}
	if container.Owner != parent {
		return nil, subtypeMismatchf("container vertex %q does not belong to parent graph %q", container.Name, parent.Name)
	}
	if container.Subtype != Graph_ {
		return nil, subtypeMismatchf("container vertex %q has subtype %s, want Graph", container.Name, container.Subtype)
	}
	if container.SubgraphRef != nil {
		return nil, subtypeMismatchf("container vertex %q already hosts a subgraph", container.Name)
	}
	id := nextGraphID()
	g := &Graph{
		ID:              id,
		Name:            name,
		Parent:          parent,
		ContainerVertex: container,
		Params:          parent.Params,
	}
	parent.Params.SetParent(id, parent.ID)
	container.SubgraphRef = g
	return g, nil
}

// addVertex appends v to g's arena, assigning its dense Index and Owner,
// after checking the name is unique within g.
func (g *Graph) addVertex(v *Vertex) error {
	for _, existing := range g.Vertices {
		if existing.Name == v.Name {
			return fmt.Errorf("%w: %q in graph %q", ErrVertexNameDuplicate, v.Name, g.Name)
		}
	}
	v.Owner = g
	v.Index = len(g.Vertices)
	g.Vertices = append(g.Vertices, v)
	switch v.Subtype {
	case InputInterface, ExternInputInterface:
		g.InputInterfaces = append(g.InputInterfaces, v)
	case OutputInterface, ExternOutputInterface:
		g.OutputInterfaces = append(g.OutputInterfaces, v)
	}
	return nil
}

// addEdge appends e to g's arena. Callers (NewEdge) are responsible for
// wiring e into its endpoints' In/Out slices first.
func (g *Graph) addEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
}

// Environment returns the expr.Environment for evaluating expressions
// that live within g (rate/repeat/delay-level expressions).
func (g *Graph) Environment() expr.Environment {
	return g.Params.Environment(g.ID)
}
