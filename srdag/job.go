// File: job.go
// Role: the discovery worklist — one Job per hierarchy level, clone
// bookkeeping, and recursive descent into Graph_ vertex instances.
package srdag

import (
	"fmt"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// Job names one invocation of one PiSDF graph prototype: the root graph
// invoked once, or a subgraph invoked once per firing of its enclosing
// Graph_ vertex.
type Job struct {
	Proto  *pisdf.Graph
	Prefix string
}

// transformer owns the flat output graph and per-job clone bookkeeping
// accumulated across the discovery and linking passes.
type transformer struct {
	sr  *pisdf.Graph
	env expr.Environment

	clones   map[*Job]map[*pisdf.Vertex][]*pisdf.Vertex
	children map[*Job]map[*pisdf.Vertex][]*Job
	jobs     []*Job

	initEndCounter int
}

// Transform expands root (whose repetition vectors, and those of every
// nested subgraph, must already be resolved via brv.Solve) into a single
// flat single-rate graph.
func Transform(root *pisdf.Graph, env expr.Environment) (*pisdf.Graph, error) {
	t := &transformer{
		sr:       pisdf.NewGraph(root.Name + "_sr"),
		env:      env,
		clones:   make(map[*Job]map[*pisdf.Vertex][]*pisdf.Vertex),
		children: make(map[*Job]map[*pisdf.Vertex][]*Job),
	}
	rootJob := &Job{Proto: root, Prefix: root.Name}
	if err := t.discover(rootJob); err != nil {
		return nil, err
	}
	for _, j := range t.jobs {
		for _, e := range j.Proto.Edges {
			if isInteriorInterfaceEdge(e) {
				continue
			}
			if err := t.linkEdge(j, e); err != nil {
				return nil, err
			}
		}
	}
	return t.sr, nil
}

// isInteriorInterfaceEdge reports whether e is the inside half of a
// hierarchy crossing (interface to/from an ordinary vertex within the
// same subgraph), which is resolved by the ancestor job that owns the
// Graph_ vertex, not by this job itself.
func isInteriorInterfaceEdge(e *pisdf.Edge) bool {
	switch e.Source.Subtype {
	case pisdf.InputInterface:
		return true
	}
	switch e.Sink.Subtype {
	case pisdf.OutputInterface:
		return true
	}
	return false
}

// discover clones every ordinary vertex of j.Proto RV times and recurses
// into each instance of every Graph_ vertex as a new child Job.
func (t *transformer) discover(j *Job) error {
	t.jobs = append(t.jobs, j)
	t.clones[j] = make(map[*pisdf.Vertex][]*pisdf.Vertex)
	t.children[j] = make(map[*pisdf.Vertex][]*Job)

	for _, v := range j.Proto.Vertices {
		switch v.Subtype {
		case pisdf.InputInterface, pisdf.OutputInterface:
			continue // pure hierarchy glue; never materialized
		case pisdf.Graph_:
			if v.RV == 0 {
				return fmt.Errorf("%w: %s", ErrUnresolvedRV, v.Name)
			}
			if v.SubgraphRef == nil {
				return fmt.Errorf("srdag: %q has no subgraph attached", v.Name)
			}
			children := make([]*Job, v.RV)
			for i := uint32(0); i < v.RV; i++ {
				child := &Job{
					Proto:  v.SubgraphRef,
					Prefix: fmt.Sprintf("%s-%s_%d", j.Prefix, v.Name, i),
				}
				if err := t.discover(child); err != nil {
					return err
				}
				children[i] = child
			}
			t.children[j][v] = children
		default:
			if v.RV == 0 {
				return fmt.Errorf("%w: %s", ErrUnresolvedRV, v.Name)
			}
			clones := make([]*pisdf.Vertex, v.RV)
			for i := uint32(0); i < v.RV; i++ {
				name := fmt.Sprintf("%s-%s_%d", j.Prefix, v.Name, i)
				nv, err := pisdf.NewVertex(t.sr, name, v.Subtype)
				if err != nil {
					return err
				}
				nv.InParams = v.InParams
				nv.OutParams = v.OutParams
				if err := pisdf.SetAsReference(nv, v, int(i)); err != nil {
					return err
				}
				clones[i] = nv
			}
			t.clones[j][v] = clones
		}
	}
	return nil
}
