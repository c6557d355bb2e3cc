// File: vertex.go
// Role: Vertex construction, the generic tag-checked downcast, and
// clone-reference bookkeeping used by the single-rate transformer.
package pisdf

import "fmt"

// NewVertex creates a vertex of the given Subtype in g, pre-sizing its
// In/Out slices to the Subtype's minimum port counts where that minimum
// is fixed (e.g. Fork always has exactly one input).
func NewVertex(g *Graph, name string, subtype Subtype) (*Vertex, error) {
	if g == nil {
		return nil, ErrNullParent
	}
	c, ok := constraints[subtype]
	if !ok {
		return nil, subtypeMismatchf("unregistered subtype %v", subtype)
	}
	v := &Vertex{Name: name, Subtype: subtype, RV: 1}
	if c.maxIn == c.minIn && c.minIn >= 0 {
		v.In = make([]*Edge, c.minIn)
	}
	if c.maxOut == c.minOut && c.minOut >= 0 {
		v.Out = make([]*Edge, c.minOut)
	}
	if c.fixedRV != 0 {
		v.RV = c.fixedRV
	}
	if err := g.addVertex(v); err != nil {
		return nil, err
	}
	return v, nil
}

// checkPortCounts validates v's current In/Out lengths against its
// Subtype's constraints. Call after all edges are connected (srdag and
// optim mutate port counts as they rewrite the graph).
func (v *Vertex) checkPortCounts() error {
	c, ok := constraints[v.Subtype]
	if !ok {
		return subtypeMismatchf("unregistered subtype %v", v.Subtype)
	}
	nIn, nOut := v.countConnectedIn(), v.countConnectedOut()
	if nIn < c.minIn || (c.maxIn != unbounded && nIn > c.maxIn) {
		return subtypeMismatchf("%s %q: %d input ports connected, want [%d,%d]", v.Subtype, v.Name, nIn, c.minIn, c.maxIn)
	}
	if nOut < c.minOut || (c.maxOut != unbounded && nOut > c.maxOut) {
		return subtypeMismatchf("%s %q: %d output ports connected, want [%d,%d]", v.Subtype, v.Name, nOut, c.minOut, c.maxOut)
	}
	return nil
}

func (v *Vertex) countConnectedIn() int {
	n := 0
	for _, e := range v.In {
		if e != nil {
			n++
		}
	}
	return n
}

func (v *Vertex) countConnectedOut() int {
	n := 0
	for _, e := range v.Out {
		if e != nil {
			n++
		}
	}
	return n
}

// AllowsConfigOutputs reports whether v's Subtype may own output
// (published) parameters. Only Config actors do.
func (v *Vertex) AllowsConfigOutputs() bool {
	return constraints[v.Subtype].configOutputs
}

// FixedRV returns the repetition vector value mandated for subtype, or 0
// if subtype's repetition is solved rather than fixed (spec.md §4.4:
// Config actors, interfaces, and delay vertices have RV fixed at 1).
func FixedRV(subtype Subtype) uint32 {
	return constraints[subtype].fixedRV
}

// SetAsReference marks proto as the prototype of clone, recording
// clone's firing index. Used by srdag when materializing RV instances;
// proto itself keeps Ref == nil (a prototype is never its own clone).
func SetAsReference(clone, proto *Vertex, instance int) error {
	if proto.Ref != nil {
		return fmt.Errorf("pisdf: %q is itself a clone, cannot be used as a prototype", proto.Name)
	}
	clone.Ref = proto
	clone.Instance = instance
	return nil
}

// Convert downcasts v's hierarchy payload, returning ok=false if v's
// Subtype does not carry the requested payload kind. The two supported
// instantiations are Convert[*Graph](v) (valid when Subtype == Graph_)
// and Convert[*Delay](v) (valid when Subtype == DelayActor).
func Convert[T *Graph | *Delay](v *Vertex) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case *Graph:
		if v.Subtype != Graph_ || v.SubgraphRef == nil {
			return zero, false
		}
		return any(v.SubgraphRef).(T), true
	case *Delay:
		if v.Subtype != DelayActor || v.Delay == nil {
			return zero, false
		}
		return any(v.Delay).(T), true
	default:
		return zero, false
	}
}
