// File: edge.go
// Role: Edge construction and port connection/disconnection.
package pisdf

import (
	"fmt"

	"github.com/spiderflow/pisdf/expr"
)

// NewEdge connects source's sourcePort to sink's sinkPort with the given
// rate expressions, appending the edge to g's arena. Both endpoints must
// already belong to g. Port slices grow on demand for unbounded-arity
// subtypes (Fork/Join/Head/Tail/Duplicate) and are index-checked
// otherwise.
func NewEdge(g *Graph, source *Vertex, sourcePort int, sourceRate *expr.Expression, sink *Vertex, sinkPort int, sinkRate *expr.Expression) (*Edge, error) {
	if g == nil {
		return nil, ErrNullParent
	}
	if source.Owner != g || sink.Owner != g {
		return nil, subtypeMismatchf("edge endpoints must belong to graph %q", g.Name)
	}
	if sourceRate == nil || sinkRate == nil {
		return nil, fmt.Errorf("%w: edge %s->%s has a nil rate expression", ErrRateExpressionInvalid, source.Name, sink.Name)
	}
	e := &Edge{
		Source: source, SourcePort: sourcePort, SourceRate: sourceRate,
		Sink: sink, SinkPort: sinkPort, SinkRate: sinkRate,
	}
	if err := connectOut(source, sourcePort, e); err != nil {
		return nil, err
	}
	if err := connectIn(sink, sinkPort, e); err != nil {
		disconnectOut(source, sourcePort)
		return nil, err
	}
	g.addEdge(e)
	return e, nil
}

func connectOut(v *Vertex, port int, e *Edge) error {
	c := constraints[v.Subtype]
	if c.maxOut != unbounded && port >= c.maxOut {
		return fmt.Errorf("%w: %s %q output port %d exceeds max %d", ErrPortOutOfRange, v.Subtype, v.Name, port, c.maxOut)
	}
	for len(v.Out) <= port {
		v.Out = append(v.Out, nil)
	}
	if v.Out[port] != nil {
		return fmt.Errorf("%w: %s %q output port %d", ErrDuplicatePortConnection, v.Subtype, v.Name, port)
	}
	v.Out[port] = e
	return nil
}

func connectIn(v *Vertex, port int, e *Edge) error {
	c := constraints[v.Subtype]
	if c.maxIn != unbounded && port >= c.maxIn {
		return fmt.Errorf("%w: %s %q input port %d exceeds max %d", ErrPortOutOfRange, v.Subtype, v.Name, port, c.maxIn)
	}
	for len(v.In) <= port {
		v.In = append(v.In, nil)
	}
	if v.In[port] != nil {
		return fmt.Errorf("%w: %s %q input port %d", ErrDuplicatePortConnection, v.Subtype, v.Name, port)
	}
	v.In[port] = e
	return nil
}

func disconnectOut(v *Vertex, port int) {
	if port >= 0 && port < len(v.Out) {
		v.Out[port] = nil
	}
}

func disconnectIn(v *Vertex, port int) {
	if port >= 0 && port < len(v.In) {
		v.In[port] = nil
	}
}

// Disconnect removes e from both of its endpoints' port slices and from
// g's edge arena. It is idempotent: calling it twice on the same edge is
// a no-op the second time. Used by the peephole optimizer when rewriting
// fork/join chains.
func Disconnect(g *Graph, e *Edge) {
	disconnectOut(e.Source, e.SourcePort)
	disconnectIn(e.Sink, e.SinkPort)
	for i, existing := range g.Edges {
		if existing == e {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			break
		}
	}
}
