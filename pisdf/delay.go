// File: delay.go
// Role: Delay construction and the DelayActor vertex that exposes it to
// the single-rate transformer and peephole optimizer (spec.md §3, §4.9).
package pisdf

import "github.com/spiderflow/pisdf/expr"

// NewPersistentDelay creates a Delay that survives the whole application
// lifetime and attaches it to e. Single-rate transformation links it
// directly when the edge has exactly one producer and one consumer
// firing, and splits it into an Init/End pair otherwise. levelExpr must
// evaluate to a non-negative integer.
func NewPersistentDelay(e *Edge, levelExpr *expr.Expression) *Delay {
	d := &Delay{Persistent: true, LevelExpr: levelExpr, MemoryAddr: nextDelayAddress()}
	e.Delay = d
	return d
}

// NewLocalDelay creates a Delay realized as an Init/End actor pair
// during single-rate transformation, scoped to one graph iteration.
func NewLocalDelay(e *Edge, levelExpr *expr.Expression) *Delay {
	d := &Delay{Persistent: false, LevelExpr: levelExpr, MemoryAddr: nextDelayAddress()}
	e.Delay = d
	return d
}

// Resolve evaluates d's level expression against env and caches it in
// Level. Call after the owning graph's Config actors have all fired.
func (d *Delay) Resolve(env expr.Environment) error {
	if d.LevelExpr == nil {
		return nil
	}
	level, err := d.LevelExpr.EvalInt(env)
	if err != nil {
		return err
	}
	d.Level = level
	return nil
}

// NewInitVertex creates the Init actor that writes a delay's initial
// tokens at the start of an iteration.
func NewInitVertex(g *Graph, name string, d *Delay) (*Vertex, error) {
	v, err := NewVertex(g, name, Init)
	if err != nil {
		return nil, err
	}
	v.Delay = d
	return v, nil
}

// NewEndVertex creates the End actor that consumes a delay's residual
// tokens at the end of an iteration.
func NewEndVertex(g *Graph, name string, d *Delay) (*Vertex, error) {
	v, err := NewVertex(g, name, End)
	if err != nil {
		return nil, err
	}
	v.Delay = d
	return v, nil
}
