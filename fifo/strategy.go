// File: strategy.go
// Role: the three allocation strategies of spec.md §4.8.
package fifo

import (
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// Strategy assigns placement metadata to every edge of g.
type Strategy interface {
	Allocate(g *pisdf.Graph, env expr.Environment) (*Allocation, error)
}

func edgeSize(e *pisdf.Edge, env expr.Environment) (int64, error) {
	v, err := e.SourceRate.EvalInt(env)
	if err != nil {
		return 0, ErrRateUnresolved
	}
	return v, nil
}

// bumpAllocate assigns every edge a fresh, non-overlapping address by
// walking g.Edges in declaration order. Persistent-delay edges reuse the
// address already carried by their Delay (set once, at delay creation)
// instead of taking a fresh one, since setter and getter share the same
// physical buffer across iterations.
func bumpAllocate(g *pisdf.Graph, env expr.Environment, needsSync func(e *pisdf.Edge) bool) (*Allocation, error) {
	alloc := newAllocation()
	var cursor uint64
	for _, e := range g.Edges {
		size, err := edgeSize(e, env)
		if err != nil {
			return nil, err
		}
		b := Buffer{Edge: e, Size: size, RefCount: 1, NeedsSync: needsSync(e)}
		if e.Delay != nil && e.Delay.Persistent {
			b.Address = e.Delay.MemoryAddr
			b.RefCount = 2
		} else {
			b.Address = cursor
			cursor += uint64(size)
		}
		alloc.add(b)
	}
	return alloc, nil
}

// DefaultStrategy gives every edge its own address and conservatively
// assumes any edge might cross a PE boundary, so every buffer is marked
// as needing synchronization.
type DefaultStrategy struct{}

func (DefaultStrategy) Allocate(g *pisdf.Graph, env expr.Environment) (*Allocation, error) {
	return bumpAllocate(g, env, func(*pisdf.Edge) bool { return true })
}

// DefaultNoSyncStrategy allocates identically to DefaultStrategy but
// never requests synchronization, for callers who already guarantee a
// single cooperative execution order (spec.md §4.10's JIT master-slave
// loop serializes firings through job-stamp handshakes, which already
// orders every producer before its consumer).
type DefaultNoSyncStrategy struct{}

func (DefaultNoSyncStrategy) Allocate(g *pisdf.Graph, env expr.Environment) (*Allocation, error) {
	return bumpAllocate(g, env, func(*pisdf.Edge) bool { return false })
}

// ArchiAwareStrategy allocates addresses identically to DefaultStrategy
// (one shared address space; it does not partition addresses per PE or
// cluster) and marks an edge as needing synchronization only when its
// source and sink run on different PEs. PEOf reports the PE a vertex is mapped to; vertices
// without a mapping (PEOf's second return false) are treated as always
// needing synchronization, since nothing is known about their placement.
type ArchiAwareStrategy struct {
	PEOf func(v *pisdf.Vertex) (pe string, ok bool)
}

func (s ArchiAwareStrategy) Allocate(g *pisdf.Graph, env expr.Environment) (*Allocation, error) {
	needsSync := func(e *pisdf.Edge) bool {
		srcPE, srcOK := s.PEOf(e.Source)
		dstPE, dstOK := s.PEOf(e.Sink)
		if !srcOK || !dstOK {
			return true
		}
		return srcPE != dstPE
	}
	return bumpAllocate(g, env, needsSync)
}
