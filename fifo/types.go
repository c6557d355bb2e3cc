// File: types.go
package fifo

import "github.com/spiderflow/pisdf/pisdf"

// Buffer describes the memory placement of one edge's FIFO.
type Buffer struct {
	Edge *pisdf.Edge
	// Address is a virtual offset, unique within its cluster's address
	// space; strategies never produce overlapping ranges.
	Address uint64
	// Size is the buffer's capacity in tokens.
	Size int64
	// RefCount is how many live readers/writers share this address
	// across iterations: 1 for an ordinary single-rate edge, 2 for a
	// persistent delay buffer (this iteration's writer, last
	// iteration's reader).
	RefCount int
	// NeedsSync reports whether the runtime must insert a cross-PE
	// synchronization primitive around accesses to this buffer.
	NeedsSync bool
}

// Allocation is the full placement result for a graph: one Buffer per
// edge, looked up by edge pointer.
type Allocation struct {
	Buffers []Buffer

	indexByEdge map[*pisdf.Edge]int
}

func newAllocation() *Allocation {
	return &Allocation{indexByEdge: make(map[*pisdf.Edge]int)}
}

func (a *Allocation) add(b Buffer) {
	a.indexByEdge[b.Edge] = len(a.Buffers)
	a.Buffers = append(a.Buffers, b)
}

// For returns the buffer placed for e, if any.
func (a *Allocation) For(e *pisdf.Edge) (Buffer, bool) {
	i, ok := a.indexByEdge[e]
	if !ok {
		return Buffer{}, false
	}
	return a.Buffers[i], true
}

// TotalBytes sums every buffer's size, assuming a uniform token width of
// one unit; callers scale by the actor's actual token size if needed.
func (a *Allocation) TotalBytes() int64 {
	var total int64
	for _, b := range a.Buffers {
		total += b.Size
	}
	return total
}
