// File: list.go
// Role: static-priority list scheduling (spec.md §4.9 ListSchedule).
package schedule

import (
	"container/heap"
	"time"

	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/platform"
)

// ListSchedule assigns every vertex of g to a PE of desc, processing the
// ready list in decreasing static-priority order (longest remaining path
// to a sink) and always placing the next task on whichever PE becomes
// idle soonest.
func ListSchedule(g *pisdf.Graph, desc *platform.Description, cost CostModel, alloc *fifo.Allocation) (*Schedule, error) {
	pes := desc.AllPEs()
	if len(pes) == 0 {
		return nil, ErrNoPEs
	}

	order, err := topoOrder(g)
	if err != nil {
		return nil, err
	}
	priority, err := criticalPathLength(g, order, cost)
	if err != nil {
		return nil, err
	}
	preds := predecessors(g)
	succs := successors(g)

	remaining := make(map[*pisdf.Vertex]int, len(g.Vertices))
	var q readyQueue
	for _, v := range g.Vertices {
		remaining[v] = len(preds[v])
		if remaining[v] == 0 {
			q = append(q, &readyItem{vertex: v, priority: priority[v]})
		}
	}
	heap.Init(&q)

	peAvailable := make(map[string]time.Duration, len(pes))
	for _, pe := range pes {
		peAvailable[pe.Name] = 0
	}

	sched := newSchedule()
	for q.Len() > 0 {
		item := heap.Pop(&q).(*readyItem)
		v := item.vertex

		pe := earliestIdlePE(pes, peAvailable)
		start := peAvailable[pe]
		for _, p := range preds[v] {
			pa, ok := sched.For(p)
			if !ok {
				continue
			}
			ready := pa.Finish
			if pa.PE != pe {
				ready += crossPELatency(g, p, v, cost, alloc)
			}
			if ready > start {
				start = ready
			}
		}

		d, err := cost.Duration(v)
		if err != nil {
			return nil, err
		}
		finish := start + d
		sched.add(Assignment{Vertex: v, PE: pe, Start: start, Finish: finish})
		peAvailable[pe] = finish

		for _, next := range succs[v] {
			remaining[next]--
			if remaining[next] == 0 {
				heap.Push(&q, &readyItem{vertex: next, priority: priority[next]})
			}
		}
	}

	sched.SyncPoints = collectSyncPoints(g, sched, alloc)
	return sched, nil
}

func earliestIdlePE(pes []platform.PE, avail map[string]time.Duration) string {
	best := pes[0].Name
	for _, pe := range pes[1:] {
		if avail[pe.Name] < avail[best] {
			best = pe.Name
		}
	}
	return best
}

// crossPELatency looks up the edge from producer p to consumer v and, if
// the allocator marked its buffer as needing synchronization, prices the
// handshake by the buffer's token count.
func crossPELatency(g *pisdf.Graph, p, v *pisdf.Vertex, cost CostModel, alloc *fifo.Allocation) time.Duration {
	e := findEdge(p, v)
	if e == nil || alloc == nil {
		return 0
	}
	buf, ok := alloc.For(e)
	if !ok || !buf.NeedsSync {
		return 0
	}
	return cost.CommLatency(buf.Size)
}

func findEdge(src, dst *pisdf.Vertex) *pisdf.Edge {
	for _, e := range src.Out {
		if e != nil && e.Sink == dst {
			return e
		}
	}
	return nil
}

// collectSyncPoints reports every edge whose endpoints land on different
// PEs. When alloc is given, an edge the allocator marked as not needing
// synchronization (fifo.DefaultNoSyncStrategy, or ArchiAwareStrategy
// agreeing with the final placement) is excluded.
func collectSyncPoints(g *pisdf.Graph, sched *Schedule, alloc *fifo.Allocation) []SyncPoint {
	var points []SyncPoint
	for _, e := range g.Edges {
		if e == nil {
			continue
		}
		srcA, ok1 := sched.For(e.Source)
		dstA, ok2 := sched.For(e.Sink)
		if !ok1 || !ok2 || srcA.PE == dstA.PE {
			continue
		}
		if alloc != nil {
			if buf, ok := alloc.For(e); ok && !buf.NeedsSync {
				continue
			}
		}
		points = append(points, SyncPoint{Edge: e, ProducerPE: srcA.PE, ConsumerPE: dstA.PE})
	}
	return points
}
