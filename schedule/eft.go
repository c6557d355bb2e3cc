// File: eft.go
// Role: earliest-finish-time scheduling (spec.md §4.9 GreedyEFT). Unlike
// ListSchedule, which always hands the next task to whichever PE is
// idle soonest, GreedyEFT evaluates every PE's resulting finish time
// (including cross-PE communication cost) and picks the minimum.
package schedule

import (
	"container/heap"
	"time"

	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/platform"
)

func GreedyEFT(g *pisdf.Graph, desc *platform.Description, cost CostModel, alloc *fifo.Allocation) (*Schedule, error) {
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

		d, err := cost.Duration(v)
		if err != nil {
			return nil, err
		}

		bestPE := pes[0].Name
		bestStart := time.Duration(0)
		bestFinish := time.Duration(-1)
		for _, pe := range pes {
			start := peAvailable[pe.Name]
			for _, p := range preds[v] {
				pa, ok := sched.For(p)
				if !ok {
					continue
				}
				ready := pa.Finish
				if pa.PE != pe.Name {
					ready += crossPELatency(g, p, v, cost, alloc)
				}
				if ready > start {
					start = ready
				}
			}
			finish := start + d
			if bestFinish < 0 || finish < bestFinish {
				bestPE, bestStart, bestFinish = pe.Name, start, finish
			}
		}

		sched.add(Assignment{Vertex: v, PE: bestPE, Start: bestStart, Finish: bestFinish})
		peAvailable[bestPE] = bestFinish

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
