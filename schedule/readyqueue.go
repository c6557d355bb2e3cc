// File: readyqueue.go
// Role: a max-heap of ready vertices ordered by static priority, the
// lazy-decrease-key style priority queue of the teacher's dijkstra
// package adapted to "largest priority first" list scheduling.
package schedule

import "github.com/spiderflow/pisdf/pisdf"

type readyItem struct {
	vertex   *pisdf.Vertex
	priority float64
}

type readyQueue []*readyItem

func (q readyQueue) Len() int            { return len(q) }
func (q readyQueue) Less(i, j int) bool  { return q[i].priority > q[j].priority }
func (q readyQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x interface{}) { *q = append(*q, x.(*readyItem)) }
func (q *readyQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
