// File: types.go
package schedule

import (
	"time"

	"github.com/spiderflow/pisdf/pisdf"
)

// CostModel prices a vertex's execution and the communication latency of
// moving one edge's worth of tokens between two PEs.
type CostModel interface {
	Duration(v *pisdf.Vertex) (time.Duration, error)
	CommLatency(tokens int64) time.Duration
}

// UniformCostModel prices named actors from a fixed table, falling back
// to Default for anything absent, and scales communication latency
// linearly with token count.
type UniformCostModel struct {
	ByName       map[string]time.Duration
	Default      time.Duration
	PerTokenComm time.Duration
}

func (m UniformCostModel) Duration(v *pisdf.Vertex) (time.Duration, error) {
	if d, ok := m.ByName[v.Name]; ok {
		return d, nil
	}
	if m.Default > 0 {
		return m.Default, nil
	}
	return 0, ErrDurationUnknown
}

func (m UniformCostModel) CommLatency(tokens int64) time.Duration {
	return time.Duration(tokens) * m.PerTokenComm
}

// Assignment is one vertex's placement and timing in a Schedule.
type Assignment struct {
	Vertex *pisdf.Vertex
	PE     string
	Start  time.Duration
	Finish time.Duration
}

// SyncPoint marks an edge whose producer and consumer land on different
// PEs and whose buffer (per fifo.Buffer.NeedsSync) requires the runtime
// to insert an explicit cross-LRT handshake before the consumer fires.
type SyncPoint struct {
	Edge       *pisdf.Edge
	ProducerPE string
	ConsumerPE string
}

// Schedule is the full placement of a graph's vertices onto a platform.
type Schedule struct {
	Assignments []Assignment
	SyncPoints  []SyncPoint

	indexByVertex map[*pisdf.Vertex]int
}

// For returns the assignment computed for v, if any.
func (s *Schedule) For(v *pisdf.Vertex) (Assignment, bool) {
	i, ok := s.indexByVertex[v]
	if !ok {
		return Assignment{}, false
	}
	return s.Assignments[i], true
}

// Makespan is the latest finish time across every assignment.
func (s *Schedule) Makespan() time.Duration {
	var max time.Duration
	for _, a := range s.Assignments {
		if a.Finish > max {
			max = a.Finish
		}
	}
	return max
}

func newSchedule() *Schedule {
	return &Schedule{indexByVertex: make(map[*pisdf.Vertex]int)}
}

func (s *Schedule) add(a Assignment) {
	s.indexByVertex[a.Vertex] = len(s.Assignments)
	s.Assignments = append(s.Assignments, a)
}
