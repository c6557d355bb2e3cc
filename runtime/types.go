// File: types.go
package runtime

import (
	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/platform"
	"github.com/spiderflow/pisdf/schedule"
)

// SchedulePolicy is the shape shared by schedule.ListSchedule and
// schedule.GreedyEFT; Kernel.Policy plugs in whichever the host prefers.
type SchedulePolicy func(g *pisdf.Graph, desc *platform.Description, cost schedule.CostModel, alloc *fifo.Allocation) (*schedule.Schedule, error)

// IterationResult is everything one call to Kernel.RunIteration
// produced: the single-rate graph it dispatched, where every edge
// landed in memory, and how every vertex was placed and timed.
type IterationResult struct {
	SRGraph    *pisdf.Graph
	Allocation *fifo.Allocation
	Schedule   *schedule.Schedule
}
