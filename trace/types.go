// File: types.go
package trace

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spiderflow/pisdf/schedule"
)

// Entry is one vertex's placement, ready for rendering.
type Entry struct {
	Actor  string
	PE     string
	Start  time.Duration
	Finish time.Duration
}

// Trace is a rendering-ready snapshot of one iteration's schedule.
// SessionID is a random identifier distinguishing runs in a trace
// archive; it carries no scheduling meaning and is never used to order
// or compare traces.
type Trace struct {
	SessionID string
	Entries   []Entry
	Makespan  time.Duration
}

// FromSchedule converts a schedule.Schedule into a Trace, sorted by
// start time then actor name for deterministic rendering.
func FromSchedule(sched *schedule.Schedule) *Trace {
	t := &Trace{SessionID: uuid.NewString(), Makespan: sched.Makespan()}
	for _, a := range sched.Assignments {
		t.Entries = append(t.Entries, Entry{
			Actor:  a.Vertex.Name,
			PE:     a.PE,
			Start:  a.Start,
			Finish: a.Finish,
		})
	}
	sort.Slice(t.Entries, func(i, j int) bool {
		a, b := t.Entries[i], t.Entries[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Actor < b.Actor
	})
	return t
}
