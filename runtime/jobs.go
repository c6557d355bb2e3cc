// File: jobs.go
// Role: lowers a Schedule + Allocation into the per-PE runner.Job queues
// RunIteration dispatches (spec.md §4.10 step 1's job-stamp wiring).
package runtime

import (
	"fmt"
	"sort"

	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/param"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/runner"
	"github.com/spiderflow/pisdf/schedule"
)

type placement struct {
	pe    string
	index int
}

// buildJobs groups sched's assignments by PE (ordered by Start, giving
// each job its LRT-local sequential Index per spec.md §4.11), wires
// each job's FIFORefs from alloc, resolves InputParams through store,
// and turns every SyncPoint into a cross-LRT ExecutionConstraint plus
// the matching NotificationFlag on its producer.
func buildJobs(sr *pisdf.Graph, sched *schedule.Schedule, alloc *fifo.Allocation, store *param.Store) (map[string][]*runner.Job, error) {
	byPE := make(map[string][]schedule.Assignment)
	for _, a := range sched.Assignments {
		byPE[a.PE] = append(byPE[a.PE], a)
	}
	for pe := range byPE {
		asgs := byPE[pe]
		sort.Slice(asgs, func(i, j int) bool { return asgs[i].Start < asgs[j].Start })
	}

	place := make(map[*pisdf.Vertex]placement, len(sr.Vertices))
	jobs := make(map[*pisdf.Vertex]*runner.Job, len(sr.Vertices))
	jobsByPE := make(map[string][]*runner.Job, len(byPE))

	for pe, asgs := range byPE {
		for i, a := range asgs {
			v := a.Vertex
			place[v] = placement{pe: pe, index: i}

			inParams := make([]int64, len(v.InParams))
			for pi, p := range v.InParams {
				val, err := store.Value(p)
				if err != nil {
					return nil, fmt.Errorf("runtime: %s: input param %q: %w", v.Name, p.Name, err)
				}
				inParams[pi] = val
			}

			job := &runner.Job{
				Index:                i,
				Vertex:               v,
				IsConfig:             v.Subtype == pisdf.Config,
				InputParams:          inParams,
				OutParamLen:          len(v.OutParams),
				Inputs:               make([]runner.FIFORef, len(v.In)),
				Outputs:              make([]runner.FIFORef, len(v.Out)),
				ExecutionConstraints: make(map[string]int64),
				NotificationFlags:    make(map[string]bool),
			}
			jobs[v] = job
			jobsByPE[pe] = append(jobsByPE[pe], job)
		}
	}

	for _, v := range sr.Vertices {
		if _, ok := place[v]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoAssignment, v.Name)
		}
	}

	for v, job := range jobs {
		for i, e := range v.In {
			if e == nil {
				continue
			}
			buf, ok := alloc.For(e)
			if !ok {
				return nil, fmt.Errorf("%w: %s port %d", ErrNoBuffer, v.Name, i)
			}
			job.Inputs[i] = runner.FIFORef{Address: buf.Address, Size: buf.Size, Attribute: inputAttribute(buf)}
		}
		for i, e := range v.Out {
			if e == nil {
				continue
			}
			buf, ok := alloc.For(e)
			if !ok {
				return nil, fmt.Errorf("%w: %s port %d", ErrNoBuffer, v.Name, i)
			}
			job.Outputs[i] = runner.FIFORef{Address: buf.Address, Size: buf.Size, Attribute: runner.ReadOnly}
		}
	}

	for _, sp := range sched.SyncPoints {
		prod, ok := place[sp.Edge.Source]
		if !ok {
			continue
		}
		cons, ok := place[sp.Edge.Sink]
		if !ok {
			continue
		}
		consJob := jobsByPE[cons.pe][cons.index]
		if cur, ok := consJob.ExecutionConstraints[prod.pe]; !ok || int64(prod.index) > cur {
			consJob.ExecutionConstraints[prod.pe] = int64(prod.index)
		}
		jobsByPE[prod.pe][prod.index].NotificationFlags[cons.pe] = true
	}

	return jobsByPE, nil
}

// inputAttribute reports ReadWriteExternal for a persistent delay buffer
// (shared across iterations, never freed by a single consumer) and
// ReadWriteOwn otherwise, so the runner frees an ordinary buffer once
// its sole consumer has read it.
func inputAttribute(buf fifo.Buffer) runner.Attribute {
	if buf.RefCount > 1 {
		return runner.ReadWriteExternal
	}
	return runner.ReadWriteOwn
}
