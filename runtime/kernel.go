// File: kernel.go
// Role: the JIT master loop of spec.md §4.10: one call to RunIteration
// solves repetition, single-rates the graph, optimizes it, allocates
// FIFOs, schedules, dispatches jobs to every PE's runner, and collects
// Config actors' published parameter values back into the store.
package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/spiderflow/pisdf/brv"
	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/optim"
	"github.com/spiderflow/pisdf/param"
	"github.com/spiderflow/pisdf/pisdf"
	"github.com/spiderflow/pisdf/pisdflog"
	"github.com/spiderflow/pisdf/platform"
	"github.com/spiderflow/pisdf/runner"
	"github.com/spiderflow/pisdf/schedule"
	"github.com/spiderflow/pisdf/srdag"
)

// Kernel owns everything one iteration needs beyond the graph itself:
// the platform, the costing/allocation/scheduling policies, the shared
// parameter store, the notification bus, and the runners it dispatches
// through. Runners are expected to already be running (via WatchRunners)
// before the first RunIteration call.
type Kernel struct {
	Desc    *platform.Description
	Cost    schedule.CostModel
	Alloc   fifo.Strategy
	Policy  SchedulePolicy
	Store   *param.Store
	Bus     *runner.Bus
	Runners map[string]*runner.Runner
	// Faults receives a RunnerFault whenever a runner's Run loop exits
	// with an error; wire it to the channel returned by WatchRunners.
	Faults <-chan RunnerFault
	Log    hclog.Logger
}

// NewKernel returns a Kernel with a default logger if log is nil. Every
// key of runners must name a PE that desc actually declares.
func NewKernel(desc *platform.Description, cost schedule.CostModel, alloc fifo.Strategy, policy SchedulePolicy, store *param.Store, bus *runner.Bus, runners map[string]*runner.Runner, faults <-chan RunnerFault, log hclog.Logger) (*Kernel, error) {
	for pe := range runners {
		if _, err := desc.PEByName(pe); err != nil {
			return nil, fmt.Errorf("runtime: %w", err)
		}
	}
	if log == nil {
		log = pisdflog.New("runtime", hclog.Info)
	}
	return &Kernel{
		Desc:    desc,
		Cost:    cost,
		Alloc:   alloc,
		Policy:  policy,
		Store:   store,
		Bus:     bus,
		Runners: runners,
		Faults:  faults,
		Log:     log,
	}, nil
}

// RunIteration drives root through one full iteration of the JIT
// master-slave loop (spec.md §4.10 steps 1-8, collapsed into a single
// pass — see DESIGN.md's Open Decision on why the literal ready/pending
// re-entry loop is not implemented internally).
func (k *Kernel) RunIteration(ctx context.Context, root *pisdf.Graph) (*IterationResult, error) {
	env := root.Environment()

	if err := brv.Solve(root, env); err != nil {
		return nil, fmt.Errorf("%w: brv: %w", ErrTransformation, err)
	}
	sr, err := srdag.Transform(root, env)
	if err != nil {
		return nil, fmt.Errorf("%w: srdag: %w", ErrTransformation, err)
	}
	if _, err := optim.Optimize(sr, env); err != nil {
		return nil, fmt.Errorf("%w: optim: %w", ErrTransformation, err)
	}

	srEnv := sr.Environment()
	alloc, err := k.Alloc.Allocate(sr, srEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: fifo: %w", ErrSchedulingPhase, err)
	}

	sched, err := k.Policy(sr, k.Desc, k.Cost, alloc)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule: %w", ErrSchedulingPhase, err)
	}

	jobsByPE, err := buildJobs(sr, sched, alloc, k.Store)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntimePhase, err)
	}
	for pe := range jobsByPE {
		if _, ok := k.Runners[pe]; !ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrRuntimePhase, ErrUnknownRunner, pe)
		}
	}

	configByName := make(map[string]*pisdf.Vertex)
	for _, v := range sr.Vertices {
		if v.Subtype == pisdf.Config {
			configByName[v.Name] = v
		}
	}

	var mu sync.Mutex
	var paramErr error
	finished := make(chan string, len(jobsByPE))
	for _, rn := range k.Runners {
		rn.OnFinishedIteration = func(lrt string) { finished <- lrt }
		rn.OnParamValue = func(vertexName string, values []int64) {
			v, ok := configByName[vertexName]
			if !ok {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for i, p := range v.OutParams {
				if i >= len(values) {
					break
				}
				if err := k.Store.SetValue(p, values[i]); err != nil && paramErr == nil {
					paramErr = err
				}
			}
		}
	}

	k.dispatch(jobsByPE)

	pending := make(map[string]bool, len(jobsByPE))
	for pe := range jobsByPE {
		pending[pe] = true
	}
	var faults *multierror.Error
	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case lrt := <-finished:
			delete(pending, lrt)
		case f := <-k.Faults:
			faults = multierror.Append(faults, fmt.Errorf("%s: %w", f.LRT, f.Err))
			delete(pending, f.LRT)
		}
	}
	if err := faults.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntimePhase, err)
	}

	mu.Lock()
	pErr := paramErr
	mu.Unlock()
	if pErr != nil {
		return nil, fmt.Errorf("%w: publishing config output: %w", ErrRuntimePhase, pErr)
	}

	k.Log.Debug("iteration complete", "makespan", sched.Makespan())
	return &IterationResult{SRGraph: sr, Allocation: alloc, Schedule: sched}, nil
}

func (k *Kernel) dispatch(jobsByPE map[string][]*runner.Job) {
	for pe := range jobsByPE {
		k.Bus.Send(pe, runner.Notification{Kind: runner.StartIteration})
	}
	for pe, jobs := range jobsByPE {
		for _, j := range jobs {
			k.Bus.Send(pe, runner.Notification{Kind: runner.AddJob, Job: j})
		}
	}
	for pe := range jobsByPE {
		k.Bus.Send(pe, runner.Notification{Kind: runner.EndIteration})
	}
}
