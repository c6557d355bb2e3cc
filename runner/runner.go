// File: runner.go
// Role: the cooperative per-PE loop (spec.md §4.11).
package runner

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/spiderflow/pisdf/memiface"
)

// Runner is one PE's cooperative executor.
type Runner struct {
	Name string
	Mem  memiface.Interface
	Log  hclog.Logger

	// Kernels looks up a vertex's registered refinement, keyed by vertex
	// name.
	Kernels map[string]KernelFunc

	// OnFinishedIteration is invoked once this runner's queue has fully
	// drained after an EndIteration notification; master-loop plumbing
	// listens here for the per-runner FinishedIteration signal.
	OnFinishedIteration func(lrt string)
	// OnParamValue is invoked when a Config job finishes, carrying the
	// vertex's emitted parameter values back to the master.
	OnParamValue func(vertexName string, values []int64)

	bus   *Bus
	inbox <-chan Notification

	queue   []*Job
	stamps  map[string]int64
	paused  bool
	repeat  bool
	trace   bool
	stopped bool

	pendingBroadcast bool
}

// NewRunner registers name on bus and returns a Runner ready to Run.
func NewRunner(name string, bus *Bus, mem memiface.Interface, log hclog.Logger) *Runner {
	return &Runner{
		Name:    name,
		Mem:     mem,
		Log:     log,
		Kernels: make(map[string]KernelFunc),
		bus:     bus,
		inbox:   bus.Register(name),
		stamps:  map[string]int64{name: -1},
	}
}

// Run blocks, processing notifications and jobs until Stop is handled or
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if r.stopped {
			return nil
		}
		if r.paused {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case n := <-r.inbox:
				if err := r.handle(n); err != nil {
					return err
				}
			}
			continue
		}

		if job := r.nextRunnable(); job != nil {
			select {
			case n := <-r.inbox:
				if err := r.handle(n); err != nil {
					return err
				}
				continue
			default:
			}
			if err := r.execute(job); err != nil {
				return err
			}
			continue
		}

		// Nothing runnable: block for the notification that will make
		// progress possible (UpdateJobStamp, AddJob, Stop, ...).
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-r.inbox:
			if err := r.handle(n); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) handle(n Notification) error {
	switch n.Kind {
	case StartIteration:
		r.Log.Debug("start iteration", "lrt", r.Name)
	case EndIteration:
		r.flushIfDrained()
	case ClearIteration:
		r.queue = nil
		for name := range r.stamps {
			r.stamps[name] = -1
		}
	case ResetIteration:
		r.queue = nil
	case FinishedIteration:
		// only meaningful to the master's own bookkeeping; a plain
		// Runner has nothing further to do with it.
	case RepeatEnable:
		r.repeat = true
	case RepeatDisable:
		r.repeat = false
	case Stop:
		if !r.repeat || len(r.queue) == 0 {
			r.stopped = true
		}
	case Pause:
		r.paused = true
	case Resume:
		r.paused = false
	case TraceEnable:
		r.trace = true
	case TraceDisable:
		r.trace = false
	case AddJob:
		if n.Job != nil {
			if _, self := n.Job.ExecutionConstraints[r.Name]; self {
				return fmt.Errorf("%w: %s", ErrSelfConstraint, n.Job.Vertex.Name)
			}
			r.queue = append(r.queue, n.Job)
		}
	case ClearJobQueue:
		r.queue = nil
	case BroadcastJobStamp:
		r.bus.Broadcast(r.Name, Notification{Kind: UpdateJobStamp, LRT: r.Name, Stamp: r.stamps[r.Name]})
	case DelayedBroadcast:
		r.pendingBroadcast = true
		r.flushIfDrained()
	case UpdateJobStamp:
		if cur, ok := r.stamps[n.LRT]; !ok || n.Stamp > cur {
			r.stamps[n.LRT] = n.Stamp
		}
	default:
		r.Log.Warn("dropped unrecognized notification", "lrt", r.Name, "kind", int(n.Kind))
	}
	return nil
}

func (r *Runner) flushIfDrained() {
	if !r.pendingBroadcast || len(r.queue) != 0 {
		return
	}
	r.pendingBroadcast = false
	r.bus.Broadcast(r.Name, Notification{Kind: UpdateJobStamp, LRT: r.Name, Stamp: r.stamps[r.Name]})
}

// nextRunnable returns the front-of-queue job if every cross-LRT
// constraint it carries is already satisfied by cached stamps, else nil.
func (r *Runner) nextRunnable() *Job {
	if len(r.queue) == 0 {
		return nil
	}
	job := r.queue[0]
	for lrt, need := range job.ExecutionConstraints {
		if need < 0 {
			continue
		}
		if r.stampOf(lrt) < need {
			return nil
		}
	}
	return job
}

// stampOf returns the cached last-completed job index for lrt, or -1 if
// no UpdateJobStamp has ever been recorded for it.
func (r *Runner) stampOf(lrt string) int64 {
	if v, ok := r.stamps[lrt]; ok {
		return v
	}
	return -1
}

func (r *Runner) execute(job *Job) error {
	r.queue = r.queue[1:]

	kernel, ok := r.Kernels[job.Vertex.Name]
	if !ok {
		kernel, ok = builtinKernel(job.Vertex.Subtype)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrKernelMissing, job.Vertex.Name)
	}

	inputs := make([][]byte, len(job.Inputs))
	for i, f := range job.Inputs {
		buf := make([]byte, f.Size)
		if err := r.Mem.Read(f.Address, buf); err != nil {
			return err
		}
		inputs[i] = buf
	}
	outputs := make([][]byte, len(job.Outputs))
	for i, f := range job.Outputs {
		outputs[i] = make([]byte, f.Size)
	}
	outputParams := make([]int64, job.OutParamLen)

	if err := kernel(job.InputParams, outputParams, inputs, outputs); err != nil {
		return fmt.Errorf("runtime error in %s: %w", job.Vertex.Name, err)
	}

	for i, f := range job.Outputs {
		if err := r.Mem.Write(f.Address, outputs[i]); err != nil {
			return err
		}
	}
	for _, f := range job.Inputs {
		if f.Attribute == ReadWriteOwn {
			r.Mem.Free(f.Address)
		}
	}

	r.stamps[r.Name] = int64(job.Index)
	for lrt, notify := range job.NotificationFlags {
		if notify {
			r.bus.Send(lrt, Notification{Kind: UpdateJobStamp, LRT: r.Name, Stamp: int64(job.Index)})
		}
	}

	if job.IsConfig && r.OnParamValue != nil {
		r.OnParamValue(job.Vertex.Name, outputParams)
	}
	if r.trace {
		r.Log.Trace("job finished", "lrt", r.Name, "vertex", job.Vertex.Name, "index", job.Index)
	}

	r.flushIfDrained()
	if len(r.queue) == 0 && r.OnFinishedIteration != nil {
		r.OnFinishedIteration(r.Name)
	}
	return nil
}
