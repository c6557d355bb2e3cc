// File: fault.go
// Role: bridges a runner.Runner's long-lived Run loop (which spans many
// iterations and is owned by the host, not by a single RunIteration
// call) to Kernel's per-iteration wait, so a runner crash during an
// iteration is reported instead of hanging RunIteration forever.
package runtime

import (
	"context"

	"github.com/spiderflow/pisdf/runner"
)

// RunnerFault reports that the named LRT's Run loop exited with an
// error, spec.md §4.11's runtime-error termination path.
type RunnerFault struct {
	LRT string
	Err error
}

// WatchRunners starts rn.Run(ctx) for every runner and forwards any
// non-nil return value on the returned channel. Call once per process,
// before the first Kernel.RunIteration, and wire the channel into
// Kernel.Faults.
func WatchRunners(ctx context.Context, runners map[string]*runner.Runner) <-chan RunnerFault {
	faults := make(chan RunnerFault, len(runners))
	for name, rn := range runners {
		go func(name string, rn *runner.Runner) {
			if err := rn.Run(ctx); err != nil {
				faults <- RunnerFault{LRT: name, Err: err}
			}
		}(name, rn)
	}
	return faults
}
