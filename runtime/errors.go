// File: errors.go
package runtime

import "errors"

var (
	// ErrNoAssignment is returned when the scheduler produced no
	// Assignment for a vertex that RunIteration must dispatch.
	ErrNoAssignment = errors.New("runtime: vertex has no schedule assignment")
	// ErrNoBuffer is returned when the FIFO allocator produced no
	// Buffer for an edge RunIteration must wire into a job.
	ErrNoBuffer = errors.New("runtime: edge has no fifo allocation")
	// ErrUnknownRunner is returned when a Schedule names a PE for which
	// the caller supplied no runner.Runner.
	ErrUnknownRunner = errors.New("runtime: no runner registered for PE")

	// ErrTransformation tags a failure in BRV solving, SR transformation,
	// or peephole optimization (spec.md §6 exit code 2).
	ErrTransformation = errors.New("runtime: transformation error")
	// ErrSchedulingPhase tags a failure in FIFO allocation or scheduling
	// (spec.md §6 exit code 3).
	ErrSchedulingPhase = errors.New("runtime: scheduling error")
	// ErrRuntimePhase tags a failure in job dispatch, runner execution,
	// or parameter publication (spec.md §6 exit code 4).
	ErrRuntimePhase = errors.New("runtime: runtime error")
)
