// File: errors.go
package runner

import "errors"

var (
	// ErrKernelMissing is a RuntimeError: a job named a vertex with no
	// registered kernel.
	ErrKernelMissing = errors.New("runner: no kernel registered for vertex")
	// ErrSelfConstraint is a RuntimeError: a job's execution constraints
	// named this runner's own LRT, which can never become satisfied by a
	// message from elsewhere.
	ErrSelfConstraint = errors.New("runner: job constrained on its own LRT")
	// ErrPortSizeMismatch is a RuntimeError: a builtin structural kernel
	// (Fork/Join/Head/Tail/Repeat) saw input/output buffer sizes that
	// don't add up.
	ErrPortSizeMismatch = errors.New("runner: structural actor port sizes do not match")
)
