// File: errors.go
package schedule

import "errors"

var (
	// ErrCyclicGraph is returned when the graph (ignoring persistent-delay
	// edges) has a cycle, which srdag+optim should never produce.
	ErrCyclicGraph = errors.New("schedule: dependency cycle (excluding persistent-delay edges)")
	// ErrNoPEs is returned when the platform description has no PEs to
	// schedule onto.
	ErrNoPEs = errors.New("schedule: platform has no PEs")
	// ErrDurationUnknown is returned by a CostModel that can't price a
	// vertex.
	ErrDurationUnknown = errors.New("schedule: no duration for vertex")
)
