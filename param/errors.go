package param

import (
	"errors"
	"fmt"
)

var (
	// ErrNameDuplicate indicates a parameter name already exists on the
	// owning graph.
	ErrNameDuplicate = errors.New("param: name already exists on graph")

	// ErrNotFound indicates a lookup (direct or escalated) found no
	// parameter with the requested name.
	ErrNotFound = errors.New("param: not found")

	// ErrNotDynamic indicates SetValue was called on a non-Dynamic
	// parameter.
	ErrNotDynamic = errors.New("param: SetValue requires a Dynamic parameter")

	// ErrValueUndefined indicates Value was requested for a Dynamic
	// parameter whose owning configuration actor has not yet executed
	// in the current iteration.
	ErrValueUndefined = errors.New("param: dynamic parameter value is undefined")
)

func notFoundf(graph GraphID, name string) error {
	return fmt.Errorf("%w: graph=%d name=%q", ErrNotFound, graph, name)
}
