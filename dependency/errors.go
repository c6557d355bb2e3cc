package dependency

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchPort indicates the requested input port is not connected.
	ErrNoSuchPort = errors.New("dependency: input port not connected")

	// ErrMissingContainer indicates an ascent through an interface was
	// requested but the owning graph has no ContainerVertex (i.e. it is
	// the root graph).
	ErrMissingContainer = errors.New("dependency: interface has no enclosing container")

	// ErrMissingSubgraph indicates a descent into a Graph_ vertex was
	// requested but it has no attached SubgraphRef.
	ErrMissingSubgraph = errors.New("dependency: vertex hosts no subgraph")

	// ErrNoMatchingInterface indicates no InputInterface/OutputInterface
	// in a subgraph corresponds to the port being crossed.
	ErrNoMatchingInterface = errors.New("dependency: no matching interface for port")

	// ErrNonPositiveRate indicates a resolved rate expression evaluated
	// to zero or a negative value.
	ErrNonPositiveRate = errors.New("dependency: rate expression must be positive")
)

func rateErrf(vertex string, cause error) error {
	return fmt.Errorf("dependency: resolving rate for %q: %w", vertex, cause)
}
