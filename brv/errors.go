package brv

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentRates indicates a connected component's edges imply
	// two different repetition counts for the same vertex.
	ErrInconsistentRates = errors.New("brv: inconsistent rate equations")

	// ErrNonPositiveRate indicates a resolved rate expression evaluated
	// to zero or a negative value.
	ErrNonPositiveRate = errors.New("brv: rate expression must be positive")

	// ErrRateUnresolved indicates a rate expression could not be
	// evaluated, typically because it referenced a Dynamic parameter
	// that has not yet fired its producing Config actor.
	ErrRateUnresolved = errors.New("brv: rate expression could not be resolved")
)

func inconsistentf(vertex string, have, want int64) error {
	return fmt.Errorf("%w: vertex %q wants RV=%d, already fixed at RV=%d", ErrInconsistentRates, vertex, want, have)
}
