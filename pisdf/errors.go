// File: errors.go
// Role: sentinel errors for the pisdf package (spec.md §6, §7:
// ConstructionError family).
package pisdf

import (
	"errors"
	"fmt"
)

var (
	// ErrNullParent indicates a subgraph or vertex was constructed with
	// a nil parent graph.
	ErrNullParent = errors.New("pisdf: null parent graph")

	// ErrSubtypeMismatch indicates an operation's target vertex is not
	// of a compatible Subtype, or a Subtype's port-count invariant was
	// violated at construction.
	ErrSubtypeMismatch = errors.New("pisdf: subtype mismatch")

	// ErrDuplicatePortConnection indicates an edge was connected to a
	// port index already occupied on that vertex and direction.
	ErrDuplicatePortConnection = errors.New("pisdf: duplicate port connection")

	// ErrRateExpressionInvalid indicates a rate/delay expression failed
	// to parse or referenced a parameter outside the vertex's declared
	// input-parameter vector.
	ErrRateExpressionInvalid = errors.New("pisdf: invalid rate expression")

	// ErrPortOutOfRange indicates a port index outside the vertex's
	// allocated edge vector.
	ErrPortOutOfRange = errors.New("pisdf: port index out of range")

	// ErrVertexNameDuplicate indicates a vertex name clash within one
	// graph.
	ErrVertexNameDuplicate = errors.New("pisdf: vertex name duplicate")
)

func subtypeMismatchf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSubtypeMismatch, fmt.Sprintf(format, args...))
}
