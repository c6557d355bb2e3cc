package srdag

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedRV indicates a vertex reached the transformer with no
	// repetition vector assigned; callers must run brv.Solve first.
	ErrUnresolvedRV = errors.New("srdag: repetition vector not resolved")

	// ErrIllegalLoop indicates a connected component forms a cycle with
	// no delay to break it, which cannot be realized as a finite,
	// schedulable single-rate graph.
	ErrIllegalLoop = errors.New("srdag: cyclic dependency with no delay to break it")

	// ErrInsufficientDelay indicates a delay's initial token count is
	// too small to satisfy the earliest consumer firings of its edge.
	ErrInsufficientDelay = errors.New("srdag: delay level insufficient for consumer demand")

	// ErrTokenMismatch indicates a producer/consumer token-stream merge
	// ended with leftover tokens on one side, meaning the edge's BRV
	// balance equation was violated upstream.
	ErrTokenMismatch = errors.New("srdag: producer/consumer token totals disagree")

	// ErrNoMatchingInterface indicates a hierarchy-crossing edge
	// referenced an interface port absent from the corresponding
	// subgraph.
	ErrNoMatchingInterface = errors.New("srdag: no matching interface for port")
)

func tokenMismatchf(edgeLabel string, prodTotal, consTotal int64) error {
	return fmt.Errorf("%w: %s produced=%d consumed=%d", ErrTokenMismatch, edgeLabel, prodTotal, consTotal)
}
