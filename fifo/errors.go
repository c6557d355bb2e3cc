// File: errors.go
package fifo

import "errors"

var (
	// ErrRateUnresolved is returned when an edge's rate expression can't
	// be evaluated under the environment passed to Allocate.
	ErrRateUnresolved = errors.New("fifo: edge rate unresolved")
)
