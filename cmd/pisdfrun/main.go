// File: main.go
// Role: process entry point; maps RunIteration failures onto spec.md
// §6's exit codes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spiderflow/pisdf/runtime"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pisdfrun:", err)
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, runtime.ErrTransformation):
		return 2
	case errors.Is(err, runtime.ErrSchedulingPhase):
		return 3
	case errors.Is(err, runtime.ErrRuntimePhase):
		return 4
	default:
		return 1
	}
}
