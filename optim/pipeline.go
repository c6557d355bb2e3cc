// File: pipeline.go
// Role: the fixed-order rule pipeline entry point (spec.md §4.7).
package optim

import (
	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/pisdf"
)

// Optimize rewrites g in place, applying every rule in spec order. It
// returns how many rule stages (counting each changing pass of the
// ForkFork/JoinJoin/JoinFork loop separately) changed the graph, not how
// many individual rewrites were made, purely for diagnostics; callers
// don't need it to interpret correctness.
func Optimize(g *pisdf.Graph, env expr.Environment) (int, error) {
	total := 0

	if changed, err := unitaryRate(g, env); err != nil {
		return total, err
	} else if changed {
		total++
	}

	for {
		changed, err := forkForkJoinJoin(g, env)
		if err != nil {
			return total, err
		}
		if !changed {
			break
		}
		total++
	}

	if changed, err := repeatFork(g, env); err != nil {
		return total, err
	} else if changed {
		total++
	}

	if changed, err := duplicateDuplicate(g, env); err != nil {
		return total, err
	} else if changed {
		total++
	}

	if changed, err := joinEnd(g, env); err != nil {
		return total, err
	} else if changed {
		total++
	}

	if changed, err := initEnd(g, env); err != nil {
		return total, err
	} else if changed {
		total++
	}

	return total, nil
}
