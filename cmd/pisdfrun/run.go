// File: run.go
// Role: wires one fixture through the full C1-C11 pipeline for one
// iteration (spec.md §6's execute(graph)) and reports the result.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/spiderflow/pisdf/fifo"
	"github.com/spiderflow/pisdf/memiface"
	"github.com/spiderflow/pisdf/pisdflog"
	"github.com/spiderflow/pisdf/platform"
	"github.com/spiderflow/pisdf/runner"
	"github.com/spiderflow/pisdf/runtime"
	"github.com/spiderflow/pisdf/schedule"
	"github.com/spiderflow/pisdf/trace"
)

func runOnce(scenarioName, policyName, strategyName, tracePath, logLevel string) error {
	build, ok := fixtures[scenarioName]
	if !ok {
		return fmt.Errorf("pisdfrun: unknown scenario %q, want one of %v", scenarioName, fixtureNames())
	}
	fx := build()

	desc := &platform.Description{Clusters: []platform.Cluster{{
		Name:   "local",
		Memory: platform.SharedMemory,
		PEs:    []platform.PE{{Name: "pe0", Type: "cpu"}},
	}}}

	strategy, err := selectStrategy(strategyName)
	if err != nil {
		return err
	}
	policy, err := selectPolicy(policyName)
	if err != nil {
		return err
	}

	log := pisdflog.New("pisdfrun", hclog.LevelFromString(logLevel))
	bus := runner.NewBus()
	mem := memiface.NewArena(1 << 24)
	rn := runner.NewRunner("pe0", bus, mem, log.Named("pe0"))
	for name, k := range fx.Kernels {
		rn.Kernels[name] = k
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runners := map[string]*runner.Runner{"pe0": rn}
	faults := runtime.WatchRunners(ctx, runners)

	cost := schedule.UniformCostModel{Default: time.Millisecond, PerTokenComm: time.Microsecond}
	k, err := runtime.NewKernel(desc, cost, strategy, policy, fx.Graph.Params, bus, runners, faults, log)
	if err != nil {
		return err
	}

	result, err := k.RunIteration(ctx, fx.Graph)
	if err != nil {
		return err
	}
	bus.Send("pe0", runner.Notification{Kind: runner.Stop})

	fmt.Printf("scenario %q: %d vertices dispatched across %d PE(s), makespan=%s\n",
		scenarioName, len(result.Schedule.Assignments), len(desc.AllPEs()), result.Schedule.Makespan())
	for _, sp := range result.Schedule.SyncPoints {
		fmt.Printf("  sync: %s(%s) -> %s(%s)\n", sp.Edge.Source.Name, sp.ProducerPE, sp.Edge.Sink.Name, sp.ConsumerPE)
	}

	if tracePath != "" {
		if err := writeTrace(tracePath, result.Schedule); err != nil {
			return fmt.Errorf("%w: %v", runtime.ErrRuntimePhase, err)
		}
	}
	return nil
}

func selectStrategy(name string) (fifo.Strategy, error) {
	switch name {
	case "default":
		return fifo.DefaultStrategy{}, nil
	case "nosync":
		return fifo.DefaultNoSyncStrategy{}, nil
	case "archi":
		// Without a real multi-PE schedule available before C9 runs, an
		// ArchiAware allocation has nothing to key placement off; this
		// CLI only ever runs a single PE, so fall back to nosync.
		return fifo.DefaultNoSyncStrategy{}, nil
	default:
		return nil, fmt.Errorf("pisdfrun: unknown fifo strategy %q", name)
	}
}

func selectPolicy(name string) (runtime.SchedulePolicy, error) {
	switch name {
	case "list":
		return schedule.ListSchedule, nil
	case "eft":
		return schedule.GreedyEFT, nil
	default:
		return nil, fmt.Errorf("pisdfrun: unknown scheduling policy %q", name)
	}
}

func writeTrace(path string, sched *schedule.Schedule) error {
	t := trace.FromSchedule(sched)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".svg":
		return trace.WriteSVG(f, t, time.Microsecond)
	default:
		return trace.WriteXML(f, t)
	}
}
