// File: root.go
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var scenario, policyName, strategyName, tracePath, logLevel string

	cmd := &cobra.Command{
		Use:   "pisdfrun",
		Short: "Build a fixture PiSDF graph, run one iteration, and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(scenario, policyName, strategyName, tracePath, logLevel)
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "flat", fmt.Sprintf("fixture graph to run: %s", strings.Join(fixtureNames(), ", ")))
	cmd.Flags().StringVar(&policyName, "policy", "list", "scheduling policy: list, eft")
	cmd.Flags().StringVar(&strategyName, "strategy", "nosync", "fifo allocation strategy: default, nosync, archi")
	cmd.Flags().StringVar(&tracePath, "trace", "", "write a Gantt trace to this path (.xml or .svg)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	return cmd
}

func fixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
