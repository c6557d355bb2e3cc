// Package runner implements the per-PE cooperative executor (spec.md
// §4.11, C11): a single-threaded loop that drains a notification queue,
// runs jobs once their cross-LRT constraints are satisfied, and
// publishes job-stamp updates so other runners can unblock.
package runner
