// Package schedule maps the vertices of a single-rate graph onto the PEs
// of a platform.Description, producing a per-vertex start/finish time and
// the cross-PE synchronization points the runtime must honor (spec.md
// §4.9). Two policies are provided: ListSchedule (static-priority list
// scheduling) and GreedyEFT (earliest-finish-time).
package schedule
