// Package pisdf defines the typed PiSDF graph model: vertices tagged by
// Subtype, rate-annotated edges with optional delays, hierarchical
// subgraphs, and interfaces.
//
// Vertices and edges live in an arena owned by their Graph (spec.md §9:
// "arena-allocated nodes addressed by dense indices"); back-references
// (Vertex.Owner, Edge.Source/Sink) are ordinary Go pointers into that
// arena rather than owning references — a Graph, not its vertices or
// edges, controls the arena's lifetime.
//
// All mutating operations enforce the per-Subtype port-count invariants
// of spec.md §3 at construction time, the way core.Graph enforces its
// loop/multi-edge/weight invariants in AddEdge.
package pisdf
