package dependency

import "github.com/spiderflow/pisdf/pisdf"

// FiringRange names an inclusive [Low, High] band of firing indices of
// Vertex, within the subgraph invocation identified by Instance (0 when
// Vertex's owning graph has no enclosing container, i.e. it is the root
// graph or Vertex was reached without crossing a hierarchy boundary).
type FiringRange struct {
	Vertex   *pisdf.Vertex
	Instance int64
	Low, High int64

	// Unresolved is true when this range crosses an extern interface:
	// the data originates outside the modeled application, so Vertex is
	// nil and callers should treat it as always available.
	Unresolved bool
}

// Dependency is the result of resolving one consumed port of one firing:
// zero or more producer FiringRanges, plus how many of the requested
// tokens were already available from the edge's delay content.
type Dependency struct {
	Ranges     []FiringRange
	InitTokens int64
}
