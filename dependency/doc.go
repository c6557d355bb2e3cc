// Package dependency resolves, for a given firing of a given vertex, the
// range of producer firings whose output it consumes (spec.md §4.5).
//
// Resolution walks outward from one consumed port: it first splits the
// requested token range between tokens already available from a delay's
// initial content and tokens that must come from an actual producer
// firing, then maps the remaining range onto the producer's firing
// indices via the two rates. When the producer is a hierarchy boundary
// (an interface vertex, or a vertex hosting a nested subgraph) the
// resolver recurses one level up or down, carrying the instance index of
// the subgraph invocation being resolved.
//
// Data that crosses an Extern*Interface is outside the modeled
// application; Resolve reports it as an Unresolved range rather than
// recursing further, so callers treat it as always available.
package dependency
