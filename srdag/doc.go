// Package srdag expands a hierarchical, multi-rate PiSDF graph into a
// flat single-rate graph: every actor fires exactly once per clone, and
// every edge carries exactly one token count on both ends (spec.md
// §4.6).
//
// Transformation proceeds as a worklist of Jobs, one per hierarchy
// level. Discovery clones every ordinary vertex of a level RV times and
// recurses into each instance of a Graph_ vertex as its own child Job;
// linking then walks every edge of every level, resolving each endpoint
// to its concrete clone sequence (descending through nested subgraphs
// via resolveProducer/resolveConsumer when an endpoint is a Graph_
// vertex) and reconciling mismatched per-instance token counts by
// inserting Fork or Join actors along a two-pointer merge of the
// producer and consumer token streams — the same token-matching approach
// PREESM's srdag::Transformation uses internally.
//
// Delayed edges are realized either as an Init/End actor pair spliced
// into the token streams (local delay, or a persistent delay whose
// producer/consumer repeat more than once) or as a direct edge carrying
// the Delay unchanged ("persistent lift", when both sides fire exactly
// once and the buffer can be addressed statically by the FIFO
// allocator).
package srdag
