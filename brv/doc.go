// Package brv computes the Basic Repetition Vector of a PiSDF graph: the
// minimal positive integer firing count for every vertex such that every
// edge is balanced (total tokens produced equals total tokens consumed
// over one graph iteration).
//
// The solver works per connected component (spec.md §4.4), propagating
// rational ratios outward from an arbitrary root vertex along each edge's
// resolved rate pair, then scaling the whole component to integers via
// the LCM of the accumulated denominators. Vertices whose Subtype fixes
// their repetition (Config actors, interfaces, delay actors) anchor an
// additional scaling pass so the final vector honors that fixed value.
package brv
