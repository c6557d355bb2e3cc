// Package optim rewrites a single-rate graph produced by srdag into an
// equivalent graph with fewer housekeeping actors, applying the fixed
// rewrite-rule pipeline of spec.md §4.7 in order: UnitaryRate, then
// ForkFork/JoinJoin/JoinFork to a fixed point, then RepeatFork,
// DuplicateDuplicate, JoinEnd, and finally InitEnd.
//
// Every rule only removes actors whose presence contributes no data
// transformation — a Fork or Join with a single real connection, two
// adjacent split/merge actors whose combination collapses to one, or an
// Init/End pair that round-trips a delay's tokens unchanged. None of
// them may alter which producer firing ultimately feeds which consumer
// firing.
package optim
