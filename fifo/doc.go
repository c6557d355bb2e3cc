// Package fifo assigns virtual addresses, sizes, and reference counts to
// the FIFO buffers backing every edge of a single-rate graph produced by
// srdag.Transform (spec.md §4.8). A Strategy never changes graph
// topology; it only annotates edges with placement metadata consumed by
// the runtime's memiface.Interface.
package fifo
