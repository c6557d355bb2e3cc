// Package memiface defines the narrow memory contract the runtime uses
// to back FIFO buffers (spec.md §5 external interfaces) and provides one
// in-memory reference implementation, Arena.
package memiface
