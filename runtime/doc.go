// Package runtime implements the JIT master-slave iteration loop
// (spec.md §4.10, C10): it drives C4 (BRV), C6 (SR transform), C7
// (optimizer), C8 (FIFO allocation), C9 (scheduling), and C11 (runner
// dispatch) for one iteration of a PiSDF application, then feeds Config
// actors' emitted parameter values back into the parameter store.
package runtime
