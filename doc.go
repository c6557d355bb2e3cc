// Package pisdf is the module root for a Parameterized Synchronous
// Dataflow (PiSDF) runtime: graph construction and repetition-vector
// solving (pisdf, brv), single-rate transformation and peephole
// optimization (srdag, optim), FIFO allocation and scheduling (fifo,
// schedule), and the JIT master-slave execution loop that dispatches
// actor firings to per-PE runners (runtime, runner).
//
// See cmd/pisdfrun for a runnable end-to-end example.
package pisdf
