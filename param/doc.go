// Package param holds the Static/Dynamic/Inherited/Derived parameter
// values scoped to a PiSDF graph instance.
//
// Parameters are identified by (owning graph, lowercase name) and are
// looked up through Store, which escalates an unresolved lookup to the
// looked-up graph's ancestors (see spec.md §3, Parameter). Store is
// safe for concurrent use: per §5 of the runtime's concurrency model,
// only the master goroutine writes Dynamic parameter values, and it
// does so only in response to config-actor job messages — but readers
// (expression evaluation on any goroutine, in principle) must still see
// a consistent value.
package param
