// File: types.go
package runner

import "github.com/spiderflow/pisdf/pisdf"

// KernelFunc is a registered refinement: it reads inputParams and the
// concatenated input buffers, and writes outputParams and the output
// buffers in place (spec.md §6 register_kernel).
type KernelFunc func(inputParams []int64, outputParams []int64, inputs [][]byte, outputs [][]byte) error

// Attribute is a FIFO descriptor's ownership tag (spec.md §3).
type Attribute int

const (
	ReadOnly Attribute = iota
	ReadWriteOwn
	ReadWriteExternal
)

// FIFORef is one job's view of a FIFO: where it lives and who owns it.
type FIFORef struct {
	Address   uint64
	Size      int64
	Attribute Attribute
}

// Job is one scheduled firing, the runner-facing equivalent of spec.md
// §3's "Notification / Job message".
type Job struct {
	Index       int
	Vertex      *pisdf.Vertex
	IsConfig    bool
	InputParams []int64
	OutParamLen int
	Inputs      []FIFORef
	Outputs     []FIFORef

	// ExecutionConstraints maps an LRT name to the greatest job index on
	// that LRT which must complete before this job is runnable; an
	// absent entry means no wait is required on that LRT.
	ExecutionConstraints map[string]int64
	// NotificationFlags lists the LRTs that must be told this job
	// finished.
	NotificationFlags map[string]bool
}

// NotificationKind enumerates the message types a runner recognizes
// (spec.md §4.11 step 1). Runner.handle logs and drops any unrecognized
// type.
type NotificationKind int

const (
	StartIteration NotificationKind = iota
	EndIteration
	ClearIteration
	ResetIteration
	FinishedIteration // received only by the master
	RepeatEnable
	RepeatDisable
	Stop
	Pause
	Resume
	TraceEnable
	TraceDisable
	AddJob
	ClearJobQueue
	BroadcastJobStamp
	DelayedBroadcast
	UpdateJobStamp
)

// Notification is one message delivered to a runner's inbox.
type Notification struct {
	Kind  NotificationKind
	Job   *Job   // AddJob
	LRT   string // UpdateJobStamp / BroadcastJobStamp source
	Stamp int64  // UpdateJobStamp
}
