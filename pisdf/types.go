// File: types.go
// Role: Subtype enum, per-subtype port/RV constraints, and the
// Vertex/Edge/Delay/Graph arena types (spec.md §3).
package pisdf

import (
	"sync/atomic"

	"github.com/spiderflow/pisdf/expr"
	"github.com/spiderflow/pisdf/param"
)

// Subtype tags a Vertex with its PiSDF actor kind.
type Subtype uint8

const (
	Normal Subtype = iota
	Config
	Fork
	Join
	Head
	Tail
	Duplicate
	Repeat
	Init
	End
	DelayActor
	Graph_ // the nesting vertex kind; do not confuse with the Graph type below
	InputInterface
	OutputInterface
	ExternInputInterface
	ExternOutputInterface
)

var subtypeNames = [...]string{
	"Normal", "Config", "Fork", "Join", "Head", "Tail", "Duplicate",
	"Repeat", "Init", "End", "Delay", "Graph", "InputInterface",
	"OutputInterface", "ExternInputInterface", "ExternOutputInterface",
}

// String implements fmt.Stringer.
func (s Subtype) String() string {
	if int(s) < len(subtypeNames) {
		return subtypeNames[s]
	}
	return "Unknown"
}

// portConstraint bounds the legal in/out edge counts for a Subtype, and
// pins its repetition vector when fixedRV is non-zero.
type portConstraint struct {
	minIn, maxIn   int // maxIn < 0 means unbounded
	minOut, maxOut int // maxOut < 0 means unbounded
	fixedRV        uint32
	configOutputs  bool // may own Config (output) parameters
}

const unbounded = -1

var constraints = map[Subtype]portConstraint{
	Normal:                {0, unbounded, 0, unbounded, 0, false},
	Config:                {0, unbounded, 0, unbounded, 1, true},
	Fork:                  {1, 1, 1, unbounded, 0, false},
	Join:                  {1, unbounded, 1, 1, 0, false},
	Head:                  {1, unbounded, 1, 1, 0, false},
	Tail:                  {1, unbounded, 1, 1, 0, false},
	Duplicate:             {1, 1, 1, unbounded, 0, false},
	Repeat:                {1, 1, 1, 1, 0, false},
	Init:                  {0, 0, 1, 1, 0, false},
	End:                   {1, 1, 0, 0, 0, false},
	DelayActor:            {1, 1, 1, 1, 1, false},
	Graph_:                {0, unbounded, 0, unbounded, 0, false},
	InputInterface:        {0, 1, 1, 1, 1, false},
	OutputInterface:       {1, 1, 0, 1, 1, false},
	ExternInputInterface:  {0, 1, 1, 1, 1, false},
	ExternOutputInterface: {1, 1, 0, 1, 1, false},
}

// Vertex is one PiSDF actor, arena-allocated within its owning Graph.
type Vertex struct {
	Name    string
	Subtype Subtype
	Index   int    // dense index within Owner.Vertices
	Owner   *Graph // non-owning back-reference

	In  []*Edge
	Out []*Edge

	// InParams are the parameters this vertex's rate/repeat expressions
	// may reference (escalated lookup still applies via param.Store).
	InParams []*param.Parameter
	// OutParams are parameters this vertex (a Config actor) computes and
	// publishes into its owning graph's catalog.
	OutParams []*param.Parameter

	RV uint32 // repetition vector value; 1 (or the subtype's fixed RV) until brv.Solve runs

	// Ref points to the prototype vertex this one was cloned from during
	// single-rate transformation; nil for an original (non-cloned)
	// vertex. A prototype's Ref is never set to itself.
	Ref *Vertex

	// Instance is this clone's 0-based firing index when Ref != nil.
	Instance int

	// SubgraphRef is non-nil when Subtype == Graph_, pointing at the
	// nested hierarchy this vertex contains.
	SubgraphRef *Graph

	// Delay is non-nil when Subtype == DelayActor, carrying the queue
	// state the actor realizes.
	Delay *Delay
}

// Edge connects one producer port to one consumer port, each annotated
// by an independent rate expression (spec.md §3: rates need not be
// syntactically equal, only equal in value once resolved).
type Edge struct {
	Source     *Vertex
	SourcePort int
	SourceRate *expr.Expression

	Sink     *Vertex
	SinkPort int
	SinkRate *expr.Expression

	Delay *Delay // optional; nil for a plain (non-delayed) edge
}

// Delay holds the persistent or local queue state threaded through a
// delayed edge, plus the deterministic memory address assigned to it
// (spec.md §4.9: delay realization).
type Delay struct {
	Level       int64 // number of initial tokens
	Persistent  bool  // true: direct edge when one producer and one consumer firing, else Init/End pair; false: Init/End pair
	MemoryAddr  uint64
	SetterEdge  *Edge // producer side when explicitly split, else nil
	GetterEdge  *Edge // consumer side when explicitly split, else nil
	LevelExpr   *expr.Expression
}

var delayAddrCounter uint64

// nextDelayAddress hands out a process-wide monotonic address, giving
// delay buffers deterministic, collision-free placement order independent
// of map iteration or goroutine scheduling.
func nextDelayAddress() uint64 {
	return atomic.AddUint64(&delayAddrCounter, 1) - 1
}

// Graph is a PiSDF graph: a flat vertex/edge arena plus the parameter
// catalog handle and hierarchy links needed to navigate up to the root
// or down into nested subgraphs.
type Graph struct {
	ID   param.GraphID
	Name string

	Vertices []*Vertex
	Edges    []*Edge

	InputInterfaces  []*Vertex
	OutputInterfaces []*Vertex

	Dynamic bool // true if any contained Config actor has dynamic outputs

	Parent          *Graph // nil for the root graph
	ContainerVertex *Vertex // the Graph_ vertex in Parent that hosts this graph; nil for root

	Params *param.Store
}
