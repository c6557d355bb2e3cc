// File: types.go
// Role: Parameter, Kind, and GraphID — the addressing and variant model
// for C2. GraphID is an opaque handle assigned by package pisdf so that
// param never imports pisdf (it would otherwise be a cycle: pisdf holds
// parameters, param would hold graphs).
package param

import "github.com/spiderflow/pisdf/expr"

// GraphID identifies the owning graph of a Parameter without param
// needing to import the pisdf package.
type GraphID uint64

// Kind tags which of the four parameter variants a Parameter is.
type Kind uint8

const (
	// Static parameters carry a fixed i64 value set at construction.
	Static Kind = iota
	// Dynamic parameters are written by a configuration actor's output
	// during the iteration in which they resolve.
	Dynamic
	// Inherited parameters delegate their value to a parent-graph
	// parameter at evaluation time.
	Inherited
	// Derived parameters compute their value from an expression over
	// other parameters (its operands).
	Derived
)

// String implements fmt.Stringer for readable diagnostics/traces.
func (k Kind) String() string {
	switch k {
	case Static:
		return "Static"
	case Dynamic:
		return "Dynamic"
	case Inherited:
		return "Inherited"
	case Derived:
		return "Derived"
	default:
		return "Unknown"
	}
}

// Parameter is one entry of a graph's parameter vector.
//
// Name is unique within Owner (enforced by Store.Create*). Value
// resolution is never performed by reading the fields directly — always
// go through Store.Value, which applies the delegation rules for
// Inherited/Derived and the "written this iteration" rule for Dynamic.
type Parameter struct {
	Name  string
	Owner GraphID
	Kind  Kind

	staticValue int64

	dynCurrent  int64
	dynResolved bool

	inherited *Parameter // valid when Kind == Inherited

	derivedExpr     *expr.Expression
	derivedOperands []*Parameter // valid when Kind == Derived
}
