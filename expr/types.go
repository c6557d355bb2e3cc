// File: types.go
// Role: Postfix element model (Operand/Operator), the Expression type,
// and the Environment contract expressions evaluate against.
package expr

// Environment resolves a parameter name to its current numeric value.
//
// Lookup's dynamic result reports whether the named parameter's ancestor
// chain ends in a Dynamic parameter whose value may change between
// iterations; a
// static Expression is one that touches no such name (see IsDynamic on
// Expression). Implementations are expected to be cheap — Environment is
// queried once per parameter reference, per Eval call.
type Environment interface {
	// Lookup returns the current value of name, whether it is dynamic,
	// and an error if name is not resolvable in this environment.
	Lookup(name string) (value int64, dynamic bool, err error)
}

// EnvFunc adapts a plain function to the Environment interface.
type EnvFunc func(name string) (int64, bool, error)

// Lookup implements Environment.
func (f EnvFunc) Lookup(name string) (int64, bool, error) { return f(name) }

// kind tags a postfix Element as either an operand or an operator.
type kind uint8

const (
	kindValue kind = iota
	kindParam
	kindOperator
)

// opKind identifies which operator/function an Element represents.
type opKind uint8

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opMod
	opPow
	opFactorial
	opLT
	opLE
	opGT
	opGE
	opAnd
	opOr
	opIf // ternary, arity 3
	opCos
	opSin
	opTan
	opCosh
	opSinh
	opTanh
	opExp
	opLog
	opLog2
	opLog10
	opCeil
	opFloor
	opAbs
	opSqrt
	opMin
	opMax
	opUnaryMinus
)

// opInfo describes arity, precedence, and associativity for an opKind.
type opInfo struct {
	arity      int
	precedence int
	rightAssoc bool
	isFunction bool
	symbol     string
}

// opTable is indexed by opKind and is the single source of truth for
// parsing (shunting-yard) and evaluation (stack arity).
var opTable = map[opKind]opInfo{
	opFactorial:  {arity: 1, precedence: 6, rightAssoc: true, symbol: "!"},
	opPow:        {arity: 2, precedence: 5, rightAssoc: true, symbol: "^"},
	opUnaryMinus: {arity: 1, precedence: 5, rightAssoc: true, symbol: "u-"},
	opMul:        {arity: 2, precedence: 4, symbol: "*"},
	opDiv:        {arity: 2, precedence: 4, symbol: "/"},
	opMod:        {arity: 2, precedence: 4, symbol: "%"},
	opAdd:        {arity: 2, precedence: 3, symbol: "+"},
	opSub:        {arity: 2, precedence: 3, symbol: "-"},
	opLT:         {arity: 2, precedence: 2, symbol: "<"},
	opLE:         {arity: 2, precedence: 2, symbol: "<="},
	opGT:         {arity: 2, precedence: 2, symbol: ">"},
	opGE:         {arity: 2, precedence: 2, symbol: ">="},
	opAnd:        {arity: 2, precedence: 1, symbol: "and"},
	opOr:         {arity: 2, precedence: 1, symbol: "or"},
	opIf:         {arity: 3, precedence: 0, isFunction: true, symbol: "if"},
	opCos:        {arity: 1, precedence: 7, isFunction: true, symbol: "cos"},
	opSin:        {arity: 1, precedence: 7, isFunction: true, symbol: "sin"},
	opTan:        {arity: 1, precedence: 7, isFunction: true, symbol: "tan"},
	opCosh:       {arity: 1, precedence: 7, isFunction: true, symbol: "cosh"},
	opSinh:       {arity: 1, precedence: 7, isFunction: true, symbol: "sinh"},
	opTanh:       {arity: 1, precedence: 7, isFunction: true, symbol: "tanh"},
	opExp:        {arity: 1, precedence: 7, isFunction: true, symbol: "exp"},
	opLog:        {arity: 1, precedence: 7, isFunction: true, symbol: "log"},
	opLog2:       {arity: 1, precedence: 7, isFunction: true, symbol: "log2"},
	opLog10:      {arity: 1, precedence: 7, isFunction: true, symbol: "log10"},
	opCeil:       {arity: 1, precedence: 7, isFunction: true, symbol: "ceil"},
	opFloor:      {arity: 1, precedence: 7, isFunction: true, symbol: "floor"},
	opAbs:        {arity: 1, precedence: 7, isFunction: true, symbol: "abs"},
	opSqrt:       {arity: 1, precedence: 7, isFunction: true, symbol: "sqrt"},
	opMin:        {arity: 2, precedence: 7, isFunction: true, symbol: "min"},
	opMax:        {arity: 2, precedence: 7, isFunction: true, symbol: "max"},
}

// functionByName maps a lowercase identifier to its opKind when it names
// a supported function; ok is false for non-function identifiers.
var functionByName = map[string]opKind{
	"if": opIf, "cos": opCos, "sin": opSin, "tan": opTan,
	"cosh": opCosh, "sinh": opSinh, "tanh": opTanh,
	"exp": opExp, "log": opLog, "log2": opLog2, "log10": opLog10,
	"ceil": opCeil, "floor": opFloor, "abs": opAbs, "sqrt": opSqrt,
	"min": opMin, "max": opMax,
}

// Element is one node of an Expression's canonical postfix form.
type Element struct {
	kind  kind
	value float64 // valid when kind == kindValue
	param string  // valid when kind == kindParam
	op    opKind  // valid when kind == kindOperator
}

// Expression is the canonical postfix form of a parsed arithmetic text.
//
// Pure-literal expressions (no parameter references at all) are
// pre-evaluated once at parse time; Eval/EvalInt then return the cached
// value without walking the postfix form again. An expression that
// references any parameter — even a non-dynamic one, per IsDynamic —
// still re-resolves it against whatever Environment each Eval call is
// given.
type Expression struct {
	postfix   []Element
	source    string
	dynamic   bool
	static    bool // true once cachedVal has been computed
	cachedVal float64
}

// Source returns the original infix text this Expression was parsed from.
func (e *Expression) Source() string { return e.source }

// IsDynamic reports whether e references a parameter whose ancestor
// chain ends in a Dynamic parameter — see spec: an expression is static
// iff it references no such parameter.
func (e *Expression) IsDynamic() bool { return e.dynamic }
