// Package expr parses, normalizes, and evaluates the small arithmetic
// language used for PiSDF edge rates, delay token counts, and derived
// parameter values.
//
// An Expression is parsed once from infix text into a canonical postfix
// form (Operand/Operator elements, shunting-yard), then evaluated any
// number of times against an Environment that resolves parameter names.
// Whether an expression references a dynamic parameter is recorded at
// parse time (IsDynamic). Expressions that reference no parameter at all
// are pre-evaluated once and the cached value is reused on every
// subsequent Eval call; any parameter reference is re-resolved against
// the Environment of each Eval call.
//
// Grammar (informal):
//
//	expr       := ternary
//	ternary    := "if" "(" expr "," expr "," expr ")" | or
//	or         := and ( "or" and )*
//	and        := cmp ( "and" cmp )*
//	cmp        := sum ( ("<"|"<="|">"|">=") sum )*
//	sum        := term ( ("+"|"-") term )*
//	term       := unary ( ("*"|"/"|"%") unary )*
//	unary      := "-" unary | power
//	power      := factorial ("^" unary)?
//	factorial  := atom "!"?
//	atom       := number | ident | "(" expr ")" | func "(" args ")"
package expr
