package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for expression parsing and evaluation.
var (
	// ErrIllFormed indicates the text failed tokenization or parenthesis
	// balancing, or placed a restricted binary operator adjacent to
	// another, at either end, or immediately before ")".
	ErrIllFormed = errors.New("expr: ill-formed expression")

	// ErrUnknownSymbol indicates a token could not be classified as an
	// operator, function, number, or a parameter the Environment resolves.
	ErrUnknownSymbol = errors.New("expr: unknown symbol")
)

// illFormedf wraps ErrIllFormed with positional/textual context.
func illFormedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIllFormed, fmt.Sprintf(format, args...))
}

// unknownSymbolf wraps ErrUnknownSymbol with the offending token.
func unknownSymbolf(tok string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSymbol, tok)
}
