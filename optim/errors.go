package optim

import "errors"

// ErrRateUnresolved indicates a rewrite rule needed a rate comparison
// but one of the edges involved carries a non-numeric expression.
var ErrRateUnresolved = errors.New("optim: could not resolve rate for comparison")
