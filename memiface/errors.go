// File: errors.go
package memiface

import "errors"

var (
	ErrOutOfMemory = errors.New("memiface: arena exhausted")
	ErrBadAddress  = errors.New("memiface: address out of range")
)
