// File: errors.go
package platform

import "errors"

var (
	ErrEmptyDescription = errors.New("platform: description has no clusters")
	ErrDuplicatePEName  = errors.New("platform: duplicate PE name")
	ErrNoSuchPE         = errors.New("platform: no such PE")
)
