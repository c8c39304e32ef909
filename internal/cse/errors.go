package cse

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is matched (via errors.Is) by every UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported type")

// UnsupportedTypeError reports an element type or attribute kind this package cannot hash
// or compare.
type UnsupportedTypeError struct {
	What string // "element type" or "attribute kind"
	Type string // Offending type name
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cse: unsupported %s %s", e.What, e.Type)
}

// Is makes errors.Is(err, ErrUnsupportedType) hold.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
