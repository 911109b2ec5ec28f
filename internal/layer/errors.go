package layer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrEmptyInput    = errors.New("input blob must not be empty")
	ErrNotConfigured = errors.New("layer has not been set up")
	ErrNotShaped     = errors.New("layer has not been reshaped for the current input")
	ErrUnknownLayer  = errors.New("unknown layer type")
)

// ConfigurationError reports an invalid layer setup: wrong blob binding
// arity or a malformed parameter payload.
type ConfigurationError struct {
	Layer  string // Layer type name (e.g. "ReduceSum")
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Layer, e.Reason)
}

// AxisError reports an axis specification that is invalid for the
// current input rank.
type AxisError struct {
	Axis   int
	Rank   int
	Reason string
}

// Error implements the error interface.
func (e *AxisError) Error() string {
	return fmt.Sprintf("invalid axis %d for input of rank %d: %s", e.Axis, e.Rank, e.Reason)
}
