// Package layer provides the public API for the custom layer plugins
// and the name-keyed registry the host runtime instantiates them
// through.
//
// Registered layer types:
//
//	ReduceMean, ReduceProd, ReduceSum, ReduceMin, ReduceMax
//	ExpandDimsND
//
// Example:
//
//	l, err := layer.New("ReduceSum")
//	if err != nil { ... }
//	err = l.Setup(bottom, top, `{"axis": 1, "keepdims": false}`)
package layer

import (
	"github.com/petaio-tw/petaio-caffe/internal/layer"
)

// Layer is the plugin contract consumed by the host runtime: Setup,
// Reshape, Forward, Backward, invoked strictly in that order (Reshape
// re-entered on input shape changes).
type Layer = layer.Layer

// Factory constructs a fresh, unconfigured layer instance.
type Factory = layer.Factory

// ReduceOp selects the reduction operator of a Reduce layer.
type ReduceOp = layer.ReduceOp

// Supported reduction operators.
const (
	OpMean ReduceOp = layer.OpMean
	OpProd ReduceOp = layer.OpProd
	OpSum  ReduceOp = layer.OpSum
	OpMin  ReduceOp = layer.OpMin
	OpMax  ReduceOp = layer.OpMax
)

// Reduce folds one blob along a configured set of axes.
type Reduce = layer.Reduce

// ExpandDimsND inserts size-1 dimensions at configured positions.
type ExpandDimsND = layer.ExpandDimsND

// Error types.
type (
	// ConfigurationError reports wrong binding arity or malformed
	// parameters at Setup time.
	ConfigurationError = layer.ConfigurationError
	// AxisError reports an axis that is invalid for the current
	// input rank at Reshape time.
	AxisError = layer.AxisError
)

// Sentinel errors.
var (
	ErrEmptyInput    = layer.ErrEmptyInput
	ErrNotConfigured = layer.ErrNotConfigured
	ErrNotShaped     = layer.ErrNotShaped
	ErrUnknownLayer  = layer.ErrUnknownLayer
)

// Register makes a layer type available under the given name.
func Register(name string, factory Factory) {
	layer.Register(name, factory)
}

// New instantiates a layer by its registered type name.
func New(name string) (Layer, error) {
	return layer.New(name)
}

// Names returns the registered layer type names in sorted order.
func Names() []string {
	return layer.Names()
}

// NewReduce creates an unconfigured Reduce layer for the given operator.
func NewReduce(op ReduceOp) *Reduce {
	return layer.NewReduce(op)
}

// NewExpandDimsND creates an unconfigured ExpandDimsND layer.
func NewExpandDimsND() *ExpandDimsND {
	return layer.NewExpandDimsND()
}
