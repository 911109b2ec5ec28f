// Package tensor provides the public API for the blob bindings the
// host runtime hands to custom layers.
//
// A Blob is a borrowed view over host-owned memory: a dense float
// array plus an equally-shaped gradient buffer. Layers never own blob
// memory; they read and write through accessors for the duration of a
// single hook call.
//
// Example:
//
//	bottom, _ := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	top, _ := tensor.NewBlob(tensor.Shape{2}, tensor.Float32)
package tensor

import (
	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

// Shape represents the dimensions of a blob.
// Example: Shape{2, 3, 4} represents a 3D blob with dimensions 2×3×4.
type Shape = tensor.Shape

// DataType represents the underlying data type of a blob.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Blob is the host runtime's tensor binding: data plus gradient.
type Blob = tensor.Blob

// NewBlob creates a blob with the given shape and type, with zeroed
// data and gradient buffers.
func NewBlob(shape Shape, dtype DataType) (*Blob, error) {
	return tensor.NewBlob(shape, dtype)
}

// FromFloat32 creates a Float32 blob initialized with the given values.
func FromFloat32(values []float32, shape Shape) (*Blob, error) {
	return tensor.FromFloat32(values, shape)
}

// FromFloat64 creates a Float64 blob initialized with the given values.
func FromFloat64(values []float64, shape Shape) (*Blob, error) {
	return tensor.FromFloat64(values, shape)
}

// CanonicalAxis resolves an axis index against a rank, mapping
// negative indices the NumPy way (-1 = last dimension).
func CanonicalAxis(axis, rank int) (int, error) {
	return tensor.CanonicalAxis(axis, rank)
}
