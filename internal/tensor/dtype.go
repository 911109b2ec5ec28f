// Package tensor provides the blob types shared between the host runtime
// and the custom layers in this repository.
package tensor

// DataType represents runtime type information for blobs.
//
// The host instantiates every layer for single or double precision, so
// only the two float types exist here.
type DataType int

// Supported data types for blobs.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}
