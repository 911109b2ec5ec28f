package tensor

import (
	"fmt"
	"unsafe"
)

// Blob is the host runtime's tensor binding: a dense multi-dimensional
// float array plus an equally-shaped gradient buffer.
//
// The host owns blob memory for the lifetime of the execution graph and
// hands layers ordered blob lists per hook call. Layers read and write
// through the accessors below and must not retain a blob reference
// beyond the duration of a single call.
type Blob struct {
	data  []byte
	diff  []byte
	shape Shape
	dtype DataType
}

// NewBlob creates a blob with the given shape and type.
// Data and gradient buffers are allocated and zeroed.
func NewBlob(shape Shape, dtype DataType) (*Blob, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * dtype.Size()
	return &Blob{
		data:  make([]byte, byteSize),
		diff:  make([]byte, byteSize),
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// FromFloat32 creates a Float32 blob initialized with the given values.
// len(values) must equal the shape's element count.
func FromFloat32(values []float32, shape Shape) (*Blob, error) {
	b, err := NewBlob(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(values) != b.NumElements() {
		return nil, fmt.Errorf("value count %d does not match shape %v (%d elements)",
			len(values), shape, b.NumElements())
	}
	copy(b.AsFloat32(), values)
	return b, nil
}

// FromFloat64 creates a Float64 blob initialized with the given values.
// len(values) must equal the shape's element count.
func FromFloat64(values []float64, shape Shape) (*Blob, error) {
	b, err := NewBlob(shape, Float64)
	if err != nil {
		return nil, err
	}
	if len(values) != b.NumElements() {
		return nil, fmt.Errorf("value count %d does not match shape %v (%d elements)",
			len(values), shape, b.NumElements())
	}
	copy(b.AsFloat64(), values)
	return b, nil
}

// Shape returns the blob's shape.
func (b *Blob) Shape() Shape {
	return b.shape
}

// DType returns the blob's data type.
func (b *Blob) DType() DataType {
	return b.dtype
}

// NumElements returns the total number of elements.
func (b *Blob) NumElements() int {
	return b.shape.NumElements()
}

// ByteSize returns the memory size of the data buffer in bytes.
func (b *Blob) ByteSize() int {
	return b.NumElements() * b.dtype.Size()
}

// Reshape changes the blob's shape, reallocating the data and gradient
// buffers when the element count grows beyond the current capacity.
// Buffer contents are not preserved.
func (b *Blob) Reshape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * b.dtype.Size()
	if cap(b.data) < byteSize || cap(b.diff) < byteSize {
		b.data = make([]byte, byteSize)
		b.diff = make([]byte, byteSize)
	} else {
		b.data = b.data[:byteSize]
		b.diff = b.diff[:byteSize]
	}
	b.shape = shape.Clone()
	return nil
}

// AsFloat32 interprets the data buffer as []float32.
// Panics if the blob's dtype is not Float32.
func (b *Blob) AsFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("blob dtype is %s, not float32", b.dtype))
	}
	return asFloat32(b.data, b.NumElements())
}

// AsFloat64 interprets the data buffer as []float64.
// Panics if the blob's dtype is not Float64.
func (b *Blob) AsFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("blob dtype is %s, not float64", b.dtype))
	}
	return asFloat64(b.data, b.NumElements())
}

// DiffFloat32 interprets the gradient buffer as []float32.
// Panics if the blob's dtype is not Float32.
func (b *Blob) DiffFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("blob dtype is %s, not float32", b.dtype))
	}
	return asFloat32(b.diff, b.NumElements())
}

// DiffFloat64 interprets the gradient buffer as []float64.
// Panics if the blob's dtype is not Float64.
func (b *Blob) DiffFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("blob dtype is %s, not float64", b.dtype))
	}
	return asFloat64(b.diff, b.NumElements())
}

// ShareData aliases this blob's data buffer onto other's. Both blobs see
// the same values afterwards; shapes may differ as long as the element
// counts match.
func (b *Blob) ShareData(other *Blob) error {
	if b.dtype != other.dtype {
		return fmt.Errorf("cannot share data between %s and %s blobs", other.dtype, b.dtype)
	}
	if b.NumElements() != other.NumElements() {
		return fmt.Errorf("cannot share data: element count %d != %d", other.NumElements(), b.NumElements())
	}
	b.data = other.data
	return nil
}

// ShareDiff aliases this blob's gradient buffer onto other's.
func (b *Blob) ShareDiff(other *Blob) error {
	if b.dtype != other.dtype {
		return fmt.Errorf("cannot share diff between %s and %s blobs", other.dtype, b.dtype)
	}
	if b.NumElements() != other.NumElements() {
		return fmt.Errorf("cannot share diff: element count %d != %d", other.NumElements(), b.NumElements())
	}
	b.diff = other.diff
	return nil
}

func asFloat32(buf []byte, n int) []float32 {
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&buf[0])), n)
}

func asFloat64(buf []byte, n int) []float64 {
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&buf[0])), n)
}
