// Package cpu implements the CPU compute kernels behind the custom
// layers: multi-axis reductions over blob data and the matching
// gradient kernels for the backward pass.
//
// Kernels write into pre-shaped destination buffers supplied by the
// caller; they allocate nothing and assume axis lists have already been
// canonicalized and validated by the layer.
package cpu

// CPUBackend executes reduction kernels on the CPU.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// float is the element-type constraint shared by all kernels.
type float interface {
	~float32 | ~float64
}
