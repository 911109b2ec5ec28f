package cpu

import (
	"math"

	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

// SumAxes sums x over the given axes into out.
//
// Axes must be canonical (non-negative, in-range, no duplicates). The
// out buffer must already hold exactly one element per group of
// non-reduced coordinates; whether the caller's out shape keeps the
// reduced dimensions as size 1 or drops them does not change the flat
// layout, so the same kernel serves both keepdims modes.
func (cpu *CPUBackend) SumAxes(x, out *tensor.Blob, axes []int) {
	switch x.DType() {
	case tensor.Float32:
		sumAxes(x.AsFloat32(), out.AsFloat32(), x.Shape(), axes)
	case tensor.Float64:
		sumAxes(x.AsFloat64(), out.AsFloat64(), x.Shape(), axes)
	}
}

// MeanAxes computes the arithmetic mean of x over the given axes into out.
func (cpu *CPUBackend) MeanAxes(x, out *tensor.Blob, axes []int) {
	cpu.SumAxes(x, out, axes)

	n := reducedCount(x.Shape(), axes)
	switch out.DType() {
	case tensor.Float32:
		scale(out.AsFloat32(), 1/float32(n))
	case tensor.Float64:
		scale(out.AsFloat64(), 1/float64(n))
	}
}

// ProdAxes multiplies x over the given axes into out.
func (cpu *CPUBackend) ProdAxes(x, out *tensor.Blob, axes []int) {
	switch x.DType() {
	case tensor.Float32:
		prodAxes(x.AsFloat32(), out.AsFloat32(), x.Shape(), axes)
	case tensor.Float64:
		prodAxes(x.AsFloat64(), out.AsFloat64(), x.Shape(), axes)
	}
}

// MinAxes takes the minimum of x over the given axes into out.
func (cpu *CPUBackend) MinAxes(x, out *tensor.Blob, axes []int) {
	switch x.DType() {
	case tensor.Float32:
		extremumAxes(x.AsFloat32(), out.AsFloat32(), x.Shape(), axes, float32(math.Inf(1)), less[float32])
	case tensor.Float64:
		extremumAxes(x.AsFloat64(), out.AsFloat64(), x.Shape(), axes, math.Inf(1), less[float64])
	}
}

// MaxAxes takes the maximum of x over the given axes into out.
func (cpu *CPUBackend) MaxAxes(x, out *tensor.Blob, axes []int) {
	switch x.DType() {
	case tensor.Float32:
		extremumAxes(x.AsFloat32(), out.AsFloat32(), x.Shape(), axes, float32(math.Inf(-1)), greater[float32])
	case tensor.Float64:
		extremumAxes(x.AsFloat64(), out.AsFloat64(), x.Shape(), axes, math.Inf(-1), greater[float64])
	}
}

// reducedCount returns the number of elements folded into each output
// position, i.e. the product of the reduced dimension sizes.
func reducedCount(shape tensor.Shape, axes []int) int {
	n := 1
	for _, a := range axes {
		n *= shape[a]
	}
	return n
}

// axisMask returns a per-dimension flag marking the reduced axes.
func axisMask(rank int, axes []int) []bool {
	mask := make([]bool, rank)
	for _, a := range axes {
		mask[a] = true
	}
	return mask
}

// groupStrides computes flat output strides for the reduction: the
// strides of the input shape with every reduced dimension collapsed
// to size 1.
func groupStrides(shape tensor.Shape, axes []int) []int {
	outShape := shape.Clone()
	for _, a := range axes {
		outShape[a] = 1
	}
	return outShape.ComputeStrides()
}

// groupIndex maps a flat input element index to its flat output
// (reduction group) index by dropping the coordinates of reduced axes.
func groupIndex(i int, strides, outStrides []int, reduced []bool) int {
	outIdx := 0
	for d := 0; d < len(strides); d++ {
		coord := i / strides[d]
		i %= strides[d]
		if !reduced[d] {
			outIdx += coord * outStrides[d]
		}
	}
	return outIdx
}

func sumAxes[F float](data, result []F, shape tensor.Shape, axes []int) {
	for i := range result {
		result[i] = 0
	}

	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	for i := range data {
		result[groupIndex(i, strides, outStrides, reduced)] += data[i]
	}
}

func prodAxes[F float](data, result []F, shape tensor.Shape, axes []int) {
	for i := range result {
		result[i] = 1
	}

	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	for i := range data {
		result[groupIndex(i, strides, outStrides, reduced)] *= data[i]
	}
}

func extremumAxes[F float](data, result []F, shape tensor.Shape, axes []int, init F, better func(a, b F) bool) {
	for i := range result {
		result[i] = init
	}

	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	for i := range data {
		outIdx := groupIndex(i, strides, outStrides, reduced)
		if better(data[i], result[outIdx]) {
			result[outIdx] = data[i]
		}
	}
}

func scale[F float](data []F, factor F) {
	for i := range data {
		data[i] *= factor
	}
}

func less[F float](a, b F) bool { return a < b }

func greater[F float](a, b F) bool { return a > b }
