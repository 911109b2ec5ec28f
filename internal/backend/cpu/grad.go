package cpu

import (
	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

// BroadcastGrad writes bottom's gradient buffer as a broadcast copy of
// top's gradient buffer, scaled by scale. scale = 1 gives the sum
// backward rule; scale = 1/n (n = reduced element count) gives mean.
func (cpu *CPUBackend) BroadcastGrad(top, bottom *tensor.Blob, axes []int, scale float64) {
	switch bottom.DType() {
	case tensor.Float32:
		broadcastGrad(top.DiffFloat32(), bottom.DiffFloat32(), bottom.Shape(), axes, float32(scale))
	case tensor.Float64:
		broadcastGrad(top.DiffFloat64(), bottom.DiffFloat64(), bottom.Shape(), axes, scale)
	}
}

// ProdGrad writes the product-reduction gradient: each input position
// receives the top gradient times the product of the other elements in
// its reduction group.
//
// The partial is computed from each group's zero count and nonzero
// product rather than by dividing the group product by the element, so
// inputs containing zeros get exact gradients: with one zero in a group
// only the zero position sees a nonzero gradient, with two or more
// every position's gradient vanishes.
func (cpu *CPUBackend) ProdGrad(top, bottom *tensor.Blob, axes []int) {
	switch bottom.DType() {
	case tensor.Float32:
		prodGrad(bottom.AsFloat32(), top.DiffFloat32(), bottom.DiffFloat32(), bottom.Shape(), axes)
	case tensor.Float64:
		prodGrad(bottom.AsFloat64(), top.DiffFloat64(), bottom.DiffFloat64(), bottom.Shape(), axes)
	}
}

// ExtremumGrad writes the min/max subgradient: the top gradient is
// routed to every input position whose value attains its group's
// extremum (held in top's data buffer), zero elsewhere. Ties all
// receive the full gradient.
func (cpu *CPUBackend) ExtremumGrad(top, bottom *tensor.Blob, axes []int) {
	switch bottom.DType() {
	case tensor.Float32:
		extremumGrad(bottom.AsFloat32(), top.AsFloat32(), top.DiffFloat32(), bottom.DiffFloat32(), bottom.Shape(), axes)
	case tensor.Float64:
		extremumGrad(bottom.AsFloat64(), top.AsFloat64(), top.DiffFloat64(), bottom.DiffFloat64(), bottom.Shape(), axes)
	}
}

func broadcastGrad[F float](topDiff, bottomDiff []F, shape tensor.Shape, axes []int, scale F) {
	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	for i := range bottomDiff {
		bottomDiff[i] = topDiff[groupIndex(i, strides, outStrides, reduced)] * scale
	}
}

func prodGrad[F float](data, topDiff, bottomDiff []F, shape tensor.Shape, axes []int) {
	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	// Pass 1: per-group zero count and product of nonzero elements.
	zeros := make([]int, len(topDiff))
	nonzeroProd := make([]F, len(topDiff))
	for i := range nonzeroProd {
		nonzeroProd[i] = 1
	}
	for i := range data {
		outIdx := groupIndex(i, strides, outStrides, reduced)
		if data[i] == 0 {
			zeros[outIdx]++
		} else {
			nonzeroProd[outIdx] *= data[i]
		}
	}

	// Pass 2: d(prod)/dx_i = product of the group's other elements.
	for i := range bottomDiff {
		outIdx := groupIndex(i, strides, outStrides, reduced)
		var partial F
		switch {
		case zeros[outIdx] == 0:
			partial = nonzeroProd[outIdx] / data[i]
		case zeros[outIdx] == 1 && data[i] == 0:
			partial = nonzeroProd[outIdx]
		default:
			partial = 0
		}
		bottomDiff[i] = topDiff[outIdx] * partial
	}
}

func extremumGrad[F float](data, topData, topDiff, bottomDiff []F, shape tensor.Shape, axes []int) {
	strides := shape.ComputeStrides()
	outStrides := groupStrides(shape, axes)
	reduced := axisMask(len(shape), axes)

	for i := range bottomDiff {
		outIdx := groupIndex(i, strides, outStrides, reduced)
		if data[i] == topData[outIdx] {
			bottomDiff[i] = topDiff[outIdx]
		} else {
			bottomDiff[i] = 0
		}
	}
}
