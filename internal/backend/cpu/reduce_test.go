package cpu

import (
	"math"
	"testing"

	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

// newF32 builds a float32 blob for kernel tests, failing the test on error.
func newF32(t *testing.T, values []float32, shape tensor.Shape) *tensor.Blob {
	t.Helper()
	b, err := tensor.FromFloat32(values, shape)
	if err != nil {
		t.Fatalf("FromFloat32: %v", err)
	}
	return b
}

// newOut builds an uninitialized output blob of the given shape.
func newOut(t *testing.T, shape tensor.Shape, dtype tensor.DataType) *tensor.Blob {
	t.Helper()
	b, err := tensor.NewBlob(shape, dtype)
	if err != nil {
		t.Fatalf("NewBlob: %v", err)
	}
	return b
}

func assertFloat32s(t *testing.T, got, want []float32, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", msg, len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("%s: index %d = %v, want %v", msg, i, got[i], want[i])
		}
	}
}

func TestSumAxes_1D(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})
	out := newOut(t, tensor.Shape{}, tensor.Float32)

	backend.SumAxes(x, out, []int{0})
	assertFloat32s(t, out.AsFloat32(), []float32{10}, "sum over [4]")
}

func TestSumAxes_2D(t *testing.T) {
	backend := New()

	// [[1, 2, 3], [4, 5, 6]]
	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := newOut(t, tensor.Shape{2}, tensor.Float32)
	backend.SumAxes(x, out, []int{1})
	assertFloat32s(t, out.AsFloat32(), []float32{6, 15}, "sum axis 1")

	out = newOut(t, tensor.Shape{3}, tensor.Float32)
	backend.SumAxes(x, out, []int{0})
	assertFloat32s(t, out.AsFloat32(), []float32{5, 7, 9}, "sum axis 0")
}

func TestSumAxes_MultiAxis(t *testing.T) {
	backend := New()

	// Shape [2, 3, 4], values 1..24; reducing axes {0, 2} leaves [3].
	values := make([]float32, 24)
	for i := range values {
		values[i] = float32(i + 1)
	}
	x := newF32(t, values, tensor.Shape{2, 3, 4})
	out := newOut(t, tensor.Shape{3}, tensor.Float32)

	backend.SumAxes(x, out, []int{0, 2})
	// Group j sums x[i][j][k] over i and k. For j=0 that is
	// (1+2+3+4) + (13+14+15+16) = 68; each next j adds 32.
	assertFloat32s(t, out.AsFloat32(), []float32{68, 100, 132}, "sum axes {0,2}")
}

func TestSumAxes_KeepdimsLayoutMatches(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	// The flat result is identical whether the caller's out shape is
	// [2] or [2, 1]; only the shape metadata differs.
	flat := newOut(t, tensor.Shape{2}, tensor.Float32)
	kept := newOut(t, tensor.Shape{2, 1}, tensor.Float32)
	backend.SumAxes(x, flat, []int{1})
	backend.SumAxes(x, kept, []int{1})
	assertFloat32s(t, kept.AsFloat32(), flat.AsFloat32(), "keepdims layout")
}

func TestMeanAxes(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := newOut(t, tensor.Shape{2}, tensor.Float32)

	backend.MeanAxes(x, out, []int{1})
	assertFloat32s(t, out.AsFloat32(), []float32{2, 5}, "mean axis 1")
}

func TestProdAxes(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := newOut(t, tensor.Shape{2}, tensor.Float32)

	backend.ProdAxes(x, out, []int{1})
	assertFloat32s(t, out.AsFloat32(), []float32{6, 120}, "prod axis 1")
}

func TestMinMaxAxes(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := newOut(t, tensor.Shape{2}, tensor.Float32)
	backend.MinAxes(x, out, []int{1})
	assertFloat32s(t, out.AsFloat32(), []float32{1, 4}, "min axis 1")

	backend.MaxAxes(x, out, []int{1})
	assertFloat32s(t, out.AsFloat32(), []float32{3, 6}, "max axis 1")
}

func TestMinMaxAxes_Negatives(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{-1, -5, 2, 0}, tensor.Shape{4})
	out := newOut(t, tensor.Shape{}, tensor.Float32)

	backend.MinAxes(x, out, []int{0})
	assertFloat32s(t, out.AsFloat32(), []float32{-5}, "min with negatives")

	backend.MaxAxes(x, out, []int{0})
	assertFloat32s(t, out.AsFloat32(), []float32{2}, "max with negatives")
}

func TestReduceAllAxes(t *testing.T) {
	backend := New()

	x := newF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out := newOut(t, tensor.Shape{}, tensor.Float32)
	axes := []int{0, 1}

	backend.SumAxes(x, out, axes)
	assertFloat32s(t, out.AsFloat32(), []float32{21}, "sum all")

	backend.MeanAxes(x, out, axes)
	assertFloat32s(t, out.AsFloat32(), []float32{3.5}, "mean all")

	backend.ProdAxes(x, out, axes)
	assertFloat32s(t, out.AsFloat32(), []float32{720}, "prod all")

	backend.MinAxes(x, out, axes)
	assertFloat32s(t, out.AsFloat32(), []float32{1}, "min all")

	backend.MaxAxes(x, out, axes)
	assertFloat32s(t, out.AsFloat32(), []float32{6}, "max all")
}

func TestSumAxes_Float64(t *testing.T) {
	backend := New()

	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}
	out := newOut(t, tensor.Shape{2}, tensor.Float64)

	backend.SumAxes(x, out, []int{1})
	got := out.AsFloat64()
	want := []float64{6, 15}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("float64 sum index %d = %v, want %v", i, got[i], want[i])
		}
	}
}
