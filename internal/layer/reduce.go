package layer

import (
	"fmt"
	"sort"

	"github.com/petaio-tw/petaio-caffe/internal/backend/cpu"
	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

// ReduceOp selects the reduction operator of a Reduce layer.
type ReduceOp int

// Supported reduction operators.
const (
	OpMean ReduceOp = iota
	OpProd
	OpSum
	OpMin
	OpMax
)

// String returns the registered layer type name for the operator.
func (op ReduceOp) String() string {
	switch op {
	case OpMean:
		return "ReduceMean"
	case OpProd:
		return "ReduceProd"
	case OpSum:
		return "ReduceSum"
	case OpMin:
		return "ReduceMin"
	case OpMax:
		return "ReduceMax"
	default:
		return "ReduceUnknown"
	}
}

func init() {
	for _, op := range []ReduceOp{OpMean, OpProd, OpSum, OpMin, OpMax} {
		op := op // per-iteration copy: the go directive is below 1.22
		Register(op.String(), func() Layer { return NewReduce(op) })
	}
}

// Reduce folds one blob along a configured set of axes with a single
// reduction operator: mean, product, sum, minimum, or maximum.
//
// Forward:
//
//	top = fold(bottom, axes, keepdims)
//
// Backward (per operator, bottom diff always has bottom's shape):
//
//	sum:     grad_x = broadcast(grad_y)
//	mean:    grad_x = broadcast(grad_y) / n          (n = reduced element count)
//	prod:    grad_x[i] = grad_y * prod(group \ {i})
//	min/max: grad_y routed to the positions attaining the extremum
type Reduce struct {
	op      ReduceOp
	backend *cpu.CPUBackend
	params  ReduceParams

	// Set by Reshape for the current input shape.
	axes        []int // canonical, ascending
	bottomShape tensor.Shape

	state lifecycle
}

// NewReduce creates an unconfigured Reduce layer for the given operator.
func NewReduce(op ReduceOp) *Reduce {
	return &Reduce{op: op, backend: cpu.New()}
}

// Setup validates the blob binding arity and parses the (axis,
// keepdims) parameter payload.
func (r *Reduce) Setup(bottom, top []*tensor.Blob, params string) error {
	if len(bottom) != 1 {
		return &ConfigurationError{
			Layer:  r.op.String(),
			Reason: fmt.Sprintf("expected exactly 1 bottom blob, got %d", len(bottom)),
		}
	}
	if len(top) != 1 {
		return &ConfigurationError{
			Layer:  r.op.String(),
			Reason: fmt.Sprintf("expected exactly 1 top blob, got %d", len(top)),
		}
	}

	parsed, err := parseReduceParams(r.op.String(), params)
	if err != nil {
		return err
	}

	r.params = parsed
	r.state = stateConfigured
	return nil
}

// Reshape validates the axis specification against the current input
// rank and resizes the top blob to the reduced shape. The reduced axes
// collapse to size 1 when keepdims is set and are removed otherwise.
func (r *Reduce) Reshape(bottom, top []*tensor.Blob) error {
	if r.state < stateConfigured {
		return fmt.Errorf("%s: %w", r.op.String(), ErrNotConfigured)
	}
	if bottom[0].NumElements() == 0 {
		return fmt.Errorf("%s: %w", r.op.String(), ErrEmptyInput)
	}

	shape := bottom[0].Shape()
	axes, err := canonicalAxes(r.params.Axes, len(shape))
	if err != nil {
		return err
	}

	outShape := shape.Clone()
	if r.params.KeepDims {
		for _, a := range axes {
			outShape[a] = 1
		}
	} else {
		// Delete in descending order so earlier deletions do not
		// shift the remaining indices.
		for i := len(axes) - 1; i >= 0; i-- {
			outShape = append(outShape[:axes[i]], outShape[axes[i]+1:]...)
		}
	}
	if err := top[0].Reshape(outShape); err != nil {
		return fmt.Errorf("%s: reshaping top blob: %w", r.op.String(), err)
	}

	r.axes = axes
	r.bottomShape = shape.Clone()
	r.state = stateShaped
	return nil
}

// Forward computes the reduction into the pre-shaped top buffer.
func (r *Reduce) Forward(bottom, top []*tensor.Blob) error {
	if err := r.checkShaped(bottom); err != nil {
		return err
	}

	switch r.op {
	case OpMean:
		r.backend.MeanAxes(bottom[0], top[0], r.axes)
	case OpProd:
		r.backend.ProdAxes(bottom[0], top[0], r.axes)
	case OpSum:
		r.backend.SumAxes(bottom[0], top[0], r.axes)
	case OpMin:
		r.backend.MinAxes(bottom[0], top[0], r.axes)
	case OpMax:
		r.backend.MaxAxes(bottom[0], top[0], r.axes)
	}
	return nil
}

// Backward writes the bottom gradient from the top gradient using the
// operator's gradient rule. No write occurs when propagation is not
// requested for the input slot.
func (r *Reduce) Backward(top []*tensor.Blob, propagateDown []bool, bottom []*tensor.Blob) error {
	if err := r.checkShaped(bottom); err != nil {
		return err
	}
	if len(propagateDown) == 0 || !propagateDown[0] {
		return nil
	}

	switch r.op {
	case OpMean:
		n := reducedElements(r.bottomShape, r.axes)
		r.backend.BroadcastGrad(top[0], bottom[0], r.axes, 1/float64(n))
	case OpProd:
		r.backend.ProdGrad(top[0], bottom[0], r.axes)
	case OpSum:
		r.backend.BroadcastGrad(top[0], bottom[0], r.axes, 1)
	case OpMin, OpMax:
		r.backend.ExtremumGrad(top[0], bottom[0], r.axes)
	}
	return nil
}

// checkShaped verifies that Reshape ran for the input's current shape.
func (r *Reduce) checkShaped(bottom []*tensor.Blob) error {
	if r.state < stateShaped {
		return fmt.Errorf("%s: %w", r.op.String(), ErrNotShaped)
	}
	if !bottom[0].Shape().Equal(r.bottomShape) {
		return fmt.Errorf("%s: input shape changed from %v to %v: %w",
			r.op.String(), r.bottomShape, bottom[0].Shape(), ErrNotShaped)
	}
	return nil
}

// canonicalAxes resolves every axis against the input rank and returns
// them sorted ascending. Duplicates after canonicalization (e.g. 1 and
// -2 on a rank-3 input) are rejected.
func canonicalAxes(axes []int, rank int) ([]int, error) {
	canonical := make([]int, len(axes))
	for i, a := range axes {
		ca, err := tensor.CanonicalAxis(a, rank)
		if err != nil {
			return nil, &AxisError{Axis: a, Rank: rank, Reason: "out of range"}
		}
		canonical[i] = ca
	}
	sort.Ints(canonical)
	for i := 1; i < len(canonical); i++ {
		if canonical[i] == canonical[i-1] {
			return nil, &AxisError{Axis: canonical[i], Rank: rank, Reason: "duplicate axis"}
		}
	}
	return canonical, nil
}

// reducedElements returns the number of input elements folded into
// each output position.
func reducedElements(shape tensor.Shape, axes []int) int {
	n := 1
	for _, a := range axes {
		n *= shape[a]
	}
	return n
}
