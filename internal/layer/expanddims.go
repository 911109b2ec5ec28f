package layer

import (
	"fmt"
	"sort"

	"github.com/petaio-tw/petaio-caffe/internal/tensor"
)

func init() {
	Register("ExpandDimsND", func() Layer { return NewExpandDimsND() })
}

// ExpandDimsND inserts size-1 dimensions into the input shape, the
// shape-level counterpart of a keepdims=false reduction. Each axis
// names an input position: the new dimension is inserted before that
// input dimension, and axis == rank appends a trailing dimension. The
// element count never changes; forward and backward share the
// underlying buffers instead of copying.
//
// An axis may appear more than once: inserting twice at position 0
// turns [2, 3] into [1, 1, 2, 3]. Negative axes insert after the
// dimension they resolve to, so -1 appends a trailing dimension.
type ExpandDimsND struct {
	params expandDimsParams

	bottomShape tensor.Shape
	state       lifecycle
}

// NewExpandDimsND creates an unconfigured ExpandDimsND layer.
func NewExpandDimsND() *ExpandDimsND {
	return &ExpandDimsND{}
}

// Setup validates the blob binding arity and parses the axis payload.
func (e *ExpandDimsND) Setup(bottom, top []*tensor.Blob, params string) error {
	if len(bottom) != 1 {
		return &ConfigurationError{
			Layer:  "ExpandDimsND",
			Reason: fmt.Sprintf("expected exactly 1 bottom blob, got %d", len(bottom)),
		}
	}
	if len(top) != 1 {
		return &ConfigurationError{
			Layer:  "ExpandDimsND",
			Reason: fmt.Sprintf("expected exactly 1 top blob, got %d", len(top)),
		}
	}

	parsed, err := parseExpandDimsParams("ExpandDimsND", params)
	if err != nil {
		return err
	}

	e.params = parsed
	e.state = stateConfigured
	return nil
}

// Reshape resizes the top blob to the bottom shape with size-1
// dimensions inserted at the configured positions.
func (e *ExpandDimsND) Reshape(bottom, top []*tensor.Blob) error {
	if e.state < stateConfigured {
		return fmt.Errorf("ExpandDimsND: %w", ErrNotConfigured)
	}
	if top[0] == bottom[0] {
		return &ConfigurationError{Layer: "ExpandDimsND", Reason: "in-place computation is not allowed"}
	}
	if bottom[0].NumElements() == 0 {
		return fmt.Errorf("ExpandDimsND: %w", ErrEmptyInput)
	}

	shape := bottom[0].Shape()
	rank := len(shape)

	// Insertion positions are input positions in [0, rank]: rank
	// appends a trailing dimension. A negative axis resolves against
	// the current rank and inserts after that dimension.
	axes := make([]int, len(e.params.Axes))
	for i, a := range e.params.Axes {
		pos := a
		if pos < 0 {
			pos += rank + 1
		}
		if pos < 0 || pos > rank {
			return &AxisError{Axis: a, Rank: rank, Reason: "insertion position out of range"}
		}
		axes[i] = pos
	}
	sort.Ints(axes)

	outShape := make(tensor.Shape, 0, rank+len(axes))
	outShape = append(outShape, shape...)
	for i, a := range axes {
		// Each earlier insertion shifts later positions by one.
		at := a + i
		outShape = append(outShape, 0)
		copy(outShape[at+1:], outShape[at:])
		outShape[at] = 1
	}
	if err := top[0].Reshape(outShape); err != nil {
		return fmt.Errorf("ExpandDimsND: reshaping top blob: %w", err)
	}

	e.bottomShape = shape.Clone()
	e.state = stateShaped
	return nil
}

// Forward shares the bottom data buffer into the top blob.
func (e *ExpandDimsND) Forward(bottom, top []*tensor.Blob) error {
	if err := e.checkShaped(bottom); err != nil {
		return err
	}
	if err := top[0].ShareData(bottom[0]); err != nil {
		return fmt.Errorf("ExpandDimsND: %w", err)
	}
	return nil
}

// Backward shares the top gradient buffer into the bottom blob.
func (e *ExpandDimsND) Backward(top []*tensor.Blob, propagateDown []bool, bottom []*tensor.Blob) error {
	if err := e.checkShaped(bottom); err != nil {
		return err
	}
	if len(propagateDown) == 0 || !propagateDown[0] {
		return nil
	}
	if err := bottom[0].ShareDiff(top[0]); err != nil {
		return fmt.Errorf("ExpandDimsND: %w", err)
	}
	return nil
}

func (e *ExpandDimsND) checkShaped(bottom []*tensor.Blob) error {
	if e.state < stateShaped {
		return fmt.Errorf("ExpandDimsND: %w", ErrNotShaped)
	}
	if !bottom[0].Shape().Equal(e.bottomShape) {
		return fmt.Errorf("ExpandDimsND: input shape changed from %v to %v: %w",
			e.bottomShape, bottom[0].Shape(), ErrNotShaped)
	}
	return nil
}
