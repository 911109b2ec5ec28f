package layer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ReduceParams is the typed configuration record for the reduce layer
// family: which dimensions to reduce and whether they are retained as
// size 1 in the output.
//
// The host hands layers a free-form parameter string; this family
// declares it to be a JSON object with exactly the keys "axis"
// (integer or list of integers) and "keepdims" (bool), both required.
// The payload is decoded and validated, never evaluated.
type ReduceParams struct {
	Axes     []int
	KeepDims bool
}

// axisSpec decodes the "axis" value, which may be a single integer or
// a list of integers.
type axisSpec []int

// UnmarshalJSON implements json.Unmarshaler.
func (a *axisSpec) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*a = axisSpec{single}
		return nil
	}

	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("axis must be an integer or a list of integers, got %s", data)
	}
	if len(many) == 0 {
		return fmt.Errorf("axis list must not be empty")
	}
	*a = axisSpec(many)
	return nil
}

// parseReduceParams decodes and validates a reduce layer parameter
// payload. layerType is used for error reporting only.
func parseReduceParams(layerType, raw string) (ReduceParams, error) {
	var payload struct {
		Axis     *axisSpec `json:"axis"`
		KeepDims *bool     `json:"keepdims"`
	}
	if err := decodeParams(raw, &payload); err != nil {
		return ReduceParams{}, &ConfigurationError{Layer: layerType, Reason: err.Error()}
	}
	if payload.Axis == nil {
		return ReduceParams{}, &ConfigurationError{Layer: layerType, Reason: `missing required parameter "axis"`}
	}
	if payload.KeepDims == nil {
		return ReduceParams{}, &ConfigurationError{Layer: layerType, Reason: `missing required parameter "keepdims"`}
	}
	if dup, ok := firstDuplicate(*payload.Axis); ok {
		return ReduceParams{}, &ConfigurationError{
			Layer:  layerType,
			Reason: fmt.Sprintf("duplicate axis %d", dup),
		}
	}

	return ReduceParams{Axes: []int(*payload.Axis), KeepDims: *payload.KeepDims}, nil
}

// expandDimsParams is the typed configuration record for ExpandDimsND:
// the positions at which size-1 dimensions are inserted.
type expandDimsParams struct {
	Axes []int
}

// parseExpandDimsParams decodes and validates an ExpandDimsND
// parameter payload: a JSON object with exactly the key "axis".
func parseExpandDimsParams(layerType, raw string) (expandDimsParams, error) {
	var payload struct {
		Axis *axisSpec `json:"axis"`
	}
	if err := decodeParams(raw, &payload); err != nil {
		return expandDimsParams{}, &ConfigurationError{Layer: layerType, Reason: err.Error()}
	}
	if payload.Axis == nil {
		return expandDimsParams{}, &ConfigurationError{Layer: layerType, Reason: `missing required parameter "axis"`}
	}

	return expandDimsParams{Axes: []int(*payload.Axis)}, nil
}

// decodeParams decodes a JSON parameter payload into dst, rejecting
// unknown keys and trailing content.
func decodeParams(raw string, dst any) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed parameter payload: %v", err)
	}
	if dec.More() {
		return fmt.Errorf("malformed parameter payload: trailing content")
	}
	return nil
}

// firstDuplicate returns the first value appearing more than once.
func firstDuplicate(values []int) (int, bool) {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return 0, false
}
