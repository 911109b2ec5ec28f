// Package layer implements custom computational layers for a
// Caffe-style host training runtime, along with the name-keyed factory
// registry the host instantiates them through.
//
// Every layer satisfies the Layer contract and is driven by the host in
// a fixed lifecycle: Setup once at graph construction, Reshape whenever
// the input shape changes, then repeated Forward/Backward pairs. The
// host owns all blob memory and threading; layers touch the supplied
// blobs only for the duration of a single hook call.
package layer

import "github.com/petaio-tw/petaio-caffe/internal/tensor"

// Layer is the plugin contract consumed by the host runtime.
//
// The host supplies bottom (input) and top (output) blob bindings as
// ordered lists and invokes the hooks strictly in the order
// Setup, Reshape, then (Forward, Backward) pairs. Reshape may be
// re-entered whenever the input shape changes. Calls against a single
// instance never overlap.
type Layer interface {
	// Setup validates the blob bindings and parses the layer's
	// parameter payload. No computation happens here.
	Setup(bottom, top []*tensor.Blob, params string) error

	// Reshape computes the top blob's shape from the bottom blob's
	// and resizes the top blob's buffers. No data is written.
	Reshape(bottom, top []*tensor.Blob) error

	// Forward computes the top blob's data from the bottom blob's.
	Forward(bottom, top []*tensor.Blob) error

	// Backward propagates the top blob's gradient into the bottom
	// blob's gradient buffer for each bottom slot whose
	// propagateDown flag is set.
	Backward(top []*tensor.Blob, propagateDown []bool, bottom []*tensor.Blob) error
}

// lifecycle tracks a layer instance's position in the host's hook
// order: Setup moves it to configured, Reshape to shaped. Forward and
// Backward require shaped.
type lifecycle int

const (
	stateNew lifecycle = iota
	stateConfigured
	stateShaped
)
