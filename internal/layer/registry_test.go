package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNames(t *testing.T) {
	names := Names()
	for _, want := range []string{
		"ExpandDimsND", "ReduceMax", "ReduceMean", "ReduceMin", "ReduceProd", "ReduceSum",
	} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names)
}

func TestRegistryNew(t *testing.T) {
	l, err := New("ReduceSum")
	require.NoError(t, err)
	require.IsType(t, &Reduce{}, l)

	// Instances are independent.
	l2, err := New("ReduceSum")
	require.NoError(t, err)
	assert.NotSame(t, l, l2)

	_, err = New("ReduceMedian")
	assert.ErrorIs(t, err, ErrUnknownLayer)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("ReduceSum", func() Layer { return NewReduce(OpSum) })
	})
}
