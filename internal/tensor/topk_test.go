package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopKSorted(t *testing.T) {
	p := NewMockProvider()
	tr, err := FromNested([]float32{3, 1, 4, 1, 5, 9, 2, 6}, p)
	require.NoError(t, err)

	values, indices, err := tr.TopK(3, true)
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, values.Shape())
	assert.Equal(t, Int64, indices.DType())

	got, err := values.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 6, 5}, got)

	idx, err := indices.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 4}, idx)
}

func TestTopKUnsortedIsSameSet(t *testing.T) {
	p := NewMockProvider()
	tr, err := FromNested([]float32{3, 1, 4, 1, 5, 9, 2, 6}, p)
	require.NoError(t, err)

	values, _, err := tr.TopK(3, false)
	require.NoError(t, err)
	got, err := values.Float64s()
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{9, 6, 5}, got)
}

func TestTopKPerRow(t *testing.T) {
	p := NewMockProvider()
	tr, err := FromNested([][]float32{{1, 7, 3}, {9, 2, 5}}, p)
	require.NoError(t, err)

	values, indices, err := tr.TopK(2, true)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, values.Shape())

	got, err := values.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 3, 9, 5}, got)

	idx, err := indices.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0, 2}, idx)
}

func TestTopKWholeRow(t *testing.T) {
	p := NewMockProvider()
	tr, err := FromNested([]float32{2, 8, 4}, p)
	require.NoError(t, err)

	values, _, err := tr.TopK(3, true)
	require.NoError(t, err)
	got, err := values.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 4, 2}, got)
}

func TestTopKBounds(t *testing.T) {
	p := NewMockProvider()
	tr, err := FromNested([]float32{1, 2, 3}, p)
	require.NoError(t, err)

	_, _, err = tr.TopK(0, true)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = tr.TopK(4, true)
	assert.ErrorIs(t, err, ErrOutOfRange)

	cube, err := FromNested([][][]float32{{{1}}}, p)
	require.NoError(t, err)
	_, _, err = cube.TopK(1, true)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	bt, err := FromNested([]bool{true, false}, p)
	require.NoError(t, err)
	_, _, err = bt.TopK(1, true)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}
