package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatAxisZero(t *testing.T) {
	p := NewMockProvider()
	a, err := FromNested([][]float32{{1, 2}, {3, 4}}, p)
	require.NoError(t, err)
	b, err := FromNested([][]float32{{5, 6}}, p)
	require.NoError(t, err)

	out, err := Cat([]*Tensor{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
}

func TestCatInnerAxis(t *testing.T) {
	p := NewMockProvider()
	a, err := FromNested([][]float32{{1, 2}, {3, 4}}, p)
	require.NoError(t, err)
	b, err := FromNested([][]float32{{5}, {6}}, p)
	require.NoError(t, err)

	out, err := Cat([]*Tensor{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5, 3, 4, 6}, got)
}

func TestCatNegativeAxis(t *testing.T) {
	p := NewMockProvider()
	a, err := FromNested([][]float32{{1, 2}}, p)
	require.NoError(t, err)
	b, err := FromNested([][]float32{{3}}, p)
	require.NoError(t, err)

	out, err := Cat([]*Tensor{a, b}, -1)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 3}, out.Shape())
}

func TestCatLeadingAxisMatchesGeneralPath(t *testing.T) {
	a := rowMajor(t, Shape{2, 3, 4})
	b := rowMajor(t, Shape{1, 3, 4})

	fast, err := Cat([]*Tensor{a, b}, 0)
	require.NoError(t, err)

	// axis 0 written through the sequential fast path must agree with
	// the unravel/ravel path reached through a reshaped equivalent.
	ar, err := a.Reshape(Shape{1, 2, 3, 4})
	require.NoError(t, err)
	br, err := b.Reshape(Shape{1, 1, 3, 4})
	require.NoError(t, err)
	general, err := Cat([]*Tensor{ar, br}, 1)
	require.NoError(t, err)

	fg, err := fast.Float64s()
	require.NoError(t, err)
	gg, err := general.Float64s()
	require.NoError(t, err)
	assert.Equal(t, fg, gg)
}

func TestCatValidatesBeforeWriting(t *testing.T) {
	p := NewMockProvider()
	a, err := FromNested([][]float32{{1, 2}}, p)
	require.NoError(t, err)
	bad, err := FromNested([][]float32{{1, 2, 3}}, p)
	require.NoError(t, err)

	_, err = Cat([]*Tensor{a, bad}, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)

	vec, err := FromNested([]float32{1}, p)
	require.NoError(t, err)
	_, err = Cat([]*Tensor{a, vec}, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)

	ints, err := FromNested([][]int32{{1, 2}}, p)
	require.NoError(t, err)
	_, err = Cat([]*Tensor{a, ints}, 0)
	assert.ErrorIs(t, err, ErrInvalidDType)

	_, err = Cat(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestCatViews(t *testing.T) {
	p := NewMockProvider()
	src, err := FromNested([][]float32{{1, 2}, {3, 4}, {5, 6}}, p)
	require.NoError(t, err)

	head, err := src.Narrow(Range{Start: 0, End: 1})
	require.NoError(t, err)
	tail, err := src.Narrow(Range{Start: 2, End: 3})
	require.NoError(t, err)

	out, err := Cat([]*Tensor{head, tail}, 0)
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5, 6}, got)
}

func TestStack(t *testing.T) {
	p := NewMockProvider()
	a, err := FromNested([]float32{1, 2}, p)
	require.NoError(t, err)
	b, err := FromNested([]float32{3, 4}, p)
	require.NoError(t, err)

	out, err := Stack([]*Tensor{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, got)

	out, err = Stack([]*Tensor{a, b}, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, out.Shape())
	got, err = out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 2, 4}, got)
}
