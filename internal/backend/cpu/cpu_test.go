package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-ml/axon/internal/tensor"
)

var _ tensor.Provider = (*Backend)(nil)

func floatTensor(t *testing.T, b *Backend, data []float64, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	tr, err := tensor.New(shape, tensor.Float32, b)
	require.NoError(t, err)
	for i, f := range data {
		require.NoError(t, tr.Buffer().Set(i, float32(f)))
	}
	return tr
}

func TestBackendCapability(t *testing.T) {
	b := New()
	assert.Equal(t, "cpu", b.Name())
	assert.Equal(t, tensor.CapabilityRaw, b.Capability())
}

func TestAllocZeroFilled(t *testing.T) {
	b := New()
	buf, err := b.Alloc(4, tensor.Float64)
	require.NoError(t, err)
	assert.Equal(t, 4, buf.Len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(0), buf.At(i))
	}

	_, err = b.Alloc(-1, tensor.Float32)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestAllocExposesRawBytes(t *testing.T) {
	b := New()
	buf, err := b.Alloc(2, tensor.Float32)
	require.NoError(t, err)

	raw, ok := buf.(tensor.RawBuffer)
	require.True(t, ok)
	assert.Len(t, raw.Bytes(), 8)
}

func TestMap(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	out, err := b.Map(x, func(f float64) float64 { return f * f })
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 9}, got)
}

func TestMapRejectsBool(t *testing.T) {
	b := New()
	x, err := tensor.New(tensor.Shape{2}, tensor.Bool, b)
	require.NoError(t, err)
	_, err = b.Map(x, func(f float64) float64 { return f })
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}

func TestApplyScalar(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	cases := []struct {
		op   tensor.Op
		want []float64
	}{
		{tensor.OpAdd, []float64{3, 4, 5}},
		{tensor.OpSub, []float64{-1, 0, 1}},
		{tensor.OpMul, []float64{2, 4, 6}},
		{tensor.OpDiv, []float64{0.5, 1, 1.5}},
	}
	for _, tc := range cases {
		out, err := b.Apply(x, tc.op, 2.0)
		require.NoError(t, err)
		got, err := out.Float64s()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestApplyTensorOperand(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})
	y := floatTensor(t, b, []float64{10, 20, 30}, tensor.Shape{3})

	out, err := b.Apply(x, tensor.OpAdd, y)
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, got)
}

func TestApplyOperandChecks(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2}, tensor.Shape{2})
	wrongShape := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	_, err := b.Apply(x, tensor.OpAdd, wrongShape)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)

	wrongDType, err := tensor.New(tensor.Shape{2}, tensor.Float64, b)
	require.NoError(t, err)
	_, err = b.Apply(x, tensor.OpAdd, wrongDType)
	assert.ErrorIs(t, err, tensor.ErrInvalidDType)

	_, err = b.Apply(x, tensor.OpAdd, "two")
	assert.ErrorIs(t, err, tensor.ErrInvalidDType)
}

func TestApplyComplex(t *testing.T) {
	b := New()
	x, err := tensor.New(tensor.Shape{2}, tensor.Complex64, b)
	require.NoError(t, err)
	require.NoError(t, x.Buffer().Set(0, complex64(1+2i)))
	require.NoError(t, x.Buffer().Set(1, complex64(3+0i)))

	out, err := b.Apply(x, tensor.OpMul, complex64(0+1i))
	require.NoError(t, err)
	assert.Equal(t, complex64(-2+1i), out.Buffer().At(0))
	assert.Equal(t, complex64(0+3i), out.Buffer().At(1))
}

func TestApplyIntegerKeepsDType(t *testing.T) {
	b := New()
	x, err := tensor.New(tensor.Shape{2}, tensor.Int32, b)
	require.NoError(t, err)
	require.NoError(t, x.Buffer().Set(0, int32(2)))
	require.NoError(t, x.Buffer().Set(1, int32(5)))

	out, err := b.Apply(x, tensor.OpMul, 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int32, out.DType())
	assert.Equal(t, int32(6), out.Buffer().At(0))
	assert.Equal(t, int32(15), out.Buffer().At(1))
}

func TestReduceWholeTensor(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{4, 1, 7, 2}, tensor.Shape{4})

	mean, err := b.Reduce(x, nil, tensor.ReduceMean)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, mean.(float64), 1e-9)

	min, err := b.Reduce(x, nil, tensor.ReduceMin)
	require.NoError(t, err)
	assert.Equal(t, 1.0, min)

	max, err := b.Reduce(x, nil, tensor.ReduceMax)
	require.NoError(t, err)
	assert.Equal(t, 7.0, max)

	argmin, err := b.Reduce(x, nil, tensor.ReduceArgMin)
	require.NoError(t, err)
	assert.Equal(t, 1, argmin)

	argmax, err := b.Reduce(x, nil, tensor.ReduceArgMax)
	require.NoError(t, err)
	assert.Equal(t, 2, argmax)
}

func TestReduceEmptyFails(t *testing.T) {
	b := New()
	x, err := tensor.New(tensor.Shape{0}, tensor.Float32, b)
	require.NoError(t, err)
	_, err = b.Reduce(x, nil, tensor.ReduceMean)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}

func TestReduceAxisKeepsAxisAtOne(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	axis := 1
	res, err := b.Reduce(x, &axis, tensor.ReduceMean)
	require.NoError(t, err)
	out := res.(*tensor.Tensor)
	assert.Equal(t, tensor.Shape{2, 1}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got[0], 1e-6)
	assert.InDelta(t, 5.0, got[1], 1e-6)

	axis = 0
	res, err = b.Reduce(x, &axis, tensor.ReduceMax)
	require.NoError(t, err)
	out = res.(*tensor.Tensor)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())
	got, err = out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, got)
}

func TestReduceAxisArg(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{3, 9, 9, 2}, tensor.Shape{2, 2})

	axis := 1
	res, err := b.Reduce(x, &axis, tensor.ReduceArgMax)
	require.NoError(t, err)
	out := res.(*tensor.Tensor)
	assert.Equal(t, tensor.Int64, out.DType())
	assert.Equal(t, int64(1), out.Buffer().At(0))
	assert.Equal(t, int64(0), out.Buffer().At(1))
}

func TestReduceTiesKeepFirst(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{5, 5, 5}, tensor.Shape{3})

	argmax, err := b.Reduce(x, nil, tensor.ReduceArgMax)
	require.NoError(t, err)
	assert.Equal(t, 0, argmax)
}

func TestReduceAxisBounds(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2}, tensor.Shape{2})

	axis := 1
	_, err := b.Reduce(x, &axis, tensor.ReduceMean)
	assert.ErrorIs(t, err, tensor.ErrOutOfRange)
}

func TestLinAlgScale(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	out, err := b.LinAlg().Scale(2.0, x)
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, got)
}

func TestLinAlgTranspose(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out, err := b.LinAlg().Transpose(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got)

	vec := floatTensor(t, b, []float64{1}, tensor.Shape{1})
	_, err = b.LinAlg().Transpose(vec)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}

func TestLinAlgDot(t *testing.T) {
	b := New()
	la := b.LinAlg()

	u := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})
	v := floatTensor(t, b, []float64{4, 5, 6}, tensor.Shape{3})
	out, err := la.Dot(u, v)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rank())
	item, err := out.Item()
	require.NoError(t, err)
	assert.Equal(t, float32(32), item)

	m := floatTensor(t, b, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	w := floatTensor(t, b, []float64{1, 1}, tensor.Shape{2})
	out, err = la.Dot(m, w)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, out.Shape())
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, got)

	out, err = la.Dot(m, m)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	got, err = out.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 10, 15, 22}, got)
}

func TestLinAlgDotShapeChecks(t *testing.T) {
	b := New()
	la := b.LinAlg()

	u := floatTensor(t, b, []float64{1, 2}, tensor.Shape{2})
	v := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})
	_, err := la.Dot(u, v)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)

	s := floatTensor(t, b, []float64{1}, tensor.Shape{1, 1, 1})
	_, err = la.Dot(s, u)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}

func TestLinAlgCross(t *testing.T) {
	b := New()
	la := b.LinAlg()

	i := floatTensor(t, b, []float64{1, 0, 0}, tensor.Shape{3})
	j := floatTensor(t, b, []float64{0, 1, 0}, tensor.Shape{3})

	k, err := la.Cross(i, j)
	require.NoError(t, err)
	got, err := k.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, got)

	// Anticommutative.
	nk, err := la.Cross(j, i)
	require.NoError(t, err)
	got, err = nk.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, -1}, got)

	short := floatTensor(t, b, []float64{1, 2}, tensor.Shape{2})
	_, err = la.Cross(i, short)
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestLinAlgSoftmax(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 3}, tensor.Shape{3})

	out, err := b.LinAlg().Softmax(x)
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)

	sum := 0.0
	for _, v := range got {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.True(t, got[2] > got[1] && got[1] > got[0])

	e := math.Exp(1) + math.Exp(2) + math.Exp(3)
	assert.InDelta(t, math.Exp(3)/e, got[2], 1e-6)
}

func TestLinAlgSoftmaxPerRow(t *testing.T) {
	b := New()
	x := floatTensor(t, b, []float64{1, 2, 100, 100}, tensor.Shape{2, 2})

	out, err := b.LinAlg().Softmax(x)
	require.NoError(t, err)
	got, err := out.Float64s()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0]+got[1], 1e-6)
	// The max shift keeps large inputs finite.
	assert.InDelta(t, 0.5, got[2], 1e-6)
	assert.InDelta(t, 0.5, got[3], 1e-6)
}

func TestLinAlgRejectsIntTensors(t *testing.T) {
	b := New()
	x, err := tensor.New(tensor.Shape{2}, tensor.Int32, b)
	require.NoError(t, err)
	_, err = b.LinAlg().Scale(2.0, x)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedOperation)
}
