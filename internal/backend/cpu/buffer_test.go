package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-ml/axon/internal/tensor"
)

func TestHostBufferRoundTrip(t *testing.T) {
	cases := []struct {
		dtype tensor.DType
		value any
	}{
		{tensor.Bool, true},
		{tensor.Uint8, uint8(200)},
		{tensor.Uint16, uint16(60000)},
		{tensor.Uint32, uint32(4000000000)},
		{tensor.Uint64, uint64(1) << 60},
		{tensor.Int8, int8(-100)},
		{tensor.Int16, int16(-30000)},
		{tensor.Int32, int32(-2000000000)},
		{tensor.Int64, int64(-1) << 60},
		{tensor.Float32, float32(3.25)},
		{tensor.Float64, float64(-2.5)},
		{tensor.Complex64, complex64(1 + 2i)},
		{tensor.Complex128, complex128(-3 - 4i)},
	}
	for _, tc := range cases {
		t.Run(tc.dtype.String(), func(t *testing.T) {
			b := newHostBuffer(3, tc.dtype)
			require.NoError(t, b.Set(1, tc.value))
			assert.Equal(t, tc.value, b.At(1))
		})
	}
}

func TestHostBufferByteLayout(t *testing.T) {
	b := newHostBuffer(4, tensor.Int16)
	assert.Len(t, b.Bytes(), 8)

	b2 := newHostBuffer(4, tensor.Int16)
	require.NoError(t, b.Set(2, int16(-7)))
	require.NoError(t, b2.SetBytes(b.Bytes()))
	assert.Equal(t, int16(-7), b2.At(2))
}

func TestHostBufferSetBytesLengthCheck(t *testing.T) {
	b := newHostBuffer(2, tensor.Float32)
	err := b.SetBytes(make([]byte, 7))
	assert.ErrorIs(t, err, tensor.ErrCorrupted)
}

func TestHostBufferSetChecks(t *testing.T) {
	b := newHostBuffer(2, tensor.Float32)

	err := b.Set(2, float32(1))
	assert.ErrorIs(t, err, tensor.ErrOutOfRange)
	err = b.Set(-1, float32(1))
	assert.ErrorIs(t, err, tensor.ErrOutOfRange)

	// Values must already be in the buffer's native representation.
	err = b.Set(0, float64(1))
	assert.ErrorIs(t, err, tensor.ErrInvalidDType)
}

func TestHostBufferAtPanicsOutOfRange(t *testing.T) {
	b := newHostBuffer(2, tensor.Float32)
	assert.Panics(t, func() { b.At(2) })
	assert.Panics(t, func() { b.At(-1) })
}

func TestHostBufferEmpty(t *testing.T) {
	b := newHostBuffer(0, tensor.Float64)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Bytes())
	require.NoError(t, b.SetBytes(nil))
}
