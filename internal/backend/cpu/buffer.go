package cpu

import (
	"fmt"
	"unsafe"

	"github.com/axon-ml/axon/internal/tensor"
)

// hostBuffer is addressable host memory: one byte arena reinterpreted as a
// typed element sequence. It satisfies the raw capability tier.
type hostBuffer struct {
	data  []byte
	dtype tensor.DType
	n     int
}

func newHostBuffer(n int, dtype tensor.DType) *hostBuffer {
	return &hostBuffer{
		data:  make([]byte, n*dtype.Size()),
		dtype: dtype,
		n:     n,
	}
}

// Len returns the number of elements.
func (b *hostBuffer) Len() int { return b.n }

// DType returns the element kind.
func (b *hostBuffer) DType() tensor.DType { return b.dtype }

// Bytes returns the raw byte image of the buffer.
func (b *hostBuffer) Bytes() []byte { return b.data }

// SetBytes bulk-loads a raw byte image of exactly the buffer's size.
func (b *hostBuffer) SetBytes(raw []byte) error {
	if len(raw) != len(b.data) {
		return fmt.Errorf("%w: byte image of %d bytes for a %d-byte buffer",
			tensor.ErrCorrupted, len(raw), len(b.data))
	}
	copy(b.data, raw)
	return nil
}

// view reinterprets the arena as a typed slice.
//
//nolint:gosec // unsafe.Slice for zero-copy access, length fixed at allocation
func view[T any](b *hostBuffer) []T {
	if b.n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.data[0])), b.n)
}

// At returns the element at index i as its native Go value.
//
//nolint:gocyclo,cyclop // exhaustive over the closed dtype set
func (b *hostBuffer) At(i int) any {
	switch b.dtype {
	case tensor.Bool:
		return view[bool](b)[i]
	case tensor.Uint8:
		return b.data[i]
	case tensor.Uint16:
		return view[uint16](b)[i]
	case tensor.Uint32:
		return view[uint32](b)[i]
	case tensor.Uint64:
		return view[uint64](b)[i]
	case tensor.Int8:
		return view[int8](b)[i]
	case tensor.Int16:
		return view[int16](b)[i]
	case tensor.Int32:
		return view[int32](b)[i]
	case tensor.Int64:
		return view[int64](b)[i]
	case tensor.Float32:
		return view[float32](b)[i]
	case tensor.Float64:
		return view[float64](b)[i]
	case tensor.Complex64:
		return view[complex64](b)[i]
	case tensor.Complex128:
		return view[complex128](b)[i]
	default:
		panic("unknown data type")
	}
}

// Set writes a native value at index i.
//
//nolint:gocyclo,cyclop // exhaustive over the closed dtype set
func (b *hostBuffer) Set(i int, v any) error {
	if i < 0 || i >= b.n {
		return fmt.Errorf("%w: buffer index %d of %d", tensor.ErrOutOfRange, i, b.n)
	}
	ok := false
	switch b.dtype {
	case tensor.Bool:
		var x bool
		if x, ok = v.(bool); ok {
			view[bool](b)[i] = x
		}
	case tensor.Uint8:
		var x uint8
		if x, ok = v.(uint8); ok {
			b.data[i] = x
		}
	case tensor.Uint16:
		var x uint16
		if x, ok = v.(uint16); ok {
			view[uint16](b)[i] = x
		}
	case tensor.Uint32:
		var x uint32
		if x, ok = v.(uint32); ok {
			view[uint32](b)[i] = x
		}
	case tensor.Uint64:
		var x uint64
		if x, ok = v.(uint64); ok {
			view[uint64](b)[i] = x
		}
	case tensor.Int8:
		var x int8
		if x, ok = v.(int8); ok {
			view[int8](b)[i] = x
		}
	case tensor.Int16:
		var x int16
		if x, ok = v.(int16); ok {
			view[int16](b)[i] = x
		}
	case tensor.Int32:
		var x int32
		if x, ok = v.(int32); ok {
			view[int32](b)[i] = x
		}
	case tensor.Int64:
		var x int64
		if x, ok = v.(int64); ok {
			view[int64](b)[i] = x
		}
	case tensor.Float32:
		var x float32
		if x, ok = v.(float32); ok {
			view[float32](b)[i] = x
		}
	case tensor.Float64:
		var x float64
		if x, ok = v.(float64); ok {
			view[float64](b)[i] = x
		}
	case tensor.Complex64:
		var x complex64
		if x, ok = v.(complex64); ok {
			view[complex64](b)[i] = x
		}
	case tensor.Complex128:
		var x complex128
		if x, ok = v.(complex128); ok {
			view[complex128](b)[i] = x
		}
	}
	if !ok {
		return fmt.Errorf("%w: %T value for %s buffer", tensor.ErrInvalidDType, v, b.dtype)
	}
	return nil
}
