// Package cpu implements the host reference provider: buffers in ordinary
// Go memory plus numeric kernels built on gonum.
package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// Backend is the host compute provider. It sits at the raw capability tier:
// its buffers expose their byte image for bulk dump/load.
type Backend struct{}

// New creates a host backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the provider name.
func (b *Backend) Name() string { return "cpu" }

// Capability returns the raw tier.
func (b *Backend) Capability() tensor.Capability { return tensor.CapabilityRaw }

// Alloc allocates a zero-filled host buffer.
func (b *Backend) Alloc(n int, dtype tensor.DType) (tensor.Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative buffer size %d", tensor.ErrInvalidShape, n)
	}
	allocTotal.Inc()
	return newHostBuffer(n, dtype), nil
}

// Map applies fn to every element of a real numeric tensor. fn is evaluated
// concurrently across chunks of the window; it must be pure.
func (b *Backend) Map(x *tensor.Tensor, fn func(float64) float64) (*tensor.Tensor, error) {
	if !x.DType().IsNumeric() {
		return nil, fmt.Errorf("%w: map over %s tensor", tensor.ErrUnsupportedOperation, x.DType())
	}
	mapTotal.Inc()
	out, err := tensor.New(x.Shape(), x.DType(), b)
	if err != nil {
		return nil, err
	}
	scratch := make([]float64, x.Size())
	parallel.For(len(scratch), func(i int) {
		scratch[i] = fn(elemFloat(x, i))
	}, parallel.DefaultConfig())
	for i, f := range scratch {
		v, err := tensor.Convert(f, x.DType())
		if err != nil {
			return nil, err
		}
		if err := out.Buffer().Set(i, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Apply performs x <op> operand elementwise. The operand is a bare scalar or
// a tensor of identical shape and element kind.
func (b *Backend) Apply(x *tensor.Tensor, op tensor.Op, operand any) (*tensor.Tensor, error) {
	applyTotal.Inc()
	if x.DType().IsComplex() {
		return b.applyComplex(x, op, operand)
	}
	if !x.DType().IsNumeric() {
		return nil, fmt.Errorf("%w: arithmetic on %s tensor", tensor.ErrUnsupportedOperation, x.DType())
	}

	rhs, err := operandReader(x, operand, elemFloat, asScalarFloat)
	if err != nil {
		return nil, err
	}
	out, err := tensor.New(x.Shape(), x.DType(), b)
	if err != nil {
		return nil, err
	}
	for i := 0; i < x.Size(); i++ {
		var r float64
		switch op {
		case tensor.OpAdd:
			r = elemFloat(x, i) + rhs(i)
		case tensor.OpSub:
			r = elemFloat(x, i) - rhs(i)
		case tensor.OpMul:
			r = elemFloat(x, i) * rhs(i)
		case tensor.OpDiv:
			r = elemFloat(x, i) / rhs(i)
		default:
			return nil, fmt.Errorf("%w: operator %d", tensor.ErrUnsupportedOperation, op)
		}
		v, err := tensor.Convert(r, x.DType())
		if err != nil {
			return nil, err
		}
		if err := out.Buffer().Set(i, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// applyComplex is the complex-kind arm of Apply.
func (b *Backend) applyComplex(x *tensor.Tensor, op tensor.Op, operand any) (*tensor.Tensor, error) {
	rhs, err := operandReader(x, operand, elemComplex, asScalarComplex)
	if err != nil {
		return nil, err
	}
	out, err := tensor.New(x.Shape(), x.DType(), b)
	if err != nil {
		return nil, err
	}
	for i := 0; i < x.Size(); i++ {
		var r complex128
		switch op {
		case tensor.OpAdd:
			r = elemComplex(x, i) + rhs(i)
		case tensor.OpSub:
			r = elemComplex(x, i) - rhs(i)
		case tensor.OpMul:
			r = elemComplex(x, i) * rhs(i)
		case tensor.OpDiv:
			r = elemComplex(x, i) / rhs(i)
		default:
			return nil, fmt.Errorf("%w: operator %d", tensor.ErrUnsupportedOperation, op)
		}
		v, err := tensor.Convert(r, x.DType())
		if err != nil {
			return nil, err
		}
		if err := out.Buffer().Set(i, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// operandReader builds an indexed reader over the right-hand operand:
// a constant for scalars, a window read for same-shape tensors.
func operandReader[E any](x *tensor.Tensor, operand any,
	elem func(*tensor.Tensor, int) E, scalar func(any) (E, bool)) (func(int) E, error) {
	if other, ok := operand.(*tensor.Tensor); ok {
		if !other.Shape().Equal(x.Shape()) {
			return nil, fmt.Errorf("%w: operand shape %v, want %v",
				tensor.ErrInvalidShape, other.Shape(), x.Shape())
		}
		if other.DType() != x.DType() {
			return nil, fmt.Errorf("%w: operand dtype %s, want %s",
				tensor.ErrInvalidDType, other.DType(), x.DType())
		}
		return func(i int) E { return elem(other, i) }, nil
	}
	c, ok := scalar(operand)
	if !ok {
		return nil, fmt.Errorf("%w: operand %T", tensor.ErrInvalidDType, operand)
	}
	return func(int) E { return c }, nil
}

// elemFloat reads logical element i of a real numeric tensor as float64.
func elemFloat(t *tensor.Tensor, i int) float64 {
	f, _ := asScalarFloat(t.Buffer().At(t.Offset() + i))
	return f
}

// elemComplex reads logical element i of a complex tensor as complex128.
func elemComplex(t *tensor.Tensor, i int) complex128 {
	c, _ := asScalarComplex(t.Buffer().At(t.Offset() + i))
	return c
}

// asScalarFloat widens any real numeric scalar to float64.
func asScalarFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// asScalarComplex widens a numeric or complex scalar to complex128.
func asScalarComplex(v any) (complex128, bool) {
	switch x := v.(type) {
	case complex128:
		return x, true
	case complex64:
		return complex128(x), true
	default:
		if f, ok := asScalarFloat(v); ok {
			return complex(f, 0), true
		}
		return 0, false
	}
}
