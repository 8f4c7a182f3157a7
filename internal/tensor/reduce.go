package tensor

import (
	"fmt"
	"math"
	"math/cmplx"
)

// absElem returns the magnitude of one element as float64.
func absElem(v any) (float64, error) {
	if c, ok := asComplex128(v); ok {
		return cmplx.Abs(c), nil
	}
	if f, ok := asFloat64(v); ok {
		return math.Abs(f), nil
	}
	return 0, fmt.Errorf("%w: no magnitude for %T", ErrInvalidDType, v)
}

// normDType picks the element kind norm results are stored in.
func (t *Tensor) normDType() (DType, error) {
	switch {
	case t.dtype == Float64 || t.dtype == Complex128:
		return Float64, nil
	case t.dtype.IsNumeric() || t.dtype == Complex64:
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: norm of %s tensor", ErrUnsupportedOperation, t.dtype)
	}
}

// Norm computes the p-norm of the whole tensor: (sum |x|^p)^(1/p).
func (t *Tensor) Norm(p float64) (float64, error) {
	if _, err := t.normDType(); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < t.Size(); i++ {
		a, err := absElem(t.buf.At(t.offset + i))
		if err != nil {
			return 0, err
		}
		sum += math.Pow(a, p)
	}
	if p == 1 {
		return sum, nil
	}
	return math.Pow(sum, 1/p), nil
}

// NormAxis computes the p-norm along one axis via explicit multi-index
// unraveling. Every output position accumulates sum |x|^p over the chosen
// axis; for p != 1 the accumulated sums are raised to 1/p before returning.
// The reduced axis is removed unless keepShape retains it with size 1.
func (t *Tensor) NormAxis(p float64, axis int, keepShape bool) (*Tensor, error) {
	axis, err := resolveAxis(axis, t.Rank())
	if err != nil {
		return nil, err
	}
	outDType, err := t.normDType()
	if err != nil {
		return nil, err
	}

	sums, keepShapeOut, err := t.accumulateAbsPow(p, axis)
	if err != nil {
		return nil, err
	}
	if p != 1 {
		for i := range sums {
			sums[i] = math.Pow(sums[i], 1/p)
		}
	}

	out, err := New(keepShapeOut, outDType, t.provider)
	if err != nil {
		return nil, err
	}
	for i, s := range sums {
		v, err := Convert(s, outDType)
		if err != nil {
			return nil, err
		}
		if err := out.buf.Set(i, v); err != nil {
			return nil, err
		}
	}
	if keepShape {
		return out, nil
	}
	return out.Squeeze(axis)
}

// accumulateAbsPow sums |x|^p over axis into a keep-shape accumulator.
func (t *Tensor) accumulateAbsPow(p float64, axis int) ([]float64, Shape, error) {
	keepShape := t.shape.Clone()
	keepShape[axis] = 1
	sums := make([]float64, keepShape.NumElements())

	idx := make([]int, t.Rank())
	for flat := 0; flat < t.Size(); flat++ {
		t.shape.Unravel(flat, idx)
		a, err := absElem(t.buf.At(t.offset + flat))
		if err != nil {
			return nil, nil, err
		}
		hold := idx[axis]
		idx[axis] = 0
		sums[keepShape.Ravel(idx)] += math.Pow(a, p)
		idx[axis] = hold
	}
	return sums, keepShape, nil
}

// Normalize divides every element by its p-norm along the given axis,
// resolved through the same index-unraveling scheme NormAxis uses.
// Positions whose norm is zero stay zero.
func (t *Tensor) Normalize(p float64, axis int) (*Tensor, error) {
	axis, err := resolveAxis(axis, t.Rank())
	if err != nil {
		return nil, err
	}
	if _, err := t.normDType(); err != nil {
		return nil, err
	}

	sums, keepShape, err := t.accumulateAbsPow(p, axis)
	if err != nil {
		return nil, err
	}
	if p != 1 {
		for i := range sums {
			sums[i] = math.Pow(sums[i], 1/p)
		}
	}

	out, err := New(t.shape, t.dtype, t.provider)
	if err != nil {
		return nil, err
	}
	idx := make([]int, t.Rank())
	for flat := 0; flat < t.Size(); flat++ {
		t.shape.Unravel(flat, idx)
		hold := idx[axis]
		idx[axis] = 0
		norm := sums[keepShape.Ravel(idx)]
		idx[axis] = hold

		var v any
		switch {
		case norm == 0:
			v, err = Convert(0.0, t.dtype)
		case t.dtype.IsComplex():
			c, _ := asComplex128(t.buf.At(t.offset + flat))
			v, err = Convert(c/complex(norm, 0), t.dtype)
		default:
			f, _ := asFloat64(t.buf.At(t.offset + flat))
			v, err = Convert(f/norm, t.dtype)
		}
		if err != nil {
			return nil, err
		}
		if err := out.buf.Set(flat, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// reduceAxis delegates one axis reduction to the provider and does the shape
// bookkeeping: the provider keeps the reduced axis at size 1, the core strips
// it unless keepShape is set.
func (t *Tensor) reduceAxis(op ReduceOp, axis int, keepShape bool) (*Tensor, error) {
	axis, err := resolveAxis(axis, t.Rank())
	if err != nil {
		return nil, err
	}
	res, err := t.provider.Reduce(t, &axis, op)
	if err != nil {
		return nil, err
	}
	out, ok := res.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: provider %s returned %T for an axis reduction",
			ErrBackendMismatch, t.provider.Name(), res)
	}
	if keepShape {
		return out, nil
	}
	return out.Squeeze(axis)
}

// Mean reduces the whole tensor to its arithmetic mean.
func (t *Tensor) Mean() (any, error) {
	return t.provider.Reduce(t, nil, ReduceMean)
}

// MeanAxis computes the mean along one axis.
func (t *Tensor) MeanAxis(axis int, keepShape bool) (*Tensor, error) {
	return t.reduceAxis(ReduceMean, axis, keepShape)
}

// Min reduces the whole tensor to its minimum.
func (t *Tensor) Min() (any, error) {
	return t.provider.Reduce(t, nil, ReduceMin)
}

// MinAxis computes the minimum along one axis.
func (t *Tensor) MinAxis(axis int, keepShape bool) (*Tensor, error) {
	return t.reduceAxis(ReduceMin, axis, keepShape)
}

// Max reduces the whole tensor to its maximum.
func (t *Tensor) Max() (any, error) {
	return t.provider.Reduce(t, nil, ReduceMax)
}

// MaxAxis computes the maximum along one axis.
func (t *Tensor) MaxAxis(axis int, keepShape bool) (*Tensor, error) {
	return t.reduceAxis(ReduceMax, axis, keepShape)
}

// ArgMin reduces the whole tensor to the flat index of its minimum.
func (t *Tensor) ArgMin() (any, error) {
	return t.provider.Reduce(t, nil, ReduceArgMin)
}

// ArgMinAxis computes minimum indices along one axis.
func (t *Tensor) ArgMinAxis(axis int, keepShape bool) (*Tensor, error) {
	return t.reduceAxis(ReduceArgMin, axis, keepShape)
}

// ArgMax reduces the whole tensor to the flat index of its maximum.
func (t *Tensor) ArgMax() (any, error) {
	return t.provider.Reduce(t, nil, ReduceArgMax)
}

// ArgMaxAxis computes maximum indices along one axis.
func (t *Tensor) ArgMaxAxis(axis int, keepShape bool) (*Tensor, error) {
	return t.reduceAxis(ReduceArgMax, axis, keepShape)
}

// MeanPooling pools a [batch, seq, embed] tensor over seq with a
// [batch, seq] mask: every (batch, embed) position is the mask-weighted sum
// divided by the mask's sum, or 0 where the mask sums to 0. The result has
// shape [batch, embed].
func (t *Tensor) MeanPooling(mask *Tensor) (*Tensor, error) {
	if t.Rank() != 3 || mask.Rank() != 2 {
		return nil, fmt.Errorf("%w: mean pooling needs a rank-3 input and rank-2 mask, got %v and %v",
			ErrUnsupportedOperation, t.shape, mask.Shape())
	}
	batch, seq, embed := t.shape[0], t.shape[1], t.shape[2]
	if mask.Shape()[0] != batch || mask.Shape()[1] != seq {
		return nil, fmt.Errorf("%w: mask shape %v does not cover input %v", ErrInvalidShape, mask.Shape(), t.shape)
	}
	if !t.dtype.IsFloat() {
		return nil, fmt.Errorf("%w: mean pooling of %s tensor", ErrUnsupportedOperation, t.dtype)
	}

	out, err := New(Shape{batch, embed}, t.dtype, t.provider)
	if err != nil {
		return nil, err
	}
	for b := 0; b < batch; b++ {
		maskSum := 0.0
		for s := 0; s < seq; s++ {
			m, _ := asFloat64(mask.buf.At(mask.offset + b*seq + s))
			maskSum += m
		}
		for e := 0; e < embed; e++ {
			pooled := 0.0
			if maskSum != 0 {
				sum := 0.0
				for s := 0; s < seq; s++ {
					m, _ := asFloat64(mask.buf.At(mask.offset + b*seq + s))
					x, _ := asFloat64(t.buf.At(t.offset + (b*seq+s)*embed + e))
					sum += x * m
				}
				pooled = sum / maskSum
			}
			v, err := Convert(pooled, t.dtype)
			if err != nil {
				return nil, err
			}
			if err := out.buf.Set(b*embed+e, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
