package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// LinAlg returns the host linear-algebra kernels.
func (b *Backend) LinAlg() tensor.LinAlg {
	return &linAlg{backend: b}
}

type linAlg struct {
	backend *Backend
}

// window copies a float tensor's logical elements into a []float64.
func window(x *tensor.Tensor) ([]float64, error) {
	if !x.DType().IsFloat() {
		return nil, fmt.Errorf("%w: linear algebra on %s tensor", tensor.ErrUnsupportedOperation, x.DType())
	}
	return x.Float64s()
}

// store writes a []float64 back into a fresh tensor of the given shape.
func (l *linAlg) store(data []float64, shape tensor.Shape, dtype tensor.DType) (*tensor.Tensor, error) {
	out, err := tensor.New(shape, dtype, l.backend)
	if err != nil {
		return nil, err
	}
	for i, f := range data {
		v, err := tensor.Convert(f, dtype)
		if err != nil {
			return nil, err
		}
		if err := out.Buffer().Set(i, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Scale multiplies every element by alpha.
func (l *linAlg) Scale(alpha any, x *tensor.Tensor) (*tensor.Tensor, error) {
	linalgTotal.Inc()
	a, ok := asScalarFloat(alpha)
	if !ok {
		return nil, fmt.Errorf("%w: scale factor %T", tensor.ErrInvalidDType, alpha)
	}
	data, err := window(x)
	if err != nil {
		return nil, err
	}
	floats.Scale(a, data)
	return l.store(data, x.Shape(), x.DType())
}

// Transpose swaps the axes of a rank-2 tensor.
func (l *linAlg) Transpose(x *tensor.Tensor) (*tensor.Tensor, error) {
	linalgTotal.Inc()
	if x.Rank() != 2 {
		return nil, fmt.Errorf("%w: transpose of rank-%d tensor", tensor.ErrUnsupportedOperation, x.Rank())
	}
	data, err := window(x)
	if err != nil {
		return nil, err
	}
	r, c := x.Shape()[0], x.Shape()[1]
	var dst mat.Dense
	dst.CloneFrom(mat.NewDense(r, c, data).T())
	return l.store(dst.RawMatrix().Data, tensor.Shape{c, r}, x.DType())
}

// Dot computes the inner product of two vectors, a matrix-vector product,
// or a matrix-matrix product, by rank.
func (l *linAlg) Dot(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	linalgTotal.Inc()
	ad, err := window(a)
	if err != nil {
		return nil, err
	}
	bd, err := window(b)
	if err != nil {
		return nil, err
	}

	switch {
	case a.Rank() == 1 && b.Rank() == 1:
		if a.Shape()[0] != b.Shape()[0] {
			return nil, fmt.Errorf("%w: dot of %v and %v", tensor.ErrInvalidShape, a.Shape(), b.Shape())
		}
		return l.store([]float64{floats.Dot(ad, bd)}, tensor.Shape{}, a.DType())

	case a.Rank() == 2 && b.Rank() == 1:
		m, k := a.Shape()[0], a.Shape()[1]
		if k != b.Shape()[0] {
			return nil, fmt.Errorf("%w: dot of %v and %v", tensor.ErrInvalidShape, a.Shape(), b.Shape())
		}
		var dst mat.VecDense
		dst.MulVec(mat.NewDense(m, k, ad), mat.NewVecDense(k, bd))
		return l.store(dst.RawVector().Data, tensor.Shape{m}, a.DType())

	case a.Rank() == 2 && b.Rank() == 2:
		m, k := a.Shape()[0], a.Shape()[1]
		k2, n := b.Shape()[0], b.Shape()[1]
		if k != k2 {
			return nil, fmt.Errorf("%w: dot of %v and %v", tensor.ErrInvalidShape, a.Shape(), b.Shape())
		}
		var dst mat.Dense
		dst.Mul(mat.NewDense(m, k, ad), mat.NewDense(k2, n, bd))
		return l.store(dst.RawMatrix().Data, tensor.Shape{m, n}, a.DType())

	default:
		return nil, fmt.Errorf("%w: dot of rank-%d and rank-%d tensors",
			tensor.ErrUnsupportedOperation, a.Rank(), b.Rank())
	}
}

// Cross computes the cross product of two 3-element vectors.
func (l *linAlg) Cross(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	linalgTotal.Inc()
	if a.Rank() != 1 || b.Rank() != 1 || a.Shape()[0] != 3 || b.Shape()[0] != 3 {
		return nil, fmt.Errorf("%w: cross of %v and %v, want two 3-vectors",
			tensor.ErrInvalidShape, a.Shape(), b.Shape())
	}
	ad, err := window(a)
	if err != nil {
		return nil, err
	}
	bd, err := window(b)
	if err != nil {
		return nil, err
	}
	c := r3.Cross(
		r3.Vec{X: ad[0], Y: ad[1], Z: ad[2]},
		r3.Vec{X: bd[0], Y: bd[1], Z: bd[2]},
	)
	return l.store([]float64{c.X, c.Y, c.Z}, tensor.Shape{3}, a.DType())
}

// Softmax applies softmax along the last axis of a rank-1 or rank-2 tensor.
func (l *linAlg) Softmax(x *tensor.Tensor) (*tensor.Tensor, error) {
	linalgTotal.Inc()
	if x.Rank() != 1 && x.Rank() != 2 {
		return nil, fmt.Errorf("%w: softmax of rank-%d tensor", tensor.ErrUnsupportedOperation, x.Rank())
	}
	data, err := window(x)
	if err != nil {
		return nil, err
	}
	cols := x.Shape()[x.Rank()-1]
	if cols == 0 {
		return l.store(data, x.Shape(), x.DType())
	}
	parallel.ForRows(len(data)/cols, cols, func(row int) {
		seg := data[row*cols : (row+1)*cols]
		max := floats.Max(seg)
		for i, v := range seg {
			seg[i] = math.Exp(v - max)
		}
		floats.Scale(1/floats.Sum(seg), seg)
	}, parallel.DefaultConfig())
	return l.store(data, x.Shape(), x.DType())
}
