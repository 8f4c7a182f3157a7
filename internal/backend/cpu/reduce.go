package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/tensor"
)

// Reduce accumulates over the whole tensor (axis nil, bare scalar result) or
// along one axis (keep-shape tensor result; the core strips the axis).
func (b *Backend) Reduce(x *tensor.Tensor, axis *int, op tensor.ReduceOp) (any, error) {
	if !x.DType().IsNumeric() {
		return nil, fmt.Errorf("%w: reduction of %s tensor", tensor.ErrUnsupportedOperation, x.DType())
	}
	reduceTotal.Inc()
	if axis == nil {
		return b.reduceAll(x, op)
	}
	return b.reduceAxis(x, *axis, op)
}

func (b *Backend) reduceAll(x *tensor.Tensor, op tensor.ReduceOp) (any, error) {
	n := x.Size()
	if n == 0 {
		return nil, fmt.Errorf("%w: reduction of empty tensor", tensor.ErrUnsupportedOperation)
	}
	switch op {
	case tensor.ReduceMean:
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += elemFloat(x, i)
		}
		return sum / float64(n), nil

	case tensor.ReduceMin, tensor.ReduceMax:
		best := elemFloat(x, 0)
		for i := 1; i < n; i++ {
			if v := elemFloat(x, i); better(op, v, best) {
				best = v
			}
		}
		return best, nil

	case tensor.ReduceArgMin, tensor.ReduceArgMax:
		best, bestIdx := elemFloat(x, 0), 0
		for i := 1; i < n; i++ {
			if v := elemFloat(x, i); better(op, v, best) {
				best, bestIdx = v, i
			}
		}
		return bestIdx, nil

	default:
		return nil, fmt.Errorf("%w: reduction operator %d", tensor.ErrUnsupportedOperation, op)
	}
}

//nolint:gocyclo,cyclop // One accumulation loop per reduction family.
func (b *Backend) reduceAxis(x *tensor.Tensor, axis int, op tensor.ReduceOp) (*tensor.Tensor, error) {
	shape := x.Shape()
	if axis < 0 || axis >= len(shape) {
		return nil, fmt.Errorf("%w: axis %d for rank-%d tensor", tensor.ErrOutOfRange, axis, len(shape))
	}
	if shape[axis] == 0 {
		return nil, fmt.Errorf("%w: reduction over empty axis %d", tensor.ErrUnsupportedOperation, axis)
	}

	keepShape := shape.Clone()
	keepShape[axis] = 1
	cells := keepShape.NumElements()
	acc := make([]float64, cells)
	argAcc := make([]int64, cells)
	seen := make([]bool, cells)

	idx := make([]int, len(shape))
	for flat := 0; flat < x.Size(); flat++ {
		shape.Unravel(flat, idx)
		along := idx[axis]
		idx[axis] = 0
		cell := keepShape.Ravel(idx)
		idx[axis] = along

		v := elemFloat(x, flat)
		switch op {
		case tensor.ReduceMean:
			acc[cell] += v
		case tensor.ReduceMin, tensor.ReduceMax:
			if !seen[cell] || better(op, v, acc[cell]) {
				acc[cell] = v
			}
		case tensor.ReduceArgMin, tensor.ReduceArgMax:
			if !seen[cell] || better(op, v, acc[cell]) {
				acc[cell], argAcc[cell] = v, int64(along)
			}
		default:
			return nil, fmt.Errorf("%w: reduction operator %d", tensor.ErrUnsupportedOperation, op)
		}
		seen[cell] = true
	}

	outDType := reduceDType(x.DType(), op)
	out, err := tensor.New(keepShape, outDType, b)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cells; i++ {
		var raw any
		switch op {
		case tensor.ReduceMean:
			raw = acc[i] / float64(shape[axis])
		case tensor.ReduceArgMin, tensor.ReduceArgMax:
			raw = argAcc[i]
		default:
			raw = acc[i]
		}
		v, err := tensor.Convert(raw, outDType)
		if err != nil {
			return nil, err
		}
		if err := out.Buffer().Set(i, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// better reports whether v beats best under the reduction's ordering.
// Strict comparison keeps the first-seen winner on ties.
func better(op tensor.ReduceOp, v, best float64) bool {
	if op == tensor.ReduceMin || op == tensor.ReduceArgMin {
		return v < best
	}
	return v > best
}

// reduceDType picks the element kind of an axis reduction's output.
func reduceDType(in tensor.DType, op tensor.ReduceOp) tensor.DType {
	switch op {
	case tensor.ReduceArgMin, tensor.ReduceArgMax:
		return tensor.Int64
	case tensor.ReduceMean:
		if in == tensor.Float64 {
			return tensor.Float64
		}
		return tensor.Float32
	default:
		return in
	}
}
