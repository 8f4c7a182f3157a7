package tensor

import "fmt"

// Cat concatenates tensors along the given axis. All inputs must share the
// element kind, the rank, and every dimension except the concatenation axis;
// mismatches fail with ErrInvalidShape before anything is written.
// Supports negative axis indexing.
func Cat(tensors []*Tensor, axis int) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("%w: cat of no tensors", ErrInvalidShape)
	}
	first := tensors[0]
	axis, err := resolveAxis(axis, first.Rank())
	if err != nil {
		return nil, err
	}

	outShape := first.shape.Clone()
	outShape[axis] = 0
	for i, t := range tensors {
		if t.dtype != first.dtype {
			return nil, fmt.Errorf("%w: cat of %s and %s tensors", ErrInvalidDType, first.dtype, t.dtype)
		}
		if t.Rank() != first.Rank() {
			return nil, fmt.Errorf("%w: cat of rank-%d and rank-%d tensors", ErrInvalidShape, first.Rank(), t.Rank())
		}
		for d := range t.shape {
			if d != axis && t.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("%w: tensor %d has shape %v, want %v along non-concat axes",
					ErrInvalidShape, i, t.shape, first.shape)
			}
		}
		outShape[axis] += t.shape[axis]
	}

	out, err := New(outShape, first.dtype, first.provider)
	if err != nil {
		return nil, err
	}

	if axis == 0 {
		// Leading-axis fast path: inputs land back to back in row-major
		// order, so each window copies sequentially.
		pos := 0
		for _, t := range tensors {
			for i := 0; i < t.Size(); i++ {
				if err := out.buf.Set(pos, t.buf.At(t.offset+i)); err != nil {
					return nil, err
				}
				pos++
			}
		}
		return out, nil
	}

	base := 0
	idx := make([]int, first.Rank())
	for _, t := range tensors {
		for flat := 0; flat < t.Size(); flat++ {
			t.shape.Unravel(flat, idx)
			idx[axis] += base
			dst := outShape.Ravel(idx)
			idx[axis] -= base
			if err := out.buf.Set(dst, t.buf.At(t.offset+flat)); err != nil {
				return nil, err
			}
		}
		base += t.shape[axis]
	}
	return out, nil
}

// Stack concatenates tensors along a fresh axis: every input gains a size-1
// axis at the given position, then the expanded tensors are concatenated
// there. All inputs must have identical shapes.
func Stack(tensors []*Tensor, axis int) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("%w: stack of no tensors", ErrInvalidShape)
	}
	expanded := make([]*Tensor, len(tensors))
	for i, t := range tensors {
		u, err := t.Unsqueeze(axis)
		if err != nil {
			return nil, err
		}
		expanded[i] = u
	}
	return Cat(expanded, axis)
}
