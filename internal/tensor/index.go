package tensor

import "fmt"

// IndexStyle selects how a Range interprets its upper bound.
type IndexStyle int

// Range styles.
const (
	// HalfOpen treats a range as [start, end).
	HalfOpen IndexStyle = iota

	// Inclusive treats a range as [start, end].
	Inclusive
)

// Range selects a contiguous run of positions along axis 0. The step is
// always one; strided slicing is not supported.
type Range struct {
	Start int
	End   int
	Style IndexStyle
}

// limit returns the exclusive upper bound under the range's style.
func (r Range) limit() int {
	if r.Style == Inclusive {
		return r.End + 1
	}
	return r.End
}

// wrapIndex resolves a possibly negative index against an axis length.
func wrapIndex(i, n int) (int, error) {
	if i < -n || i >= n {
		return 0, fmt.Errorf("%w: index %d for axis of size %d", ErrOutOfRange, i, n)
	}
	return ((i % n) + n) % n, nil
}

// Index resolves an integer index on axis 0. Negative indices wrap.
// The result is a zero-copy view sharing the buffer, with axis 0 dropped:
// indexing a rank-1 tensor yields a rank-0 scalar view.
func (t *Tensor) Index(i int) (*Tensor, error) {
	if t.Rank() == 0 {
		return nil, fmt.Errorf("%w: cannot index a rank-0 tensor", ErrUnsupportedOperation)
	}
	i, err := wrapIndex(i, t.shape[0])
	if err != nil {
		return nil, err
	}
	rest := t.shape[1:].Clone()
	return &Tensor{
		buf:      t.buf,
		shape:    rest,
		dtype:    t.dtype,
		offset:   t.offset + i*rest.NumElements(),
		provider: t.provider,
	}, nil
}

// Narrow resolves a range on axis 0 into a zero-copy view.
func (t *Tensor) Narrow(r Range) (*Tensor, error) {
	if t.Rank() == 0 {
		return nil, fmt.Errorf("%w: cannot narrow a rank-0 tensor", ErrUnsupportedOperation)
	}
	limit := r.limit()
	n := t.shape[0]
	if r.Start < 0 || limit > n || r.Start > limit {
		return nil, fmt.Errorf("%w: range [%d, %d) for axis of size %d", ErrOutOfRange, r.Start, limit, n)
	}
	shape := t.shape.Clone()
	shape[0] = limit - r.Start
	rest := shape[1:].NumElements()
	return &Tensor{
		buf:      t.buf,
		shape:    shape,
		dtype:    t.dtype,
		offset:   t.offset + r.Start*rest,
		provider: t.provider,
	}, nil
}

// SetAt writes a scalar through an axis-0 index directly into the buffer at
// offset+i. The value is checked against the tensor's element kind.
func (t *Tensor) SetAt(i int, value any) error {
	if t.Rank() == 0 {
		return fmt.Errorf("%w: cannot assign through an index on a rank-0 tensor", ErrUnsupportedOperation)
	}
	i, err := wrapIndex(i, t.shape[0])
	if err != nil {
		return err
	}
	v, err := Convert(value, t.dtype)
	if err != nil {
		return err
	}
	return t.buf.Set(t.offset+i, v)
}

// SetRange is the assignment counterpart of Narrow. Range assignment is not
// supported; the call always fails.
func (t *Tensor) SetRange(Range, any) error {
	return fmt.Errorf("%w: assignment through a range index", ErrUnsupportedOperation)
}

type selMode int

const (
	selAll selMode = iota
	selAt
	selSpan
)

// Sel selects elements along one axis of a Slice call.
type Sel struct {
	lo, hi int
	mode   selMode
}

// All selects the full axis.
func All() Sel {
	return Sel{mode: selAll}
}

// Pick selects a single position; the axis is kept with size 1.
func Pick(i int) Sel {
	return Sel{lo: i, hi: i + 1, mode: selAt}
}

// Span selects the half-open run [lo, hi).
func Span(lo, hi int) Sel {
	return Sel{lo: lo, hi: hi, mode: selSpan}
}

// Slice extracts a sub-tensor selecting, per axis, either the full axis, a
// single position, or a [lo, hi) span. Spans are clamped into bounds; a span
// with lo > hi fails with ErrOutOfRange. Axes beyond the given selectors are
// taken in full.
//
// Unlike Index and Narrow, Slice always allocates a fresh buffer and copies
// the selected elements in stride order.
func (t *Tensor) Slice(sels ...Sel) (*Tensor, error) {
	if len(sels) > t.Rank() {
		return nil, fmt.Errorf("%w: %d selectors for rank-%d tensor", ErrOutOfRange, len(sels), t.Rank())
	}

	lo := make([]int, t.Rank())
	outShape := make(Shape, t.Rank())
	for axis := 0; axis < t.Rank(); axis++ {
		n := t.shape[axis]
		sel := Sel{mode: selAll}
		if axis < len(sels) {
			sel = sels[axis]
		}
		switch sel.mode {
		case selAll:
			lo[axis], outShape[axis] = 0, n
		case selAt:
			i, err := wrapIndex(sel.lo, n)
			if err != nil {
				return nil, err
			}
			lo[axis], outShape[axis] = i, 1
		case selSpan:
			if sel.lo > sel.hi {
				return nil, fmt.Errorf("%w: span [%d, %d) on axis %d", ErrOutOfRange, sel.lo, sel.hi, axis)
			}
			start, end := clamp(sel.lo, 0, n), clamp(sel.hi, 0, n)
			lo[axis], outShape[axis] = start, end-start
		}
	}

	out, err := New(outShape, t.dtype, t.provider)
	if err != nil {
		return nil, err
	}
	srcStrides := t.shape.Strides()
	idx := make([]int, t.Rank())
	for flat := 0; flat < out.Size(); flat++ {
		outShape.Unravel(flat, idx)
		src := t.offset
		for axis := range idx {
			src += (lo[axis] + idx[axis]) * srcStrides[axis]
		}
		if err := out.buf.Set(flat, t.buf.At(src)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Reshape returns a zero-copy view of the same buffer with a new shape.
// The total element count must be preserved.
func (t *Tensor) Reshape(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != t.Size() {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			ErrInvalidShape, t.shape, t.Size(), shape, shape.NumElements())
	}
	return &Tensor{
		buf:      t.buf,
		shape:    shape.Clone(),
		dtype:    t.dtype,
		offset:   t.offset,
		provider: t.provider,
	}, nil
}

// Unsqueeze returns a view with a new size-1 axis inserted at the given
// position. Supports negative axis indexing up to rank+1 positions.
func (t *Tensor) Unsqueeze(axis int) (*Tensor, error) {
	rank := t.Rank()
	if axis < -(rank + 1) || axis > rank {
		return nil, fmt.Errorf("%w: axis %d for rank-%d tensor", ErrOutOfRange, axis, rank)
	}
	if axis < 0 {
		axis += rank + 1
	}
	shape := make(Shape, 0, rank+1)
	shape = append(shape, t.shape[:axis]...)
	shape = append(shape, 1)
	shape = append(shape, t.shape[axis:]...)
	return t.Reshape(shape)
}

// Squeeze returns a view with the given size-1 axis removed.
func (t *Tensor) Squeeze(axis int) (*Tensor, error) {
	axis, err := resolveAxis(axis, t.Rank())
	if err != nil {
		return nil, err
	}
	if t.shape[axis] != 1 {
		return nil, fmt.Errorf("%w: cannot squeeze axis %d of size %d", ErrInvalidShape, axis, t.shape[axis])
	}
	shape := make(Shape, 0, t.Rank()-1)
	shape = append(shape, t.shape[:axis]...)
	shape = append(shape, t.shape[axis+1:]...)
	return t.Reshape(shape)
}

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
