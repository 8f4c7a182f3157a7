package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// Dimensions are non-negative; a zero anywhere makes the tensor empty.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// A rank-0 shape describes a single scalar.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: negative dimension %d at index %d", ErrInvalidShape, dim, i)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Strides calculates row-major strides for the shape (last axis fastest).
// Strides are always derived from the shape, never stored, so they cannot
// desynchronize from it.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Unravel decomposes a flat row-major index into a multi-index,
// iterating axes from innermost to outermost.
func (s Shape) Unravel(flat int, out []int) []int {
	if out == nil {
		out = make([]int, len(s))
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = flat % s[i]
		flat /= s[i]
	}
	return out
}

// Ravel recomposes a multi-index into a flat row-major index.
func (s Shape) Ravel(index []int) int {
	flat := 0
	for i := 0; i < len(s); i++ {
		flat = flat*s[i] + index[i]
	}
	return flat
}

// resolveAxis normalizes a possibly negative axis against rank.
func resolveAxis(axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return 0, fmt.Errorf("%w: axis %d for rank-%d tensor", ErrOutOfRange, axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}
