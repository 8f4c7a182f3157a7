package tensor

import (
	"fmt"
	"reflect"
)

// FromScalar creates a rank-0 tensor holding a single scalar. The element
// kind is inferred from the scalar's category: numeric values become
// Float32, booleans Bool, complex values Complex64.
func FromScalar(value any, p Provider) (*Tensor, error) {
	dtype, err := inferScalarDType(value)
	if err != nil {
		return nil, err
	}
	return FromScalarTyped(value, dtype, p)
}

// FromScalarTyped creates a rank-0 tensor with an explicit element kind.
// A kind incompatible with the scalar's category fails with ErrInvalidDType.
func FromScalarTyped(value any, dtype DType, p Provider) (*Tensor, error) {
	v, err := Convert(value, dtype)
	if err != nil {
		return nil, err
	}
	t, err := New(Shape{}, dtype, p)
	if err != nil {
		return nil, err
	}
	if err := t.buf.Set(0, v); err != nil {
		return nil, err
	}
	return t, nil
}

// FromNested creates a tensor from a nested Go slice. The shape is inferred
// from nesting depth and per-level lengths; sibling sub-slices that disagree
// in length fail with ErrInvalidShape. The element kind is taken from the
// leaf scalar type ([]float64 gives Float64, [][]int32 gives Int32, plain
// int maps to Int64).
func FromNested(value any, p Provider) (*Tensor, error) {
	shape, err := nestedShape(reflect.ValueOf(value))
	if err != nil {
		return nil, err
	}
	return FromNestedShaped(value, shape, p)
}

// FromNestedShaped creates a tensor from a nested Go slice with an explicit
// shape. Flattening fails with ErrInvalidShape if the nesting does not match
// the shape exactly.
func FromNestedShaped(value any, shape Shape, p Provider) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	flat := make([]any, 0, shape.NumElements())
	if err := flattenNested(reflect.ValueOf(value), shape, 0, &flat); err != nil {
		return nil, err
	}
	if len(flat) != shape.NumElements() {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, flattened %d",
			ErrInvalidShape, shape, shape.NumElements(), len(flat))
	}

	dtype := Float32
	if len(flat) > 0 {
		dt, err := leafDType(flat[0])
		if err != nil {
			return nil, err
		}
		dtype = dt
	}

	t, err := New(shape, dtype, p)
	if err != nil {
		return nil, err
	}
	for i, raw := range flat {
		v, err := Convert(raw, dtype)
		if err != nil {
			return nil, err
		}
		if err := t.buf.Set(i, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// nestedShape walks the nesting of v, recording the length at every level.
// An empty slice terminates the walk with a zero dimension.
func nestedShape(rv reflect.Value) (Shape, error) {
	shape := Shape{}
	for rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		n := rv.Len()
		shape = append(shape, n)
		if n == 0 {
			break
		}
		rv = elem(rv.Index(0))
	}
	return shape, nil
}

// flattenNested appends scalar leaves to out in row-major order, verifying
// that every sub-slice matches the expected length for its depth.
func flattenNested(rv reflect.Value, shape Shape, depth int, out *[]any) error {
	rv = elem(rv)
	if depth == len(shape) {
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return fmt.Errorf("%w: nesting deeper than shape %v", ErrInvalidShape, shape)
		}
		*out = append(*out, rv.Interface())
		return nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("%w: expected a sequence at depth %d of shape %v", ErrInvalidShape, depth, shape)
	}
	if rv.Len() != shape[depth] {
		return fmt.Errorf("%w: sub-sequence length %d at depth %d, want %d",
			ErrInvalidShape, rv.Len(), depth, shape[depth])
	}
	for i := 0; i < rv.Len(); i++ {
		if err := flattenNested(rv.Index(i), shape, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// elem unwraps interface values produced by []any nesting.
func elem(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

// leafDType maps a leaf scalar's Go type to its element kind.
func leafDType(v any) (DType, error) {
	switch v.(type) {
	case bool:
		return Bool, nil
	case uint8:
		return Uint8, nil
	case uint16:
		return Uint16, nil
	case uint32:
		return Uint32, nil
	case uint64, uint:
		return Uint64, nil
	case int8:
		return Int8, nil
	case int16:
		return Int16, nil
	case int32:
		return Int32, nil
	case int64, int:
		return Int64, nil
	case float32:
		return Float32, nil
	case float64:
		return Float64, nil
	case complex64:
		return Complex64, nil
	case complex128:
		return Complex128, nil
	default:
		return 0, fmt.Errorf("%w: unsupported element type %T", ErrInvalidDType, v)
	}
}
