// Copyright 2026 Axon ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the Axon
// ML framework.
//
// The package defines the core types for dynamically-typed tensors over
// provider-allocated buffers:
//   - Tensor: shape + offset window over a flat element buffer
//   - Buffer, RawBuffer: provider-allocated element storage tiers
//   - Provider: interface for compute backends
//   - Shape, DType, Range: addressing primitives
//
// Example:
//
//	p := cpu.New()
//	x, _ := tensor.FromNested([][]float32{{1, 2}, {3, 4}}, p)
//	row, _ := x.Index(0) // zero-copy view
package tensor

import (
	"github.com/axon-ml/axon/internal/tensor"
)

// Type aliases for public API

// Tensor is a multi-dimensional array view over an element buffer,
// addressed by shape + offset + derived stride.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// DType represents the element kind of a tensor.
type DType = tensor.DType

// Element kind constants.
const (
	Bool       DType = tensor.Bool
	Uint8      DType = tensor.Uint8
	Uint16     DType = tensor.Uint16
	Uint32     DType = tensor.Uint32
	Uint64     DType = tensor.Uint64
	Int8       DType = tensor.Int8
	Int16      DType = tensor.Int16
	Int32      DType = tensor.Int32
	Int64      DType = tensor.Int64
	Float32    DType = tensor.Float32
	Float64    DType = tensor.Float64
	Complex64  DType = tensor.Complex64
	Complex128 DType = tensor.Complex128
)

// Range selects a contiguous run of positions along axis 0.
type Range = tensor.Range

// IndexStyle selects how a Range interprets its upper bound.
type IndexStyle = tensor.IndexStyle

// Range styles.
const (
	HalfOpen  IndexStyle = tensor.HalfOpen
	Inclusive IndexStyle = tensor.Inclusive
)

// Sel selects elements along one axis of a Slice call.
type Sel = tensor.Sel

// Common errors.
var (
	ErrInvalidShape         = tensor.ErrInvalidShape
	ErrInvalidDType         = tensor.ErrInvalidDType
	ErrOutOfRange           = tensor.ErrOutOfRange
	ErrUnsupportedOperation = tensor.ErrUnsupportedOperation
	ErrCorrupted            = tensor.ErrCorrupted
	ErrBackendMismatch      = tensor.ErrBackendMismatch
	ErrCloneUnsupported     = tensor.ErrCloneUnsupported
)

// Creation functions

// New creates a zero-filled tensor of the given shape and element kind.
func New(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	return tensor.New(shape, dtype, p)
}

// FromBuffer constructs a zero-copy tensor view over an existing buffer.
func FromBuffer(buf Buffer, offset int, shape Shape, p Provider) (*Tensor, error) {
	return tensor.FromBuffer(buf, offset, shape, p)
}

// FromNested creates a tensor from a nested Go slice, inferring shape and
// element kind from the nesting.
//
// Example:
//
//	x, err := tensor.FromNested([][]float32{{1, 2, 3}, {4, 5, 6}}, p)
func FromNested(value any, p Provider) (*Tensor, error) {
	return tensor.FromNested(value, p)
}

// FromNestedShaped creates a tensor from a nested Go slice with an explicit
// shape.
func FromNestedShaped(value any, shape Shape, p Provider) (*Tensor, error) {
	return tensor.FromNestedShaped(value, shape, p)
}

// FromScalar creates a rank-0 tensor holding a single scalar.
func FromScalar(value any, p Provider) (*Tensor, error) {
	return tensor.FromScalar(value, p)
}

// FromScalarTyped creates a rank-0 tensor with an explicit element kind.
func FromScalarTyped(value any, dtype DType, p Provider) (*Tensor, error) {
	return tensor.FromScalarTyped(value, dtype, p)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	return tensor.Zeros(shape, dtype, p)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	return tensor.Ones(shape, dtype, p)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, dtype DType, value any, p Provider) (*Tensor, error) {
	return tensor.Full(shape, dtype, value, p)
}

// Arange creates a 1-D tensor with values from start up to but excluding
// stop.
func Arange(start, stop float64, dtype DType, p Provider) (*Tensor, error) {
	return tensor.Arange(start, stop, dtype, p)
}

// Slice selectors

// All selects the full axis.
func All() Sel { return tensor.All() }

// Pick selects a single position; the axis is kept with size 1.
func Pick(i int) Sel { return tensor.Pick(i) }

// Span selects the half-open run [lo, hi).
func Span(lo, hi int) Sel { return tensor.Span(lo, hi) }

// Manipulation functions

// Cat concatenates tensors along an axis.
//
// Example:
//
//	c, err := tensor.Cat([]*tensor.Tensor{a, b}, 0)
func Cat(tensors []*Tensor, axis int) (*Tensor, error) {
	return tensor.Cat(tensors, axis)
}

// Stack concatenates tensors along a fresh size-1 axis.
func Stack(tensors []*Tensor, axis int) (*Tensor, error) {
	return tensor.Stack(tensors, axis)
}

// Utility functions

// ParseDType converts a serialized name back to a DType.
func ParseDType(s string) (DType, bool) {
	return tensor.ParseDType(s)
}

// Convert coerces a Go scalar into the native representation of dt.
func Convert(v any, dt DType) (any, error) {
	return tensor.Convert(v, dt)
}
