// Package tensor implements the core multi-dimensional array for the Axon
// ML framework: a shape + offset window over a flat element buffer with
// row-major strides derived from the shape.
//
// # Views
//
// Index, Narrow, Reshape, Squeeze, and Unsqueeze return zero-copy views that
// alias the source buffer; Slice is the deliberate copy path. A write
// through any view is visible through every tensor sharing the buffer, and
// callers are responsible for not mutating a shared buffer concurrently.
//
// # Providers
//
// Buffer allocation and numeric kernels come from a Provider. The package
// implements only metadata-level algorithms itself: views and indexing,
// norm/normalize, top-k selection, masked mean pooling, and concatenation.
// Everything elementwise or linear-algebraic delegates to the provider.
//
// # Errors
//
// All failures wrap one of the package sentinel errors (ErrInvalidShape,
// ErrInvalidDType, ErrOutOfRange, ErrUnsupportedOperation, ErrCorrupted,
// ErrBackendMismatch, ErrCloneUnsupported) for errors.Is dispatch.
package tensor
