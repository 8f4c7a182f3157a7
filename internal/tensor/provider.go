package tensor

// Buffer is a fixed-length, fixed-dtype element store allocated by a Provider.
// Multiple tensors may alias one buffer; sharing is how zero-copy views and
// reshape are implemented.
type Buffer interface {
	// Len returns the number of elements the buffer holds.
	Len() int

	// DType returns the element kind of the buffer.
	DType() DType

	// At returns the element at index i as its native Go value
	// (float32 for Float32, complex64 for Complex64, and so on).
	// i must be in [0, Len()); an out-of-range index panics, matching
	// Go slice indexing. The core only calls At with indices it has
	// already bounds-checked against the tensor window.
	At(i int) any

	// Set writes the element at index i. The value must already be the
	// buffer's native representation; use Convert to coerce scalars.
	Set(i int, v any) error
}

// RawBuffer is the bulk-transfer tier of Buffer. Providers whose buffers live
// in addressable host memory expose the raw byte image for dump/load.
type RawBuffer interface {
	Buffer

	// Bytes returns the raw byte image of the buffer.
	Bytes() []byte

	// SetBytes bulk-loads a raw byte image. The length must equal
	// Len()*DType().Size().
	SetBytes(b []byte) error
}

// Capability is a provider's declared level of support for copying buffers.
// It is fixed at provider construction and checked up front, never discovered
// by interrogating a live buffer.
type Capability int

// Capability tiers, lowest to highest.
const (
	// CapabilityNone means the provider offers no copy primitive at all;
	// Clone and codec materialization fail.
	CapabilityNone Capability = iota

	// CapabilityElement means buffers support element-by-element access.
	CapabilityElement

	// CapabilityRaw means buffers additionally support bulk byte dump/load.
	CapabilityRaw
)

// String returns a human-readable capability name.
func (c Capability) String() string {
	switch c {
	case CapabilityNone:
		return "none"
	case CapabilityElement:
		return "element"
	case CapabilityRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Op identifies an elementwise binary operator applied through the provider.
type Op int

// Elementwise operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// ReduceOp identifies a numeric accumulation delegated to the provider.
type ReduceOp int

// Reduction operators.
const (
	ReduceMean ReduceOp = iota
	ReduceMin
	ReduceMax
	ReduceArgMin
	ReduceArgMax
)

// Provider supplies buffer allocation and numeric kernels. The core never
// implements elementwise or linear-algebra kernels itself; it only shapes
// inputs and outputs around these calls.
type Provider interface {
	// Name returns the provider name (e.g. "cpu").
	Name() string

	// Capability returns the provider's buffer copy tier.
	Capability() Capability

	// Alloc allocates a zero-filled buffer of n elements of the given kind.
	Alloc(n int, dtype DType) (Buffer, error)

	// Map applies fn to every element of x and returns a fresh tensor.
	// Only defined for real numeric tensors.
	Map(x *Tensor, fn func(float64) float64) (*Tensor, error)

	// Apply performs x <op> operand elementwise into a fresh tensor.
	// The operand is either a bare scalar or a *Tensor of identical shape.
	Apply(x *Tensor, op Op, operand any) (*Tensor, error)

	// Reduce accumulates over the whole tensor (axis nil, returns a bare
	// scalar) or along one axis (returns a *Tensor with the reduced axis
	// kept at size 1; the caller strips it as needed).
	Reduce(x *Tensor, axis *int, op ReduceOp) (any, error)

	// LinAlg returns the provider's linear-algebra kernel set.
	LinAlg() LinAlg
}

// LinAlg is the provider's linear-algebra kernel surface.
type LinAlg interface {
	// Scale multiplies every element by alpha.
	Scale(alpha any, x *Tensor) (*Tensor, error)

	// Transpose swaps the two axes of a rank-2 tensor.
	Transpose(x *Tensor) (*Tensor, error)

	// Dot computes the matrix (rank 2) or inner (rank 1) product.
	Dot(a, b *Tensor) (*Tensor, error)

	// Cross computes the cross product of two 3-element vectors.
	Cross(a, b *Tensor) (*Tensor, error)

	// Softmax applies softmax along the last axis.
	Softmax(x *Tensor) (*Tensor, error)
}
