package tensor

import "fmt"

// MockProvider is an element-tier provider used by tests. Its buffers box
// every element in a []any, exercising the slow capability path that a
// non-host backend would take. Kernels are not implemented; operations that
// delegate to the provider fail with ErrUnsupportedOperation.
type MockProvider struct {
	capability Capability
}

// NewMockProvider creates a mock provider at the element capability tier.
func NewMockProvider() *MockProvider {
	return &MockProvider{capability: CapabilityElement}
}

// NewMockProviderWithCapability creates a mock provider at an explicit tier.
func NewMockProviderWithCapability(c Capability) *MockProvider {
	return &MockProvider{capability: c}
}

// Name returns the provider name.
func (m *MockProvider) Name() string { return "mock" }

// Capability returns the configured tier.
func (m *MockProvider) Capability() Capability { return m.capability }

// Alloc allocates a zero-filled boxed buffer.
func (m *MockProvider) Alloc(n int, dtype DType) (Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative buffer size %d", ErrInvalidShape, n)
	}
	data := make([]any, n)
	zero := zeroValue(dtype)
	for i := range data {
		data[i] = zero
	}
	return &boxBuffer{dtype: dtype, data: data}, nil
}

// Map is not implemented on the mock provider.
func (m *MockProvider) Map(*Tensor, func(float64) float64) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no map kernel", ErrUnsupportedOperation)
}

// Apply is not implemented on the mock provider.
func (m *MockProvider) Apply(*Tensor, Op, any) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no elementwise kernels", ErrUnsupportedOperation)
}

// Reduce is not implemented on the mock provider.
func (m *MockProvider) Reduce(*Tensor, *int, ReduceOp) (any, error) {
	return nil, fmt.Errorf("%w: mock provider has no reduction kernels", ErrUnsupportedOperation)
}

// LinAlg returns the mock linear-algebra surface; every kernel fails.
func (m *MockProvider) LinAlg() LinAlg { return mockLinAlg{} }

type mockLinAlg struct{}

func (mockLinAlg) Scale(any, *Tensor) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no linear algebra", ErrUnsupportedOperation)
}

func (mockLinAlg) Transpose(*Tensor) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no linear algebra", ErrUnsupportedOperation)
}

func (mockLinAlg) Dot(*Tensor, *Tensor) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no linear algebra", ErrUnsupportedOperation)
}

func (mockLinAlg) Cross(*Tensor, *Tensor) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no linear algebra", ErrUnsupportedOperation)
}

func (mockLinAlg) Softmax(*Tensor) (*Tensor, error) {
	return nil, fmt.Errorf("%w: mock provider has no linear algebra", ErrUnsupportedOperation)
}

// boxBuffer stores every element as a boxed any. Element tier only: it does
// not expose a raw byte image.
type boxBuffer struct {
	dtype DType
	data  []any
}

func (b *boxBuffer) Len() int     { return len(b.data) }
func (b *boxBuffer) DType() DType { return b.dtype }

func (b *boxBuffer) At(i int) any { return b.data[i] }

func (b *boxBuffer) Set(i int, v any) error {
	if i < 0 || i >= len(b.data) {
		return fmt.Errorf("%w: buffer index %d of %d", ErrOutOfRange, i, len(b.data))
	}
	b.data[i] = v
	return nil
}

// zeroValue returns the native zero of an element kind.
func zeroValue(dt DType) any {
	switch dt {
	case Bool:
		return false
	case Uint8:
		return uint8(0)
	case Uint16:
		return uint16(0)
	case Uint32:
		return uint32(0)
	case Uint64:
		return uint64(0)
	case Int8:
		return int8(0)
	case Int16:
		return int16(0)
	case Int32:
		return int32(0)
	case Int64:
		return int64(0)
	case Float32:
		return float32(0)
	case Float64:
		return float64(0)
	case Complex64:
		return complex64(0)
	case Complex128:
		return complex128(0)
	default:
		panic("unknown data type")
	}
}
