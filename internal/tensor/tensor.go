package tensor

import "fmt"

// Tensor is a multi-dimensional array view over an element buffer, addressed
// by shape + offset + derived stride. Several tensors may share one buffer:
// a view differs from its source only in offset and shape, and a write
// through any view is visible through every other tensor aliasing the buffer.
//
// Example:
//
//	p := cpu.New()
//	t, _ := tensor.New(tensor.Shape{3, 4}, tensor.Float32, p)
//	row, _ := t.Index(1) // zero-copy view of row 1
type Tensor struct {
	buf      Buffer
	shape    Shape
	dtype    DType
	offset   int
	provider Provider
}

// New creates a zero-filled tensor of the given shape and element kind.
func New(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	buf, err := p.Alloc(shape.NumElements(), dtype)
	if err != nil {
		return nil, err
	}
	return &Tensor{
		buf:      buf,
		shape:    shape.Clone(),
		dtype:    dtype,
		offset:   0,
		provider: p,
	}, nil
}

// FromBuffer constructs a tensor over an existing buffer with an explicit
// offset and shape. No data is copied and no allocation happens; the result
// aliases buf.
func FromBuffer(buf Buffer, offset int, shape Shape, p Provider) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrOutOfRange, offset)
	}
	if buf.Len()-offset < shape.NumElements() {
		return nil, fmt.Errorf("%w: buffer holds %d elements from offset %d, shape %v needs %d",
			ErrInvalidShape, buf.Len()-offset, offset, shape, shape.NumElements())
	}
	return &Tensor{
		buf:      buf,
		shape:    shape.Clone(),
		dtype:    buf.DType(),
		offset:   offset,
		provider: p,
	}, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	return New(shape, dtype, p)
}

// Ones creates a tensor filled with ones (true for bool tensors).
func Ones(shape Shape, dtype DType, p Provider) (*Tensor, error) {
	var one any = 1
	if dtype == Bool {
		one = true
	}
	return Full(shape, dtype, one, p)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, dtype DType, value any, p Provider) (*Tensor, error) {
	v, err := Convert(value, dtype)
	if err != nil {
		return nil, err
	}
	t, err := New(shape, dtype, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.Size(); i++ {
		if err := t.buf.Set(i, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Arange creates a 1-D tensor with values start, start+1, ... up to but
// excluding stop. The element count is int(stop-start), truncated toward
// zero: a fractional span like (0, 4.5) yields 4 elements, and a stop at
// or below start yields an empty tensor.
func Arange(start, stop float64, dtype DType, p Provider) (*Tensor, error) {
	n := int(stop - start)
	if n < 0 {
		n = 0
	}
	t, err := New(Shape{n}, dtype, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		v, err := Convert(start+float64(i), dtype)
		if err != nil {
			return nil, err
		}
		if err := t.buf.Set(i, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// DType returns the tensor's element kind.
func (t *Tensor) DType() DType {
	return t.dtype
}

// Offset returns the buffer index of the tensor's logical element 0.
func (t *Tensor) Offset() int {
	return t.offset
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return t.shape.NumElements()
}

// Strides returns the row-major strides derived from the shape.
func (t *Tensor) Strides() []int {
	return t.shape.Strides()
}

// Buffer returns the underlying element buffer.
// Used by providers and the codec for low-level access.
func (t *Tensor) Buffer() Buffer {
	return t.buf
}

// Provider returns the provider that allocated the tensor's buffer.
func (t *Tensor) Provider() Provider {
	return t.provider
}

// Item returns the scalar value of a single-element tensor.
func (t *Tensor) Item() (any, error) {
	if t.Size() != 1 {
		return nil, fmt.Errorf("%w: Item on tensor of shape %v", ErrUnsupportedOperation, t.shape)
	}
	return t.buf.At(t.offset), nil
}

// At returns the element at the given multi-index.
func (t *Tensor) At(indices ...int) (any, error) {
	flat, err := t.flatIndex(indices)
	if err != nil {
		return nil, err
	}
	return t.buf.At(flat), nil
}

// Set writes the element at the given multi-index. The value is coerced to
// the tensor's element kind; incompatible values fail with ErrInvalidDType.
func (t *Tensor) Set(value any, indices ...int) error {
	flat, err := t.flatIndex(indices)
	if err != nil {
		return err
	}
	v, err := Convert(value, t.dtype)
	if err != nil {
		return err
	}
	return t.buf.Set(flat, v)
}

// flatIndex resolves a full multi-index into a buffer position.
func (t *Tensor) flatIndex(indices []int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrOutOfRange, len(t.shape), len(indices))
	}
	flat := t.offset
	strides := t.shape.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for axis %d (size %d)",
				ErrOutOfRange, idx, i, t.shape[i])
		}
		flat += idx * strides[i]
	}
	return flat, nil
}

// Clone creates a deep copy of the tensor's window into a fresh buffer.
// The copy strategy follows the provider's declared capability tier: bulk
// byte dump/load at the raw tier, an element loop at the element tier, and
// ErrCloneUnsupported below that.
func (t *Tensor) Clone() (*Tensor, error) {
	switch t.provider.Capability() {
	case CapabilityRaw:
		src, ok := t.buf.(RawBuffer)
		if !ok {
			return nil, fmt.Errorf("%w: provider %s declares raw capability but buffer is not raw",
				ErrBackendMismatch, t.provider.Name())
		}
		out, err := New(t.shape, t.dtype, t.provider)
		if err != nil {
			return nil, err
		}
		dst, ok := out.buf.(RawBuffer)
		if !ok {
			return nil, fmt.Errorf("%w: provider %s allocated a non-raw buffer",
				ErrBackendMismatch, t.provider.Name())
		}
		es := t.dtype.Size()
		window := src.Bytes()[t.offset*es : (t.offset+t.Size())*es]
		if err := dst.SetBytes(window); err != nil {
			return nil, err
		}
		return out, nil

	case CapabilityElement:
		out, err := New(t.shape, t.dtype, t.provider)
		if err != nil {
			return nil, err
		}
		for i := 0; i < t.Size(); i++ {
			if err := out.buf.Set(i, t.buf.At(t.offset+i)); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: provider %s has capability %s",
			ErrCloneUnsupported, t.provider.Name(), t.provider.Capability())
	}
}

// Float64s flattens a real numeric tensor into a []float64 in row-major
// order. Bool and complex tensors fail with ErrInvalidDType.
func (t *Tensor) Float64s() ([]float64, error) {
	if !t.dtype.IsNumeric() {
		return nil, fmt.Errorf("%w: Float64s on %s tensor", ErrInvalidDType, t.dtype)
	}
	out := make([]float64, t.Size())
	for i := range out {
		f, ok := asFloat64(t.buf.At(t.offset + i))
		if !ok {
			return nil, fmt.Errorf("%w: non-numeric element at %d", ErrCorrupted, i)
		}
		out[i] = f
	}
	return out, nil
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.dtype, t.shape, t.provider.Name())
}
