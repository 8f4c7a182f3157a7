// Package tensor provides the core tensor type for the Axon ML framework.
package tensor

import "fmt"

// DType represents runtime type information for tensor elements.
// It is a closed set: every operation site switches exhaustively over it.
type DType int

// Supported element kinds.
const (
	Bool DType = iota
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Complex64
	Complex128
)

// Size returns the byte size of one element of the data type.
func (dt DType) Size() int {
	switch dt {
	case Bool, Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsComplex reports whether the data type is a complex kind.
func (dt DType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// IsInt reports whether the data type is a fixed-width integer kind.
func (dt DType) IsInt() bool {
	switch dt {
	case Uint8, Uint16, Uint32, Uint64, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the data type is a real numeric kind
// (integers or floats, excluding bool and complex).
func (dt DType) IsNumeric() bool {
	return dt.IsInt() || dt.IsFloat()
}

// ParseDType converts a serialized name back to a DType.
func ParseDType(s string) (DType, bool) {
	for dt := Bool; dt <= Complex128; dt++ {
		if dt.String() == s {
			return dt, true
		}
	}
	return 0, false
}

// inferScalarDType infers the element kind from a bare Go scalar:
// numeric values map to Float32, booleans to Bool, complex values to Complex64.
func inferScalarDType(v any) (DType, error) {
	switch v.(type) {
	case bool:
		return Bool, nil
	case complex64, complex128:
		return Complex64, nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: cannot infer dtype from %T", ErrInvalidDType, v)
	}
}

// Convert coerces a Go scalar into the native representation of dt.
// Booleans only convert to Bool, complex values only to complex kinds,
// and real numerics to any numeric kind. Anything else is ErrInvalidDType.
//
//nolint:gocyclo,cyclop // exhaustive over the closed dtype set
func Convert(v any, dt DType) (any, error) {
	if b, ok := v.(bool); ok {
		if dt != Bool {
			return nil, fmt.Errorf("%w: bool value for %s tensor", ErrInvalidDType, dt)
		}
		return b, nil
	}
	if dt == Bool {
		return nil, fmt.Errorf("%w: %T value for bool tensor", ErrInvalidDType, v)
	}

	if c, ok := asComplex128(v); ok {
		switch dt {
		case Complex64:
			return complex64(c), nil
		case Complex128:
			return c, nil
		default:
			return nil, fmt.Errorf("%w: complex value for %s tensor", ErrInvalidDType, dt)
		}
	}

	// Integer values convert to integer kinds without passing through
	// float64, which cannot represent magnitudes above 2^53 exactly.
	if dt.IsInt() {
		if i, ok := asInt64(v); ok {
			return intToKind(uint64(i), dt), nil
		}
		if u, ok := asUint64(v); ok {
			return intToKind(u, dt), nil
		}
	}

	f, ok := asFloat64(v)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported scalar type %T", ErrInvalidDType, v)
	}
	switch dt {
	case Uint8:
		return uint8(f), nil
	case Uint16:
		return uint16(f), nil
	case Uint32:
		return uint32(f), nil
	case Uint64:
		return uint64(f), nil
	case Int8:
		return int8(f), nil
	case Int16:
		return int16(f), nil
	case Int32:
		return int32(f), nil
	case Int64:
		return int64(f), nil
	case Float32:
		return float32(f), nil
	case Float64:
		return f, nil
	case Complex64:
		return complex(float32(f), 0), nil
	case Complex128:
		return complex(f, 0), nil
	default:
		return nil, fmt.Errorf("%w: unknown dtype %d", ErrInvalidDType, dt)
	}
}

// asInt64 reports a signed integer scalar exactly.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	default:
		return 0, false
	}
}

// asUint64 reports an unsigned integer scalar exactly.
func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	default:
		return 0, false
	}
}

// intToKind truncates the value's bit pattern to the integer kind's width.
func intToKind(n uint64, dt DType) any {
	switch dt {
	case Uint8:
		return uint8(n)
	case Uint16:
		return uint16(n)
	case Uint32:
		return uint32(n)
	case Uint64:
		return n
	case Int8:
		return int8(n)
	case Int16:
		return int16(n)
	case Int32:
		return int32(n)
	default:
		return int64(n)
	}
}

// asFloat64 widens any real numeric Go scalar to float64.
func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// asComplex128 widens a complex Go scalar to complex128.
func asComplex128(v any) (complex128, bool) {
	switch x := v.(type) {
	case complex128:
		return x, true
	case complex64:
		return complex128(x), true
	default:
		return 0, false
	}
}
