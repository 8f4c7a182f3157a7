// Package serialization converts tensors to and from a self-describing,
// versioned byte stream that stays readable across providers of different
// capability tiers.
//
// The stream is a fixed 4-byte marker followed by one CBOR record:
//
//	<"AXTN"> {mode, shape, offset, dtype, buflen, payload | elems}
//
// Two format modes exist: "machine" carries the raw little-endian byte image
// of the whole buffer, and "linear-array" (the legacy portable mode) carries
// an explicit per-element listing. The historic mode tag "rindow_openblas"
// decodes identically to "machine".
package serialization

import (
	"fmt"

	"github.com/axon-ml/axon/internal/tensor"
)

// Marker is the fixed literal every serialized tensor starts with.
const Marker = "AXTN"

// Format mode tags.
const (
	ModeMachine     = "machine"
	ModeRindow      = "rindow_openblas"
	ModeLinearArray = "linear-array"
)

// record is the CBOR payload following the marker.
type record struct {
	Mode   string `cbor:"mode"`
	Shape  []int  `cbor:"shape"`
	Offset int    `cbor:"offset"`
	DType  string `cbor:"dtype"`
	BufLen int    `cbor:"buflen"`

	// Payload is the raw byte image of the buffer (machine mode).
	Payload []byte `cbor:"payload,omitempty"`

	// Elems is the explicit element listing (linear-array mode).
	Elems []any `cbor:"elems,omitempty"`
}

// elemToWire lowers a native element to a CBOR-friendly value. Complex
// elements travel as a two-element [real, imag] array.
func elemToWire(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case complex64:
		return []float64{float64(real(x)), float64(imag(x))}, nil
	case complex128:
		return []float64{real(x), imag(x)}, nil
	default:
		return x, nil
	}
}

// elemFromWire raises a decoded CBOR value back to the element kind.
func elemFromWire(v any, dtype tensor.DType) (any, error) {
	if pair, ok := v.([]any); ok {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: complex element with %d parts", tensor.ErrCorrupted, len(pair))
		}
		re, okR := toFloat(pair[0])
		im, okI := toFloat(pair[1])
		if !okR || !okI {
			return nil, fmt.Errorf("%w: malformed complex element", tensor.ErrCorrupted)
		}
		return tensor.Convert(complex(re, im), dtype)
	}
	return tensor.Convert(v, dtype)
}

// toFloat widens the numeric kinds the CBOR decoder produces.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
