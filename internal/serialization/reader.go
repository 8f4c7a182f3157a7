package serialization

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/axon-ml/axon/internal/tensor"
)

// Decode deserializes a tensor, re-materializing its buffer through the
// given provider. At the raw capability tier a machine-mode payload is
// bulk-loaded; at the element tier every element is copied individually;
// below that decoding fails with ErrBackendMismatch.
func Decode(data []byte, p tensor.Provider) (*tensor.Tensor, error) {
	if !bytes.HasPrefix(data, []byte(Marker)) {
		return nil, fmt.Errorf("%w: missing %q marker", tensor.ErrCorrupted, Marker)
	}
	var rec record
	if err := cbor.Unmarshal(data[len(Marker):], &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", tensor.ErrCorrupted, err)
	}

	dtype, ok := tensor.ParseDType(rec.DType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown dtype %q", tensor.ErrCorrupted, rec.DType)
	}
	if p.Capability() == tensor.CapabilityNone {
		return nil, fmt.Errorf("%w: provider %s cannot materialize buffers",
			tensor.ErrBackendMismatch, p.Name())
	}

	buf, err := p.Alloc(rec.BufLen, dtype)
	if err != nil {
		return nil, err
	}

	switch rec.Mode {
	case ModeMachine, ModeRindow:
		if len(rec.Payload) != rec.BufLen*dtype.Size() {
			return nil, fmt.Errorf("%w: %d payload bytes for %d %s elements",
				tensor.ErrCorrupted, len(rec.Payload), rec.BufLen, dtype)
		}
		if raw, ok := buf.(tensor.RawBuffer); ok {
			if err := raw.SetBytes(rec.Payload); err != nil {
				return nil, err
			}
			break
		}
		// Element-tier provider reading a machine dump: unpack one
		// element at a time from the byte image.
		for i := 0; i < rec.BufLen; i++ {
			v, err := elemFromBytes(rec.Payload, i, dtype)
			if err != nil {
				return nil, err
			}
			if err := buf.Set(i, v); err != nil {
				return nil, err
			}
		}

	case ModeLinearArray:
		if len(rec.Elems) != rec.BufLen {
			return nil, fmt.Errorf("%w: %d listed elements, declared %d",
				tensor.ErrCorrupted, len(rec.Elems), rec.BufLen)
		}
		for i, w := range rec.Elems {
			v, err := elemFromWire(w, dtype)
			if err != nil {
				return nil, err
			}
			if err := buf.Set(i, v); err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("%w: serialization mode %q", tensor.ErrUnsupportedOperation, rec.Mode)
	}

	return tensor.FromBuffer(buf, rec.Offset, rec.Shape, p)
}

// elemFromBytes unpacks element i of a little-endian machine payload.
//
//nolint:gocyclo,cyclop // exhaustive over the closed dtype set
func elemFromBytes(payload []byte, i int, dtype tensor.DType) (any, error) {
	off := i * dtype.Size()
	seg := payload[off : off+dtype.Size()]
	switch dtype {
	case tensor.Bool:
		return seg[0] != 0, nil
	case tensor.Uint8:
		return seg[0], nil
	case tensor.Uint16:
		return binary.LittleEndian.Uint16(seg), nil
	case tensor.Uint32:
		return binary.LittleEndian.Uint32(seg), nil
	case tensor.Uint64:
		return binary.LittleEndian.Uint64(seg), nil
	case tensor.Int8:
		return int8(seg[0]), nil
	case tensor.Int16:
		return int16(binary.LittleEndian.Uint16(seg)), nil
	case tensor.Int32:
		return int32(binary.LittleEndian.Uint32(seg)), nil
	case tensor.Int64:
		return int64(binary.LittleEndian.Uint64(seg)), nil
	case tensor.Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(seg)), nil
	case tensor.Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(seg)), nil
	case tensor.Complex64:
		re := math.Float32frombits(binary.LittleEndian.Uint32(seg[:4]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(seg[4:]))
		return complex(re, im), nil
	case tensor.Complex128:
		re := math.Float64frombits(binary.LittleEndian.Uint64(seg[:8]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(seg[8:]))
		return complex(re, im), nil
	default:
		return nil, fmt.Errorf("%w: unknown dtype %d", tensor.ErrCorrupted, dtype)
	}
}
