package serialization

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/axon-ml/axon/internal/tensor"
)

// Encode serializes a tensor. Buffers that expose their raw byte image are
// written in machine mode; everything else falls back to the portable
// linear-array listing.
func Encode(t *tensor.Tensor) ([]byte, error) {
	rec := record{
		Shape:  t.Shape(),
		Offset: t.Offset(),
		DType:  t.DType().String(),
		BufLen: t.Buffer().Len(),
	}

	if raw, ok := t.Buffer().(tensor.RawBuffer); ok {
		rec.Mode = ModeMachine
		rec.Payload = raw.Bytes()
	} else {
		rec.Mode = ModeLinearArray
		rec.Elems = make([]any, t.Buffer().Len())
		for i := range rec.Elems {
			w, err := elemToWire(t.Buffer().At(i))
			if err != nil {
				return nil, err
			}
			rec.Elems[i] = w
		}
	}

	body, err := cbor.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding tensor record: %w", err)
	}

	out := make([]byte, 0, len(Marker)+len(body))
	out = append(out, Marker...)
	out = append(out, body...)
	return out, nil
}
