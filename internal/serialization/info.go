package serialization

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/axon-ml/axon/internal/tensor"
)

// Info describes a serialized tensor without materializing its buffer.
type Info struct {
	Mode   string
	Shape  tensor.Shape
	Offset int
	DType  tensor.DType
	BufLen int
}

// Inspect reads the metadata of a serialized tensor.
func Inspect(data []byte) (Info, error) {
	if !bytes.HasPrefix(data, []byte(Marker)) {
		return Info{}, fmt.Errorf("%w: missing %q marker", tensor.ErrCorrupted, Marker)
	}
	var rec record
	if err := cbor.Unmarshal(data[len(Marker):], &rec); err != nil {
		return Info{}, fmt.Errorf("%w: %v", tensor.ErrCorrupted, err)
	}
	dtype, ok := tensor.ParseDType(rec.DType)
	if !ok {
		return Info{}, fmt.Errorf("%w: unknown dtype %q", tensor.ErrCorrupted, rec.DType)
	}
	return Info{
		Mode:   rec.Mode,
		Shape:  rec.Shape,
		Offset: rec.Offset,
		DType:  dtype,
		BufLen: rec.BufLen,
	}, nil
}
