package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/segkit/internal/tensor"
)

// Standardise rescales a batch to zero mean and unit variance over all of
// its elements, returning float32. A constant batch maps to zeros.
//
// Accepts uint8, float32 and float64 tensors.
func Standardise(raw *tensor.RawTensor) (*tensor.RawTensor, error) {
	values, err := asFloat64(raw)
	if err != nil {
		return nil, err
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	out, err := tensor.NewRaw(raw.Shape(), tensor.Float32, raw.Device())
	if err != nil {
		return nil, err
	}
	dst := out.AsFloat32()
	if std == 0 {
		return out, nil
	}
	for i, v := range values {
		dst[i] = float32((v - mean) / std)
	}
	return out, nil
}

func asFloat64(raw *tensor.RawTensor) ([]float64, error) {
	values := make([]float64, raw.NumElements())
	switch raw.DType() {
	case tensor.Uint8:
		for i, v := range raw.AsUint8() {
			values[i] = float64(v)
		}
	case tensor.Float32:
		for i, v := range raw.AsFloat32() {
			values[i] = float64(v)
		}
	case tensor.Float64:
		copy(values, raw.AsFloat64())
	default:
		return nil, fmt.Errorf("standardise: unsupported dtype %s", raw.DType())
	}
	return values, nil
}
