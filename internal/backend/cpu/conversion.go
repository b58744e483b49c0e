package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// Cast converts the tensor to a different data type.
//
// Numeric conversions follow Go conversion rules (float → int truncates).
// Conversion to bool yields v != 0; bool converts to 1 or 0.
// Casting to the same dtype returns a copy.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result := cpu.newResult("cast", x.Shape(), dtype)

	switch x.DType() {
	case tensor.Float32:
		castFrom(x.AsFloat32(), result)
	case tensor.Float64:
		castFrom(x.AsFloat64(), result)
	case tensor.Int32:
		castFrom(x.AsInt32(), result)
	case tensor.Int64:
		castFrom(x.AsInt64(), result)
	case tensor.Uint8:
		castFrom(x.AsUint8(), result)
	case tensor.Bool:
		castFrom(boolsAsUint8(x.AsBool()), result)
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}

	return result
}

func castFrom[S tensor.Numeric](src []S, result *tensor.RawTensor) {
	switch result.DType() {
	case tensor.Float32:
		convert(src, result.AsFloat32())
	case tensor.Float64:
		convert(src, result.AsFloat64())
	case tensor.Int32:
		convert(src, result.AsInt32())
	case tensor.Int64:
		convert(src, result.AsInt64())
	case tensor.Uint8:
		convert(src, result.AsUint8())
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range src {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", result.DType()))
	}
}

func convert[S, D tensor.Numeric](src []S, dst []D) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

func boolsAsUint8(src []bool) []uint8 {
	out := make([]uint8, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}
