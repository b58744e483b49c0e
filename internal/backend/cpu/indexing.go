package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/parallel"
	"github.com/born-ml/segkit/internal/tensor"
)

// WhereScalar selects onTrue where cond is true and onFalse elsewhere.
//
// The result has cond's shape and the requested dtype. Both scalars are
// converted to dtype, so callers must pass values representable in it.
//
// Example:
//
//	isFg := backend.GreaterScalar(raw, 20)
//	mask := backend.WhereScalar(isFg, 255, 0, tensor.Uint8)
func (cpu *CPUBackend) WhereScalar(cond *tensor.RawTensor, onTrue, onFalse float64, dtype tensor.DataType) *tensor.RawTensor {
	if cond.DType() != tensor.Bool {
		panic(fmt.Sprintf("whereScalar: condition must be bool, got %s", cond.DType()))
	}

	result := cpu.newResult("whereScalar", cond.Shape(), dtype)
	c := cond.AsBool()

	switch dtype {
	case tensor.Float32:
		whereScalar(c, float32(onTrue), float32(onFalse), result.AsFloat32(), cpu.par)
	case tensor.Float64:
		whereScalar(c, onTrue, onFalse, result.AsFloat64(), cpu.par)
	case tensor.Int32:
		whereScalar(c, int32(onTrue), int32(onFalse), result.AsInt32(), cpu.par)
	case tensor.Int64:
		whereScalar(c, int64(onTrue), int64(onFalse), result.AsInt64(), cpu.par)
	case tensor.Uint8:
		whereScalar(c, uint8(onTrue), uint8(onFalse), result.AsUint8(), cpu.par)
	case tensor.Bool:
		whereScalar(c, onTrue != 0, onFalse != 0, result.AsBool(), cpu.par)
	default:
		panic(fmt.Sprintf("whereScalar: unsupported dtype %s", dtype))
	}

	return result
}

func whereScalar[T tensor.DType](cond []bool, onTrue, onFalse T, dst []T, cfg parallel.Config) {
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			if cond[i] {
				dst[i] = onTrue
			} else {
				dst[i] = onFalse
			}
		}
	}, cfg)
}

// OneHot expands an integer class-index tensor into a one-hot tensor.
//
// A new trailing axis of size numClasses is appended:
//
//	(N, H, W) int32 → (N, H, W, C)
//
// Element [..., k] is 1 when the index equals k and 0 otherwise.
// Panics if an index is outside [0, numClasses).
func (cpu *CPUBackend) OneHot(indices *tensor.RawTensor, numClasses int, dtype tensor.DataType) *tensor.RawTensor {
	if numClasses <= 0 {
		panic(fmt.Sprintf("oneHot: numClasses must be positive, got %d", numClasses))
	}

	outShape := append(indices.Shape().Clone(), numClasses)
	result := cpu.newResult("oneHot", outShape, dtype)

	var idx []int
	switch indices.DType() {
	case tensor.Int32:
		idx = toInts(indices.AsInt32())
	case tensor.Int64:
		idx = toInts(indices.AsInt64())
	case tensor.Uint8:
		idx = toInts(indices.AsUint8())
	default:
		panic(fmt.Sprintf("oneHot: indices must be integer, got %s", indices.DType()))
	}

	for i, k := range idx {
		if k < 0 || k >= numClasses {
			panic(fmt.Sprintf("oneHot: index %d at position %d out of range [0, %d)", k, i, numClasses))
		}
	}

	switch dtype {
	case tensor.Float32:
		scatterOnes(idx, numClasses, result.AsFloat32(), cpu.par)
	case tensor.Float64:
		scatterOnes(idx, numClasses, result.AsFloat64(), cpu.par)
	case tensor.Int32:
		scatterOnes(idx, numClasses, result.AsInt32(), cpu.par)
	case tensor.Int64:
		scatterOnes(idx, numClasses, result.AsInt64(), cpu.par)
	case tensor.Uint8:
		scatterOnes(idx, numClasses, result.AsUint8(), cpu.par)
	default:
		panic(fmt.Sprintf("oneHot: unsupported output dtype %s", dtype))
	}

	return result
}

func toInts[T tensor.Numeric](src []T) []int {
	out := make([]int, len(src))
	for i, v := range src {
		out[i] = int(v)
	}
	return out
}

// scatterOnes writes 1 at dst[i*numClasses+idx[i]]; dst is already zeroed.
func scatterOnes[T tensor.Numeric](idx []int, numClasses int, dst []T, cfg parallel.Config) {
	parallel.ForRange(len(idx), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i*numClasses+idx[i]] = 1
		}
	}, cfg)
}
