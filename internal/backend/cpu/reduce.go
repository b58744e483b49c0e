package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// Argmax returns the index of the maximum value along dim as an int32 tensor.
//
// The reduced dimension is removed from the output shape. Ties resolve to
// the lowest index, matching NumPy.
//
// Example:
//
//	classes := backend.Argmax(pred, -1) // (N, H, W, C) → (N, H, W)
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}

	result := cpu.newResult("argmax", reducedShape(shape, dim, false), tensor.Int32)
	dst := result.AsInt32()

	switch x.DType() {
	case tensor.Float32:
		argmax(x.AsFloat32(), dst, shape, dim)
	case tensor.Float64:
		argmax(x.AsFloat64(), dst, shape, dim)
	case tensor.Int32:
		argmax(x.AsInt32(), dst, shape, dim)
	case tensor.Int64:
		argmax(x.AsInt64(), dst, shape, dim)
	case tensor.Uint8:
		argmax(x.AsUint8(), dst, shape, dim)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	return result
}

func argmax[T tensor.Numeric](data []T, result []int32, shape tensor.Shape, dim int) {
	outer, size, inner := shape.Split(dim)

	for o := 0; o < outer; o++ {
		base := o * size * inner
		for in := 0; in < inner; in++ {
			best := data[base+in]
			bestIdx := 0
			for k := 1; k < size; k++ {
				if v := data[base+k*inner+in]; v > best {
					best = v
					bestIdx = k
				}
			}
			result[o*inner+in] = int32(bestIdx) //nolint:gosec // G115: bounded by dimension size.
		}
	}
}

// SumDim sums x along dim.
//
// Float tensors keep their dtype. Uint8 and bool tensors accumulate into
// int32 so per-pixel class sums cannot wrap; int32 and int64 keep theirs.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("sumDim: %v", err))
	}
	outShape := reducedShape(shape, dim, keepDim)

	switch x.DType() {
	case tensor.Float32:
		result := cpu.newResult("sumDim", outShape, tensor.Float32)
		sumDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
		return result
	case tensor.Float64:
		result := cpu.newResult("sumDim", outShape, tensor.Float64)
		sumDim(x.AsFloat64(), result.AsFloat64(), shape, dim)
		return result
	case tensor.Int32:
		result := cpu.newResult("sumDim", outShape, tensor.Int32)
		sumDim(x.AsInt32(), result.AsInt32(), shape, dim)
		return result
	case tensor.Int64:
		result := cpu.newResult("sumDim", outShape, tensor.Int64)
		sumDim(x.AsInt64(), result.AsInt64(), shape, dim)
		return result
	case tensor.Uint8, tensor.Bool:
		wide := cpu.Cast(x, tensor.Int32)
		result := cpu.newResult("sumDim", outShape, tensor.Int32)
		sumDim(wide.AsInt32(), result.AsInt32(), shape, dim)
		return result
	default:
		panic(fmt.Sprintf("sumDim: unsupported dtype %s", x.DType()))
	}
}

func sumDim[T tensor.Numeric](data, result []T, shape tensor.Shape, dim int) {
	outer, size, inner := shape.Split(dim)

	for o := 0; o < outer; o++ {
		base := o * size * inner
		for in := 0; in < inner; in++ {
			var sum T
			for k := 0; k < size; k++ {
				sum += data[base+k*inner+in]
			}
			result[o*inner+in] = sum
		}
	}
}

// CountNonZero returns the number of non-zero elements (true for bool tensors).
func (cpu *CPUBackend) CountNonZero(x *tensor.RawTensor) int {
	switch x.DType() {
	case tensor.Float32:
		return countNonZero(x.AsFloat32())
	case tensor.Float64:
		return countNonZero(x.AsFloat64())
	case tensor.Int32:
		return countNonZero(x.AsInt32())
	case tensor.Int64:
		return countNonZero(x.AsInt64())
	case tensor.Uint8:
		return countNonZero(x.AsUint8())
	case tensor.Bool:
		n := 0
		for _, v := range x.AsBool() {
			if v {
				n++
			}
		}
		return n
	default:
		panic(fmt.Sprintf("countNonZero: unsupported dtype %s", x.DType()))
	}
}

func countNonZero[T tensor.Numeric](data []T) int {
	n := 0
	for _, v := range data {
		if v != 0 {
			n++
		}
	}
	return n
}

// reducedShape drops (or keeps as 1) the reduced dimension.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	out := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		switch {
		case i != dim:
			out = append(out, d)
		case keepDim:
			out = append(out, 1)
		}
	}
	return out
}
