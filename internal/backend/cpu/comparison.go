package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/parallel"
	"github.com/born-ml/segkit/internal/tensor"
)

// Comparison operations - return bool tensors.

// GreaterScalar returns x > scalar element-wise.
//
// The scalar is compared in float64, which represents every uint8, int32
// and float32 value exactly, so thresholds behave the same for all dtypes.
func (cpu *CPUBackend) GreaterScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.newResult("greaterScalar", x.Shape(), tensor.Bool)
	dst := result.AsBool()

	switch x.DType() {
	case tensor.Float32:
		greaterScalar(x.AsFloat32(), scalar, dst, cpu.par)
	case tensor.Float64:
		greaterScalar(x.AsFloat64(), scalar, dst, cpu.par)
	case tensor.Int32:
		greaterScalar(x.AsInt32(), scalar, dst, cpu.par)
	case tensor.Int64:
		greaterScalar(x.AsInt64(), scalar, dst, cpu.par)
	case tensor.Uint8:
		greaterScalar(x.AsUint8(), scalar, dst, cpu.par)
	default:
		panic(fmt.Sprintf("greaterScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// EqualScalar returns x == scalar element-wise.
func (cpu *CPUBackend) EqualScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.newResult("equalScalar", x.Shape(), tensor.Bool)
	dst := result.AsBool()

	switch x.DType() {
	case tensor.Float32:
		equalScalar(x.AsFloat32(), scalar, dst, cpu.par)
	case tensor.Float64:
		equalScalar(x.AsFloat64(), scalar, dst, cpu.par)
	case tensor.Int32:
		equalScalar(x.AsInt32(), scalar, dst, cpu.par)
	case tensor.Int64:
		equalScalar(x.AsInt64(), scalar, dst, cpu.par)
	case tensor.Uint8:
		equalScalar(x.AsUint8(), scalar, dst, cpu.par)
	default:
		panic(fmt.Sprintf("equalScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

func greaterScalar[T tensor.Numeric](src []T, scalar float64, dst []bool, cfg parallel.Config) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = float64(src[i]) > scalar
		}
	}, cfg)
}

func equalScalar[T tensor.Numeric](src []T, scalar float64, dst []bool, cfg parallel.Config) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = float64(src[i]) == scalar
		}
	}, cfg)
}

// Boolean operations.

// Or returns a || b element-wise. Both tensors must be bool with equal shapes.
func (cpu *CPUBackend) Or(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("or: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}

	result := cpu.newResult("or", a.Shape(), tensor.Bool)
	lhs, rhs, dst := a.AsBool(), b.AsBool(), result.AsBool()

	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = lhs[i] || rhs[i]
		}
	}, cpu.par)

	return result
}

// Not returns !x element-wise on a bool tensor.
func (cpu *CPUBackend) Not(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("not", x.Shape(), tensor.Bool)
	src, dst := x.AsBool(), result.AsBool()

	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = !src[i]
		}
	}, cpu.par)

	return result
}
