package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// Reshape returns a copy of t with a new shape.
// The new shape must have the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Narrow returns elements [start, start+length) of x along dim.
//
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	fg := backend.Narrow(pred, -1, 1, 1) // (N, H, W, 2) → (N, H, W, 1)
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	size := shape[dim]
	if start < 0 || length <= 0 || start+length > size {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d (size %d)",
			start, start+length, dim, size))
	}

	outShape := shape.Clone()
	outShape[dim] = length
	result := cpu.newResult("narrow", outShape, x.DType())

	outer, _, inner := shape.Split(dim)
	blockBytes := inner * x.DType().Size()
	src := x.Data()
	dst := result.Data()

	for o := 0; o < outer; o++ {
		srcOff := (o*size + start) * blockBytes
		dstOff := o * length * blockBytes
		copy(dst[dstOff:dstOff+length*blockBytes], src[srcOff:srcOff+length*blockBytes])
	}

	return result
}
