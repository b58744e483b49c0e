package cpu

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	row := backend.Cat([]*tensor.RawTensor{tile0, tile1, tile2}, 1) // (H, 3W, 1)
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	// Get first tensor properties
	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	dim, err := shape.NormalizeDim(dim)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Validate shapes and calculate total size along concat dimension
	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}

		// Check all dimensions except concat dim match
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim
	result := cpu.newResult("cat", outShape, dtype)

	// Rows of the concat dimension are contiguous blocks of inner elements,
	// so each (outer, tensor) pair is a single copy.
	outer, _, inner := shape.Split(dim)
	blockBytes := inner * dtype.Size()
	dst := result.Data()

	offset := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			n := t.Shape()[dim] * blockBytes
			src := t.Data()[o*n : (o+1)*n]
			copy(dst[offset:offset+n], src)
			offset += n
		}
	}

	return result
}
