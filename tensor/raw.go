// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/segkit/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat32(), AsUint8(), etc.
//   - Byte access via Data() for serialization
//
// Most callers should use Tensor[T, B] instead.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// NewRawFromBytes wraps a copy of data as a RawTensor.
func NewRawFromBytes(data []byte, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRawFromBytes(data, shape, dtype, device)
}
