// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types segkit operates on.
//
// # Overview
//
// Masks, one-hot encodings and predictions are all dense row-major
// tensors. This package exposes:
//   - Generic type-safe tensors (Tensor[T, B])
//   - The low-level RawTensor byte buffer
//   - The Backend interface the codec is written against
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/segkit/backend/cpu"
//	    "github.com/born-ml/segkit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    mask := tensor.Zeros[uint8](tensor.Shape{1, 4, 4, 1}, backend)
//	    mask.Set(255, 0, 1, 2, 0)
//	}
//
// # Layouts
//
// Masks are (N, H, W, 1) uint8. Spatial one-hot tensors are (N, H, W, C)
// and flattened ones are (N, H×W, C). Predictions use the same layouts
// with float32 probabilities.
package tensor
