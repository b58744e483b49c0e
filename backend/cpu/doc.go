// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements the whole-tensor operations segkit needs:
//   - Reshape, Narrow and Cat
//   - Scalar comparisons and boolean logic
//   - WhereScalar, OneHot, Argmax and SumDim
//   - Casts between the supported dtypes
//
// Element-wise kernels are split across goroutines once a tensor is
// large enough to benefit.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
