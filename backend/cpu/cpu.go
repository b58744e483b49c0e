// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/segkit/internal/backend/cpu"
	"github.com/born-ml/segkit/internal/parallel"
	"github.com/born-ml/segkit/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend using all available cores.
//
// Example:
//
//	import (
//	    "github.com/born-ml/segkit/backend/cpu"
//	    "github.com/born-ml/segkit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend that splits element-wise kernels
// across at most workers goroutines. Zero means one per CPU.
func NewWithWorkers(workers int) *Backend {
	cfg := parallel.DefaultConfig()
	if workers == 1 {
		cfg = parallel.Sequential()
	} else if workers > 1 {
		cfg.Enabled = true
		cfg.NumWorkers = workers
	}
	return internalcpu.NewWithConfig(cfg)
}
