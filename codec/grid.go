// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/born-ml/segkit/internal/grid"
	"github.com/born-ml/segkit/tensor"
)

// DefaultFill is the intensity of empty grid cells (white).
const DefaultFill = grid.DefaultFill

// GridSink receives composed grids for saving or display.
type GridSink = grid.Sink

// GroupOptions selects the optional side effects of Group.
type GroupOptions = grid.GroupOptions

// GridSizeError reports a column count that cannot lay out a batch.
type GridSizeError = grid.GridSizeError

// Compose arranges (N, H, W, 1) images row-major in cols columns,
// filling trailing cells with fill.
func Compose[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int, fill uint8) (*tensor.Tensor[uint8, B], error) {
	return grid.Compose(images, cols, fill)
}

// Gallery is Compose for batches that fill every row.
func Gallery[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int) (*tensor.Tensor[uint8, B], error) {
	return grid.Gallery(images, cols)
}

// Group composes a grid and saves or shows it through sink.
func Group[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int, opts GroupOptions, sink GridSink) (*tensor.Tensor[uint8, B], error) {
	return grid.Group(images, cols, opts, sink)
}
