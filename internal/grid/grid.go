// Package grid lays a batch of single-channel images out as one grid image
// for visual inspection.
package grid

import (
	"errors"
	"fmt"

	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/tensor"
)

// DefaultFill is the intensity of empty trailing cells (white).
const DefaultFill uint8 = 255

// GridSizeError reports a column count that cannot lay out the batch.
type GridSizeError struct {
	N      int // Number of images
	Cols   int // Requested columns
	Reason string
}

// Error implements the error interface.
func (e *GridSizeError) Error() string {
	return fmt.Sprintf("grid: %d images in %d columns: %s", e.N, e.Cols, e.Reason)
}

// Compose arranges (N, H, W, 1) images row-major into a single
// (ceil(N/cols)·H, cols·W, 1) image.
//
// Cells past the last image are filled with fill. Each row is built by
// concatenating tiles along the width axis, then rows are concatenated
// along the height axis.
//
// Example:
//
//	// 7 images, 3 columns:
//	//   [0 1 2]
//	//   [3 4 5]
//	//   [6 . .]   . = fill
//	img, err := grid.Compose(batch, 3, grid.DefaultFill)
func Compose[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int, fill uint8) (*tensor.Tensor[uint8, B], error) {
	n, h, w, err := dims("grid compose", images)
	if err != nil {
		return nil, err
	}
	if cols <= 0 {
		return nil, &GridSizeError{N: n, Cols: cols, Reason: "column count must be positive"}
	}
	if n == 0 {
		return nil, &GridSizeError{N: n, Cols: cols, Reason: "no images"}
	}

	backend := images.Backend()
	rows := (n + cols - 1) / cols
	blank := tensor.Full[uint8](tensor.Shape{h, w, 1}, fill, backend)

	gridRows := make([]*tensor.Tensor[uint8, B], 0, rows)
	for r := 0; r < rows; r++ {
		tiles := make([]*tensor.Tensor[uint8, B], cols)
		for col := range tiles {
			i := r*cols + col
			if i < n {
				tiles[col] = images.Narrow(0, i, 1).Reshape(h, w, 1)
			} else {
				tiles[col] = blank
			}
		}
		gridRows = append(gridRows, tensor.Cat(tiles, 1))
	}

	return tensor.Cat(gridRows, 0), nil
}

// Gallery is the strict form of Compose: the batch must fill the grid
// exactly (N divisible by cols), so no fill cells are ever produced.
func Gallery[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int) (*tensor.Tensor[uint8, B], error) {
	n, _, _, err := dims("grid gallery", images)
	if err != nil {
		return nil, err
	}
	if cols > 0 && n%cols != 0 {
		return nil, &GridSizeError{N: n, Cols: cols, Reason: "image count must be a multiple of the column count"}
	}
	return Compose(images, cols, DefaultFill)
}

func dims[B tensor.Backend](op string, images *tensor.Tensor[uint8, B]) (n, h, w int, err error) {
	const want = "(N, H, W, 1)"
	if images == nil {
		return 0, 0, 0, &codec.ShapeMismatchError{Op: op, Want: want}
	}
	shape := images.Shape()
	if len(shape) != 4 || shape[3] != 1 {
		return 0, 0, 0, &codec.ShapeMismatchError{Op: op, Want: want, Got: shape.Clone()}
	}
	return shape[0], shape[1], shape[2], nil
}

// Sink receives composed grids.
//
// imageio.Window implements it with OpenCV.
type Sink interface {
	WritePNG(path string, img *tensor.RawTensor) error
	Show(title string, img *tensor.RawTensor) error
}

// GroupOptions selects the optional side effects of Group.
type GroupOptions struct {
	Fill     uint8  // Intensity of empty cells
	SavePath string // Base path; ".png" is appended. Empty disables saving.
	Show     bool   // Display the grid through the sink
	Title    string // Window title when showing
}

// DefaultGroupOptions returns options that compose with DefaultFill and
// perform no I/O.
func DefaultGroupOptions() GroupOptions {
	return GroupOptions{Fill: DefaultFill, Title: "grid"}
}

// Group composes a grid and then saves and/or shows it through sink.
//
// I/O failures never discard the grid: when composition succeeded the grid
// is returned together with any save or show error.
func Group[B tensor.Backend](images *tensor.Tensor[uint8, B], cols int, opts GroupOptions, sink Sink) (*tensor.Tensor[uint8, B], error) {
	img, err := Compose(images, cols, opts.Fill)
	if err != nil {
		return nil, err
	}
	if opts.SavePath == "" && !opts.Show {
		return img, nil
	}
	if sink == nil {
		return img, errors.New("grid: save or show requested without a sink")
	}

	var errs []error
	if opts.SavePath != "" {
		path := opts.SavePath + ".png"
		if err := sink.WritePNG(path, img.Raw()); err != nil {
			errs = append(errs, fmt.Errorf("grid: write %s: %w", path, err))
		}
	}
	if opts.Show {
		if err := sink.Show(opts.Title, img.Raw()); err != nil {
			errs = append(errs, fmt.Errorf("grid: show: %w", err))
		}
	}

	return img, errors.Join(errs...)
}
