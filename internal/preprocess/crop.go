package preprocess

import (
	"fmt"

	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/tensor"
)

// Crop removes cropH rows from the top and bottom and cropW columns from
// the left and right of every image in an (N, H, W, C) batch.
func Crop[T tensor.DType, B tensor.Backend](batch *tensor.Tensor[T, B], cropH, cropW int) (*tensor.Tensor[T, B], error) {
	if cropH < 0 || cropW < 0 {
		return nil, fmt.Errorf("crop: negative border %dx%d", cropH, cropW)
	}
	want := fmt.Sprintf("(N, H > %d, W > %d, C)", 2*cropH, 2*cropW)
	if batch == nil {
		return nil, &codec.ShapeMismatchError{Op: "crop", Want: want}
	}
	shape := batch.Shape()
	if len(shape) != 4 || shape[1] <= 2*cropH || shape[2] <= 2*cropW {
		return nil, &codec.ShapeMismatchError{Op: "crop", Want: want, Got: shape.Clone()}
	}

	out := batch
	if cropH > 0 {
		out = out.Narrow(1, cropH, shape[1]-2*cropH)
	}
	if cropW > 0 {
		out = out.Narrow(2, cropW, shape[2]-2*cropW)
	}
	if out == batch {
		out = batch.Clone()
	}
	return out, nil
}
