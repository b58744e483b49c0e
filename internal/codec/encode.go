package codec

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

const maskShapes = "(N, H, W, 1) or (N, H, W)"

// Encode expands a binarized mask batch into a one-hot uint8 tensor.
//
// The mask is (N, H, W, 1) or (N, H, W). A pixel equal to MaskBackground
// sets channel OneHotBackground; any other pixel sets OneHotForeground.
// Remaining channels (NumClasses > 2) stay 0.
//
//	Spatial   → (N, H, W, C)
//	Flattened → (N, H×W, C)
//
// In Strict mode a pixel that is neither MaskBackground nor MaskForeground
// fails with a ValidationError naming the first such pixel.
func (c *Codec[B]) Encode(mask *tensor.Tensor[uint8, B], layout Layout) (*tensor.Tensor[uint8, B], error) {
	const op = "encode"

	if mask == nil {
		return nil, errNilTensor(op, maskShapes)
	}
	n, h, w, err := maskDims(op, mask.Shape())
	if err != nil {
		return nil, err
	}
	target, err := pixelShape(op, layout, n, h, w)
	if err != nil {
		return nil, err
	}

	raw := mask.Raw()
	isBg := c.backend.EqualScalar(raw, float64(c.settings.MaskBackground))

	if c.mode == Strict {
		isFg := c.backend.EqualScalar(raw, float64(c.settings.MaskForeground))
		known := c.backend.Or(isBg, isFg)
		if c.backend.CountNonZero(known) != known.NumElements() {
			i := firstFalse(known.AsBool())
			return nil, &ValidationError{
				Op:     op,
				Index:  i,
				Value:  int(raw.AsUint8()[i]),
				Reason: fmt.Sprintf("want %d or %d", c.settings.MaskBackground, c.settings.MaskForeground),
			}
		}
	}

	classes := c.backend.WhereScalar(isBg,
		float64(c.settings.OneHotBackground),
		float64(c.settings.OneHotForeground),
		tensor.Int32)
	classes = c.backend.Reshape(classes, target)

	return c.wrap(c.backend.OneHot(classes, c.settings.NumClasses, tensor.Uint8)), nil
}

// maskDims extracts N, H, W from a (N, H, W, 1) or (N, H, W) mask shape.
func maskDims(op string, shape tensor.Shape) (n, h, w int, err error) {
	switch {
	case len(shape) == 4 && shape[3] == 1:
		return shape[0], shape[1], shape[2], nil
	case len(shape) == 3:
		return shape[0], shape[1], shape[2], nil
	default:
		return 0, 0, 0, &ShapeMismatchError{Op: op, Want: maskShapes, Got: shape.Clone()}
	}
}

// pixelShape is the class-index shape OneHot expands for a layout.
func pixelShape(op string, layout Layout, n, h, w int) (tensor.Shape, error) {
	switch layout {
	case Spatial:
		return tensor.Shape{n, h, w}, nil
	case Flattened:
		return tensor.Shape{n, h * w}, nil
	default:
		return nil, fmt.Errorf("%s: unknown layout %v", op, layout)
	}
}

func firstFalse(values []bool) int {
	for i, v := range values {
		if !v {
			return i
		}
	}
	return -1
}
