package codec

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// DefaultDecodeThreshold is the foreground probability above which a
// pixel decodes to foreground.
const DefaultDecodeThreshold float32 = 0.5

// Decode collapses a prediction tensor into a single-channel mask by
// thresholding the foreground channel.
//
// A foreground value strictly greater than threshold becomes
// MaskForeground; a value at or below it (or NaN) becomes MaskBackground.
// The output is always (N, H, W, 1):
//
//	Spatial   (N, H, W, C)             → (N, H, W, 1)
//	Flattened (N, ImgHeight×ImgWidth, C) → (N, ImgHeight, ImgWidth, 1)
//
// The rule is exact for two classes only. With more classes only the
// foreground channel is read and a warning is logged; use DecodeArgmax for
// a per-pixel class map.
func (c *Codec[B]) Decode(pred *tensor.Tensor[float32, B], layout Layout, threshold float32) (*tensor.Tensor[uint8, B], error) {
	const op = "decode"

	if pred == nil {
		return nil, errNilTensor(op, predShapes(layout))
	}
	n, h, w, err := c.predDims(op, pred.Shape(), layout)
	if err != nil {
		return nil, err
	}

	if c.settings.NumClasses > 2 {
		c.log.Warn().
			Int("classes", c.settings.NumClasses).
			Msg("threshold decode reads the foreground channel only; use DecodeArgmax for more than two classes")
	}

	fg := c.backend.Narrow(pred.Raw(), -1, c.settings.OneHotForeground, 1)
	above := c.backend.GreaterScalar(fg, float64(threshold))
	out := c.backend.WhereScalar(above,
		float64(c.settings.MaskForeground),
		float64(c.settings.MaskBackground),
		tensor.Uint8)

	return c.wrap(c.backend.Reshape(out, tensor.Shape{n, h, w, 1})), nil
}

// predDims validates a prediction shape for layout and returns the output
// mask dimensions.
func (c *Codec[B]) predDims(op string, shape tensor.Shape, layout Layout) (n, h, w int, err error) {
	mismatch := &ShapeMismatchError{Op: op, Want: c.wantPred(layout), Got: shape.Clone()}

	switch layout {
	case Spatial:
		if len(shape) != 4 || shape[3] != c.settings.NumClasses {
			return 0, 0, 0, mismatch
		}
		return shape[0], shape[1], shape[2], nil
	case Flattened:
		h, w = c.settings.ImgHeight, c.settings.ImgWidth
		if len(shape) != 3 || shape[1] != h*w || shape[2] != c.settings.NumClasses {
			return 0, 0, 0, mismatch
		}
		return shape[0], h, w, nil
	default:
		return 0, 0, 0, fmt.Errorf("%s: unknown layout %v", op, layout)
	}
}

func (c *Codec[B]) wantPred(layout Layout) string {
	if layout == Flattened {
		return fmt.Sprintf("(N, %d, %d)", c.settings.ImgHeight*c.settings.ImgWidth, c.settings.NumClasses)
	}
	return fmt.Sprintf("(N, H, W, %d)", c.settings.NumClasses)
}

func predShapes(layout Layout) string {
	if layout == Flattened {
		return "(N, H×W, C)"
	}
	return "(N, H, W, C)"
}
