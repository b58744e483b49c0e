package codec

import (
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// EncodeLabels expands a class-index map into a one-hot tensor over
// NumClasses channels.
//
// Labels are (N, H, W, 1) or (N, H, W) with values in [0, NumClasses);
// a label outside that range is a ValidationError in either mode.
// Layouts are as for Encode.
func (c *Codec[B]) EncodeLabels(labels *tensor.Tensor[uint8, B], layout Layout) (*tensor.Tensor[uint8, B], error) {
	const op = "encode labels"

	if labels == nil {
		return nil, errNilTensor(op, maskShapes)
	}
	n, h, w, err := maskDims(op, labels.Shape())
	if err != nil {
		return nil, err
	}
	target, err := pixelShape(op, layout, n, h, w)
	if err != nil {
		return nil, err
	}

	raw := labels.Raw()
	outOfRange := c.backend.GreaterScalar(raw, float64(c.settings.NumClasses-1))
	if c.backend.CountNonZero(outOfRange) > 0 {
		i := firstTrue(outOfRange.AsBool())
		return nil, &ValidationError{
			Op:     op,
			Index:  i,
			Value:  int(raw.AsUint8()[i]),
			Reason: fmt.Sprintf("want a class index below %d", c.settings.NumClasses),
		}
	}

	indices := c.backend.Reshape(raw, target)
	return c.wrap(c.backend.OneHot(indices, c.settings.NumClasses, tensor.Uint8)), nil
}

// DecodeArgmax maps each pixel of a prediction tensor to the index of its
// highest-scoring class. Ties resolve to the lowest index.
//
// The output is a uint8 class map of shape (N, H, W, 1); layouts are as
// for Decode.
func (c *Codec[B]) DecodeArgmax(pred *tensor.Tensor[float32, B], layout Layout) (*tensor.Tensor[uint8, B], error) {
	const op = "decode argmax"

	if pred == nil {
		return nil, errNilTensor(op, predShapes(layout))
	}
	n, h, w, err := c.predDims(op, pred.Shape(), layout)
	if err != nil {
		return nil, err
	}

	classes := c.backend.Argmax(pred.Raw(), -1)
	classes = c.backend.Cast(classes, tensor.Uint8)

	return c.wrap(c.backend.Reshape(classes, tensor.Shape{n, h, w, 1})), nil
}

// CheckOneHot verifies that every pixel of a one-hot tensor has class
// channels summing to exactly 1.
//
// The class axis is last and must have NumClasses channels. The returned
// ValidationError reports the first offending pixel and its channel sum.
func (c *Codec[B]) CheckOneHot(t *tensor.Tensor[uint8, B]) error {
	const op = "check one-hot"

	want := fmt.Sprintf("(..., %d)", c.settings.NumClasses)
	if t == nil {
		return errNilTensor(op, want)
	}
	shape := t.Shape()
	if len(shape) < 2 || shape[len(shape)-1] != c.settings.NumClasses {
		return &ShapeMismatchError{Op: op, Want: want, Got: shape.Clone()}
	}

	sums := c.backend.SumDim(t.Raw(), -1, false)
	ok := c.backend.EqualScalar(sums, 1)
	if c.backend.CountNonZero(ok) == ok.NumElements() {
		return nil
	}

	i := firstFalse(ok.AsBool())
	return &ValidationError{
		Op:     op,
		Index:  i,
		Value:  int(sums.AsInt32()[i]),
		Reason: "class channels must sum to 1",
	}
}

func firstTrue(values []bool) int {
	for i, v := range values {
		if v {
			return i
		}
	}
	return -1
}
