package codec

import "github.com/born-ml/segkit/internal/tensor"

// Binarize forces every pixel of a raw grayscale image to one of the two
// mask intensities: values above threshold become MaskForeground and all
// others MaskBackground.
//
// Any shape is accepted and preserved. The result never contains a third
// value, so with the default settings Binarize is idempotent for every
// threshold below 255.
//
// Ingestion binarizes ground-truth masks with Settings.MaskBinaryThreshold;
// raw images are never binarized.
func (c *Codec[B]) Binarize(raw *tensor.Tensor[uint8, B], threshold uint8) (*tensor.Tensor[uint8, B], error) {
	if raw == nil {
		return nil, errNilTensor("binarize", "a uint8 image")
	}

	above := c.backend.GreaterScalar(raw.Raw(), float64(threshold))
	out := c.backend.WhereScalar(above,
		float64(c.settings.MaskForeground),
		float64(c.settings.MaskBackground),
		tensor.Uint8)

	return c.wrap(out), nil
}
