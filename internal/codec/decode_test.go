package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segkit/internal/tensor"
)

func TestDecodeThresholdBoundary(t *testing.T) {
	c := newTestCodec(t)
	above := math.Nextafter32(0.5, 1)

	pred := preds(t, c, tensor.Shape{1, 1, 4, 2},
		0.5, 0.5, // exactly at threshold
		0.5, above, // epsilon above
		1, 0,
		0, 1,
	)

	out, err := c.Decode(pred, Spatial, DefaultDecodeThreshold)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 255, 0, 255}, out.Data())
}

func TestDecodeIgnoresBackgroundChannel(t *testing.T) {
	c := newTestCodec(t)

	// Scores need not sum to 1; only the foreground channel matters.
	pred := preds(t, c, tensor.Shape{1, 1, 2, 2},
		0.9, 0.6,
		0.0, 0.4,
	)

	out, err := c.Decode(pred, Spatial, DefaultDecodeThreshold)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0}, out.Data())

	out, err = c.Decode(pred, Spatial, 0.9)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0}, out.Data())
}

func TestDecodeNaNIsBackground(t *testing.T) {
	c := newTestCodec(t)
	nan := float32(math.NaN())

	out, err := c.Decode(preds(t, c, tensor.Shape{1, 1, 1, 2}, 0, nan), Spatial, DefaultDecodeThreshold)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0}, out.Data())
}

func TestDecodeFlattenedUsesConfiguredSize(t *testing.T) {
	s := DefaultSettings()
	s.ImgHeight, s.ImgWidth = 2, 3
	c, err := New(s, newTestCodec(t).Backend())
	require.NoError(t, err)

	values := make([]float32, 6*2)
	for p := 0; p < 6; p++ {
		if p%2 == 1 {
			values[p*2+1] = 1
		}
	}

	out, err := c.Decode(preds(t, c, tensor.Shape{1, 6, 2}, values...), Flattened, DefaultDecodeThreshold)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 3, 1}, out.Shape())
	assert.Equal(t, []uint8{0, 255, 0, 255, 0, 255}, out.Data())
}

func TestDecodeShapeMismatch(t *testing.T) {
	s := DefaultSettings()
	s.ImgHeight, s.ImgWidth = 2, 2
	c, err := New(s, newTestCodec(t).Backend())
	require.NoError(t, err)

	tests := []struct {
		name   string
		layout Layout
		shape  tensor.Shape
	}{
		{"SpatialWrongClasses", Spatial, tensor.Shape{1, 2, 2, 3}},
		{"SpatialRank3", Spatial, tensor.Shape{1, 4, 2}},
		{"FlattenedWrongPixels", Flattened, tensor.Shape{1, 5, 2}},
		{"FlattenedWrongClasses", Flattened, tensor.Shape{1, 4, 1}},
		{"FlattenedRank4", Flattened, tensor.Shape{1, 2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := tensor.Zeros[float32](tt.shape, c.Backend())
			_, err := c.Decode(pred, tt.layout, DefaultDecodeThreshold)

			var sme *ShapeMismatchError
			require.True(t, errors.As(err, &sme), "got %v", err)
			assert.Equal(t, "decode", sme.Op)
			assert.Equal(t, tt.shape, sme.Got)
		})
	}
}
