package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segkit/internal/backend/cpu"
	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/tensor"
)

// batch returns n 2×2 tiles where every pixel of tile i equals i+1.
func batch(t *testing.T, n int) *tensor.Tensor[uint8, *cpu.CPUBackend] {
	t.Helper()
	values := make([]uint8, 0, n*4)
	for i := 0; i < n; i++ {
		v := uint8(i + 1) //nolint:gosec // small test batch.
		values = append(values, v, v, v, v)
	}
	b, err := tensor.FromSlice(values, tensor.Shape{n, 2, 2, 1}, cpu.New())
	require.NoError(t, err)
	return b
}

// tileAt returns the value of the top-left pixel of cell (r, c).
func tileAt(img *tensor.Tensor[uint8, *cpu.CPUBackend], r, c int) uint8 {
	return img.At(r*2, c*2, 0)
}

func TestComposeSevenInThree(t *testing.T) {
	img, err := Compose(batch(t, 7), 3, DefaultFill)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6, 6, 1}, img.Shape())

	want := [][]uint8{
		{1, 2, 3},
		{4, 5, 6},
		{7, DefaultFill, DefaultFill},
	}
	for r, row := range want {
		for c, v := range row {
			assert.Equal(t, v, tileAt(img, r, c), "cell (%d,%d)", r, c)
		}
	}

	// Fill cells are solid, not just their corner.
	assert.Equal(t, DefaultFill, img.At(5, 5, 0))
	assert.Equal(t, uint8(7), img.At(5, 1, 0))
}

func TestComposeCustomFill(t *testing.T) {
	img, err := Compose(batch(t, 1), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 0, 0, 1, 1, 0, 0}, img.Data())
}

func TestComposeMoreColumnsThanImages(t *testing.T) {
	img, err := Compose(batch(t, 2), 4, DefaultFill)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 8, 1}, img.Shape())
}

func TestComposeErrors(t *testing.T) {
	b := batch(t, 3)

	for _, cols := range []int{0, -2} {
		_, err := Compose(b, cols, DefaultFill)
		var gse *GridSizeError
		require.True(t, errors.As(err, &gse), "cols %d", cols)
		assert.Equal(t, cols, gse.Cols)
	}

	wrong := tensor.Zeros[uint8](tensor.Shape{3, 2, 2, 2}, cpu.New())
	_, err := Compose(wrong, 2, DefaultFill)
	assert.ErrorIs(t, err, codec.ErrShapeMismatch)

	_, err = Compose[*cpu.CPUBackend](nil, 2, DefaultFill)
	assert.ErrorIs(t, err, codec.ErrShapeMismatch)
}

func TestGallery(t *testing.T) {
	img, err := Gallery(batch(t, 6), 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 6, 1}, img.Shape())
	assert.Equal(t, uint8(6), tileAt(img, 1, 2))

	_, err = Gallery(batch(t, 7), 3)
	var gse *GridSizeError
	require.True(t, errors.As(err, &gse))
	assert.Equal(t, 7, gse.N)
}

type fakeSink struct {
	written map[string]tensor.Shape
	shown   []string
	failPNG error
}

func (s *fakeSink) WritePNG(path string, img *tensor.RawTensor) error {
	if s.failPNG != nil {
		return s.failPNG
	}
	if s.written == nil {
		s.written = make(map[string]tensor.Shape)
	}
	s.written[path] = img.Shape()
	return nil
}

func (s *fakeSink) Show(title string, _ *tensor.RawTensor) error {
	s.shown = append(s.shown, title)
	return nil
}

func TestGroupSavesWithPNGSuffix(t *testing.T) {
	sink := &fakeSink{}
	opts := DefaultGroupOptions()
	opts.SavePath = "out/predictions"
	opts.Show = true

	img, err := Group(batch(t, 4), 2, opts, sink)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, tensor.Shape{4, 4, 1}, sink.written["out/predictions.png"])
	assert.Equal(t, []string{"grid"}, sink.shown)
}

func TestGroupReturnsGridOnIOError(t *testing.T) {
	ioErr := errors.New("read-only file system")
	sink := &fakeSink{failPNG: ioErr}
	opts := DefaultGroupOptions()
	opts.SavePath = "/readonly/grid"

	img, err := Group(batch(t, 3), 3, opts, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, ioErr)
	require.NotNil(t, img)
	assert.Equal(t, tensor.Shape{2, 6, 1}, img.Shape())
}

func TestGroupWithoutIO(t *testing.T) {
	img, err := Group(batch(t, 2), 2, DefaultGroupOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4, 1}, img.Shape())

	opts := DefaultGroupOptions()
	opts.Show = true
	img, err = Group(batch(t, 2), 2, opts, nil)
	assert.Error(t, err)
	assert.NotNil(t, img)
}
