// Package preprocess holds the image preparation steps applied before
// images reach the codec: aspect-preserving resize, border cropping and
// batch standardisation.
package preprocess

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/born-ml/segkit/internal/tensor"
)

// AspectResizer resizes images to exactly Width×Height without distorting
// them: the short side is scaled to its target, the long side is
// centre-cropped, and the crop is scaled to the final size.
type AspectResizer struct {
	Width        int
	Height       int
	Interpolator draw.Interpolator // nil means draw.CatmullRom
}

// NewAspectResizer returns a resizer using Catmull-Rom interpolation.
func NewAspectResizer(width, height int) *AspectResizer {
	return &AspectResizer{Width: width, Height: height, Interpolator: draw.CatmullRom}
}

// Resize returns a Width×Height grayscale copy of src.
func (r *AspectResizer) Resize(src image.Image) (*image.Gray, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("resize: target %dx%d must be positive", r.Width, r.Height)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("resize: empty source image %v", b)
	}

	interp := r.Interpolator
	if interp == nil {
		interp = draw.CatmullRom
	}

	// Scale the short side to its target, truncating the other like
	// integer pixel arithmetic does.
	var sw, sh, cropW, cropH int
	if w < h {
		sw, sh = r.Width, h*r.Width/w
		cropH = max((sh-r.Height)/2, 0)
	} else {
		sw, sh = w*r.Height/h, r.Height
		cropW = max((sw-r.Width)/2, 0)
	}
	sw, sh = max(sw, 1), max(sh, 1)

	scaled := image.NewGray(image.Rect(0, 0, sw, sh))
	interp.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)

	crop := image.Rect(cropW, cropH, sw-cropW, sh-cropH)
	dst := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	interp.Scale(dst, dst.Bounds(), scaled, crop, draw.Src, nil)

	return dst, nil
}

// ResizeTensor resizes an (H, W, 1) uint8 image tensor.
func (r *AspectResizer) ResizeTensor(raw *tensor.RawTensor) (*tensor.RawTensor, error) {
	img, err := ToGray(raw)
	if err != nil {
		return nil, err
	}
	out, err := r.Resize(img)
	if err != nil {
		return nil, err
	}
	return FromGray(out)
}

// ToGray wraps a copy of an (H, W, 1) or (H, W) uint8 tensor as an image.
func ToGray(raw *tensor.RawTensor) (*image.Gray, error) {
	shape := raw.Shape()
	if raw.DType() != tensor.Uint8 || !(len(shape) == 2 || len(shape) == 3 && shape[2] == 1) {
		return nil, fmt.Errorf("want an (H, W, 1) uint8 image, got %s%v", raw.DType(), shape)
	}
	h, w := shape[0], shape[1]
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, raw.Data())
	return img, nil
}

// FromGray copies a grayscale image into an (H, W, 1) uint8 tensor.
func FromGray(img *image.Gray) (*tensor.RawTensor, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	raw, err := tensor.NewRaw(tensor.Shape{h, w, 1}, tensor.Uint8, tensor.CPU)
	if err != nil {
		return nil, err
	}
	dst := raw.Data()
	for y := 0; y < h; y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst[y*w:(y+1)*w], img.Pix[start:start+w])
	}
	return raw, nil
}
