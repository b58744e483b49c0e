// Package imageio reads and writes single-channel images with OpenCV and
// implements the grid display sink.
package imageio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gocv.io/x/gocv"

	"github.com/born-ml/segkit/internal/tensor"
)

// DefaultExtensions are the image file extensions ListImages accepts when
// none are given.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif", ".ppm"}

// ReadGray decodes the image at path as 8-bit grayscale.
// The result is an (H, W, 1) uint8 tensor.
func ReadGray(path string) (*tensor.RawTensor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode %s: not an image", path)
	}

	raw, err := tensor.NewRawFromBytes(mat.ToBytes(), tensor.Shape{mat.Rows(), mat.Cols(), 1}, tensor.Uint8, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}
	return raw, nil
}

// WritePNG encodes an (H, W, 1) or (H, W) uint8 tensor as PNG at path.
func WritePNG(path string, img *tensor.RawTensor) error {
	mat, err := toMat(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	defer buf.Close()

	if err := os.WriteFile(path, buf.GetBytes(), 0o644); err != nil { //nolint:gosec // G306: images are meant to be readable.
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func toMat(img *tensor.RawTensor) (gocv.Mat, error) {
	if img == nil {
		return gocv.Mat{}, errors.New("no image")
	}
	shape := img.Shape()
	if img.DType() != tensor.Uint8 {
		return gocv.Mat{}, fmt.Errorf("image dtype is %s, want uint8", img.DType())
	}
	switch {
	case len(shape) == 3 && shape[2] == 1, len(shape) == 2:
	default:
		return gocv.Mat{}, fmt.Errorf("image shape %v, want (H, W, 1) or (H, W)", shape)
	}

	mat, err := gocv.NewMatFromBytes(shape[0], shape[1], gocv.MatTypeCV8UC1, img.Data())
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create mat: %w", err)
	}
	return mat, nil
}

// ListImages returns the image files directly inside dir, sorted by name.
// Extensions are matched case-insensitively; nil exts means DefaultExtensions.
func ListImages(dir string, exts []string) ([]string, error) {
	if exts == nil {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
