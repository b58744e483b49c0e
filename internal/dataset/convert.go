package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/imageio"
	"github.com/born-ml/segkit/internal/logger"
	"github.com/born-ml/segkit/internal/tensor"
)

// ReadFunc loads one image file as an (H, W, 1) uint8 tensor.
type ReadFunc func(path string) (*tensor.RawTensor, error)

// Converter turns a directory of same-sized grayscale images into a
// single (N, H, W, 1) uint8 store.
type Converter[B tensor.Backend] struct {
	codec   *codec.Codec[B]
	read    ReadFunc
	workers int
	log     zerolog.Logger
}

type converterOptions struct {
	read    ReadFunc
	workers int
	log     zerolog.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*converterOptions)

// WithReader replaces the image decoder (default imageio.ReadGray).
func WithReader(read ReadFunc) ConverterOption {
	return func(o *converterOptions) { o.read = read }
}

// WithWorkers bounds the number of images decoded concurrently
// (default runtime.NumCPU).
func WithWorkers(n int) ConverterOption {
	return func(o *converterOptions) { o.workers = n }
}

// WithLogger sets the progress logger (default zerolog.Nop).
func WithLogger(log zerolog.Logger) ConverterOption {
	return func(o *converterOptions) { o.log = log }
}

// NewConverter creates a Converter that checks image sizes and binarizes
// masks with c's settings.
func NewConverter[B tensor.Backend](c *codec.Codec[B], opts ...ConverterOption) *Converter[B] {
	o := converterOptions{
		read:    imageio.ReadGray,
		workers: runtime.NumCPU(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Converter[B]{
		codec:   c,
		read:    o.read,
		workers: max(o.workers, 1),
		log:     logger.Component(o.log, "dataset"),
	}
}

// ConvertOptions selects the inputs and output of one conversion.
type ConvertOptions struct {
	Exts   []string // Image extensions to include (nil = imageio.DefaultExtensions)
	Key    string   // Tensor name in the store (default DefaultKey)
	Ext    string   // Output extension appended to the directory path (default DefaultExt)
	IsMask bool     // Binarize every image with Settings.MaskBinaryThreshold
}

// Convert reads every image in dir (sorted by name) and writes them to
// dir+Ext as one (N, ImgHeight, ImgWidth, 1) uint8 tensor. Returns the
// output path.
//
// Images must already be ImgHeight×ImgWidth. Only masks are binarized;
// raw images are stored unchanged. Cancelling ctx aborts the conversion
// before anything is written.
func (c *Converter[B]) Convert(ctx context.Context, dir string, opts ConvertOptions) (string, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}

	paths, err := imageio.ListImages(dir, opts.Exts)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoImages, dir)
	}

	settings := c.codec.Settings()
	backend := c.codec.Backend()
	want := tensor.Shape{settings.ImgHeight, settings.ImgWidth, 1}

	images := make([]*tensor.RawTensor, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			raw, err := c.read(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if raw.DType() != tensor.Uint8 || !raw.Shape().Equal(want) {
				return &codec.ShapeMismatchError{
					Op:   "convert " + filepath.Base(path),
					Want: fmt.Sprintf("uint8 %v", want),
					Got:  raw.Shape().Clone(),
				}
			}

			if opts.IsMask {
				//nolint:gosec // G115: threshold is validated to [0, 255].
				bin, err := c.codec.Binarize(tensor.New[uint8, B](raw, backend), uint8(settings.MaskBinaryThreshold))
				if err != nil {
					return err
				}
				raw = bin.Raw()
			}

			images[i] = backend.Reshape(raw, tensor.Shape{1, want[0], want[1], 1})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	batch := backend.Cat(images, 0)
	output := filepath.Clean(dir) + opts.Ext

	kind := "image"
	if opts.IsMask {
		kind = "mask"
	}
	if err := writeStore(output, map[string]*tensor.RawTensor{opts.Key: batch}, WriteOptions{
		Masks: opts.IsMask,
		Metadata: map[string]string{
			"source": filepath.Base(filepath.Clean(dir)),
			"kind":   kind,
			"count":  strconv.Itoa(len(paths)),
		},
	}); err != nil {
		return "", err
	}

	c.log.Info().
		Str("output", output).
		Str("kind", kind).
		Int("images", len(paths)).
		Msg("dataset written")

	return output, nil
}

func writeStore(path string, tensors map[string]*tensor.RawTensor, opts WriteOptions) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(tensors, opts); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
