// Package codec converts between single-channel mask images and the
// per-pixel one-hot class tensors a segmentation network consumes and
// produces.
//
// The two-class path (Binarize, Encode, Decode) reproduces the threshold
// rules of the training pipeline exactly. The general C-class path
// (EncodeLabels, DecodeArgmax) is a separate API and never changes
// two-class results.
//
// Every operation is built from whole-tensor backend operations, returns a
// freshly allocated tensor and leaves its input untouched. A Codec holds no
// state between calls and is safe for concurrent use.
package codec

import (
	"github.com/rs/zerolog"

	"github.com/born-ml/segkit/internal/logger"
	"github.com/born-ml/segkit/internal/tensor"
)

// Codec encodes masks and decodes predictions for one class layout.
type Codec[B tensor.Backend] struct {
	settings Settings
	backend  B
	mode     ValidationMode
	log      zerolog.Logger
}

type options struct {
	mode ValidationMode
	log  zerolog.Logger
}

// Option configures a Codec.
type Option func(*options)

// WithValidation sets how Encode treats third intensities (default Permissive).
func WithValidation(mode ValidationMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithLogger sets the logger used for warnings (default zerolog.Nop).
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates a Codec after validating settings.
//
// Example:
//
//	c, err := codec.New(codec.DefaultSettings(), cpu.New(), codec.WithValidation(codec.Strict))
func New[B tensor.Backend](settings Settings, backend B, opts ...Option) (*Codec[B], error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	o := options{mode: Permissive, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Codec[B]{
		settings: settings,
		backend:  backend,
		mode:     o.mode,
		log:      logger.Component(o.log, "codec"),
	}
	c.log.Debug().
		Int("classes", settings.NumClasses).
		Str("mode", o.mode.String()).
		Str("backend", backend.Name()).
		Msg("codec ready")

	return c, nil
}

// Settings returns a copy of the codec settings.
func (c *Codec[B]) Settings() Settings {
	return c.settings
}

// Mode returns the encode validation mode.
func (c *Codec[B]) Mode() ValidationMode {
	return c.mode
}

// Backend returns the backend the codec computes on.
func (c *Codec[B]) Backend() B {
	return c.backend
}

func (c *Codec[B]) wrap(raw *tensor.RawTensor) *tensor.Tensor[uint8, B] {
	return tensor.New[uint8, B](raw, c.backend)
}
