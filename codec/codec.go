// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/tensor"
)

// Codec encodes masks and decodes predictions on backend B.
type Codec[B tensor.Backend] = codec.Codec[B]

// Settings holds the class layout, mask intensities and image size.
type Settings = codec.Settings

// Option configures a Codec.
type Option = codec.Option

// Layout selects the spatial or flattened tensor layout.
type Layout = codec.Layout

// Layout constants.
const (
	Spatial   Layout = codec.Spatial
	Flattened Layout = codec.Flattened
)

// ValidationMode controls how Encode treats intensities that are neither
// background nor foreground.
type ValidationMode = codec.ValidationMode

// Validation modes.
const (
	Permissive ValidationMode = codec.Permissive
	Strict     ValidationMode = codec.Strict
)

// DefaultDecodeThreshold is the foreground probability cut-off.
const DefaultDecodeThreshold = codec.DefaultDecodeThreshold

// Error types.
type (
	ShapeMismatchError = codec.ShapeMismatchError
	ValidationError    = codec.ValidationError
)

// Sentinel errors.
var (
	ErrShapeMismatch   = codec.ErrShapeMismatch
	ErrValidation      = codec.ErrValidation
	ErrInvalidSettings = codec.ErrInvalidSettings
)

// New creates a Codec after validating settings.
func New[B tensor.Backend](settings Settings, backend B, opts ...Option) (*Codec[B], error) {
	return codec.New(settings, backend, opts...)
}

// DefaultSettings returns the two-class defaults (0/255 masks, 256×256 images).
func DefaultSettings() Settings {
	return codec.DefaultSettings()
}

// WithValidation sets the Encode validation mode.
func WithValidation(mode ValidationMode) Option {
	return codec.WithValidation(mode)
}

// ParseLayout parses "spatial" or "flattened".
func ParseLayout(s string) (Layout, error) {
	return codec.ParseLayout(s)
}
