// Package config loads segkit settings from a YAML file, SEGKIT_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/born-ml/segkit/internal/codec"
	"github.com/born-ml/segkit/internal/dataset"
	"github.com/born-ml/segkit/internal/grid"
)

// EnvPrefix prefixes every environment override, e.g. SEGKIT_CODEC_NUM_CLASSES.
const EnvPrefix = "SEGKIT"

type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Codec      codec.Settings   `mapstructure:"codec"`
	Decode     DecodeConfig     `mapstructure:"decode"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Grid       GridConfig       `mapstructure:"grid"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type DecodeConfig struct {
	Threshold  float32 `mapstructure:"threshold"`
	Layout     string  `mapstructure:"layout"`
	Validation string  `mapstructure:"validation"`
}

type DatasetConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Key        string   `mapstructure:"key"`
	Ext        string   `mapstructure:"ext"`
	Workers    int      `mapstructure:"workers"`
}

type PreprocessConfig struct {
	CropHeight int `mapstructure:"crop_height"`
	CropWidth  int `mapstructure:"crop_width"`
}

type GridConfig struct {
	Columns int `mapstructure:"columns"`
	Fill    int `mapstructure:"fill"`
}

// Load reads configuration from path (may be empty) plus environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	d := codec.DefaultSettings()
	return &Config{
		Log:   LogConfig{Level: "info", Console: true},
		Codec: d,
		Decode: DecodeConfig{
			Threshold:  codec.DefaultDecodeThreshold,
			Layout:     codec.Spatial.String(),
			Validation: codec.Permissive.String(),
		},
		Dataset: DatasetConfig{
			Extensions: []string{".png", ".gif", ".jpg", ".jpeg", ".tif", ".tiff"},
			Key:        dataset.DefaultKey,
			Ext:        dataset.DefaultExt,
			Workers:    0,
		},
		Preprocess: PreprocessConfig{CropHeight: 32, CropWidth: 32},
		Grid:       GridConfig{Columns: 4, Fill: int(grid.DefaultFill)},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)

	v.SetDefault("codec.num_classes", d.Codec.NumClasses)
	v.SetDefault("codec.mask_background", d.Codec.MaskBackground)
	v.SetDefault("codec.mask_foreground", d.Codec.MaskForeground)
	v.SetDefault("codec.onehot_background", d.Codec.OneHotBackground)
	v.SetDefault("codec.onehot_foreground", d.Codec.OneHotForeground)
	v.SetDefault("codec.img_height", d.Codec.ImgHeight)
	v.SetDefault("codec.img_width", d.Codec.ImgWidth)
	v.SetDefault("codec.mask_binary_threshold", d.Codec.MaskBinaryThreshold)

	v.SetDefault("decode.threshold", d.Decode.Threshold)
	v.SetDefault("decode.layout", d.Decode.Layout)
	v.SetDefault("decode.validation", d.Decode.Validation)

	v.SetDefault("dataset.extensions", d.Dataset.Extensions)
	v.SetDefault("dataset.key", d.Dataset.Key)
	v.SetDefault("dataset.ext", d.Dataset.Ext)
	v.SetDefault("dataset.workers", d.Dataset.Workers)

	v.SetDefault("preprocess.crop_height", d.Preprocess.CropHeight)
	v.SetDefault("preprocess.crop_width", d.Preprocess.CropWidth)

	v.SetDefault("grid.columns", d.Grid.Columns)
	v.SetDefault("grid.fill", d.Grid.Fill)
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Codec.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := codec.ParseLayout(c.Decode.Layout); err != nil {
		errs = append(errs, fmt.Errorf("decode.layout: %w", err))
	}
	if _, err := codec.ParseValidationMode(c.Decode.Validation); err != nil {
		errs = append(errs, fmt.Errorf("decode.validation: %w", err))
	}
	if c.Decode.Threshold < 0 || c.Decode.Threshold > 1 {
		errs = append(errs, fmt.Errorf("decode.threshold %v outside [0, 1]", c.Decode.Threshold))
	}
	if c.Dataset.Workers < 0 {
		errs = append(errs, fmt.Errorf("dataset.workers %d must not be negative", c.Dataset.Workers))
	}
	if c.Preprocess.CropHeight < 0 || c.Preprocess.CropWidth < 0 {
		errs = append(errs, errors.New("preprocess crop borders must not be negative"))
	}
	if 2*c.Preprocess.CropHeight >= c.Codec.ImgHeight || 2*c.Preprocess.CropWidth >= c.Codec.ImgWidth {
		errs = append(errs, fmt.Errorf("preprocess crop %dx%d leaves nothing of %dx%d images",
			c.Preprocess.CropHeight, c.Preprocess.CropWidth, c.Codec.ImgHeight, c.Codec.ImgWidth))
	}
	if c.Grid.Columns <= 0 {
		errs = append(errs, fmt.Errorf("grid.columns %d must be positive", c.Grid.Columns))
	}
	if c.Grid.Fill < 0 || c.Grid.Fill > 255 {
		errs = append(errs, fmt.Errorf("grid.fill %d outside [0, 255]", c.Grid.Fill))
	}

	return errors.Join(errs...)
}

// Layout returns the parsed decode layout.
func (c *Config) Layout() codec.Layout {
	l, _ := codec.ParseLayout(c.Decode.Layout)
	return l
}

// ValidationMode returns the parsed encode validation mode.
func (c *Config) ValidationMode() codec.ValidationMode {
	m, _ := codec.ParseValidationMode(c.Decode.Validation)
	return m
}
