package codec

import "fmt"

// Settings holds the class layout and intensity constants the codec reads.
//
// Settings are passed explicitly to New and never mutated by the codec.
// The mapstructure tags let internal/config unmarshal them from YAML or
// environment variables.
type Settings struct {
	NumClasses          int `mapstructure:"num_classes"`           // Channels in one-hot tensors
	MaskBackground      int `mapstructure:"mask_background"`       // Background intensity in masks
	MaskForeground      int `mapstructure:"mask_foreground"`       // Foreground (vessel) intensity in masks
	OneHotBackground    int `mapstructure:"onehot_background"`     // Background channel index
	OneHotForeground    int `mapstructure:"onehot_foreground"`     // Foreground channel index
	ImgHeight           int `mapstructure:"img_height"`            // Target height for flattened decode
	ImgWidth            int `mapstructure:"img_width"`             // Target width for flattened decode
	MaskBinaryThreshold int `mapstructure:"mask_binary_threshold"` // Ingestion binarization threshold
}

// DefaultSettings returns the two-class retinal vessel configuration.
func DefaultSettings() Settings {
	return Settings{
		NumClasses:          2,
		MaskBackground:      0,
		MaskForeground:      255,
		OneHotBackground:    0,
		OneHotForeground:    1,
		ImgHeight:           256,
		ImgWidth:            256,
		MaskBinaryThreshold: 20,
	}
}

// Validate checks that the settings describe a usable class layout.
func (s Settings) Validate() error {
	switch {
	case s.NumClasses < 2 || s.NumClasses > 256:
		return fmt.Errorf("%w: num_classes %d outside [2, 256]", ErrInvalidSettings, s.NumClasses)
	case s.OneHotBackground < 0 || s.OneHotBackground >= s.NumClasses:
		return fmt.Errorf("%w: onehot_background %d outside [0, %d)", ErrInvalidSettings, s.OneHotBackground, s.NumClasses)
	case s.OneHotForeground < 0 || s.OneHotForeground >= s.NumClasses:
		return fmt.Errorf("%w: onehot_foreground %d outside [0, %d)", ErrInvalidSettings, s.OneHotForeground, s.NumClasses)
	case s.OneHotBackground == s.OneHotForeground:
		return fmt.Errorf("%w: background and foreground share channel %d", ErrInvalidSettings, s.OneHotForeground)
	case !isIntensity(s.MaskBackground):
		return fmt.Errorf("%w: mask_background %d outside [0, 255]", ErrInvalidSettings, s.MaskBackground)
	case !isIntensity(s.MaskForeground):
		return fmt.Errorf("%w: mask_foreground %d outside [0, 255]", ErrInvalidSettings, s.MaskForeground)
	case s.MaskBackground == s.MaskForeground:
		return fmt.Errorf("%w: background and foreground share intensity %d", ErrInvalidSettings, s.MaskForeground)
	case !isIntensity(s.MaskBinaryThreshold):
		return fmt.Errorf("%w: mask_binary_threshold %d outside [0, 255]", ErrInvalidSettings, s.MaskBinaryThreshold)
	case s.ImgHeight <= 0 || s.ImgWidth <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidSettings, s.ImgHeight, s.ImgWidth)
	}
	return nil
}

func isIntensity(v int) bool {
	return v >= 0 && v <= 255
}
