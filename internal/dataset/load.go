package dataset

import (
	"fmt"

	"github.com/born-ml/segkit/internal/preprocess"
	"github.com/born-ml/segkit/internal/tensor"
)

// LoadImages loads the raw image batch stored under key and standardises
// it to zero mean and unit variance.
func LoadImages[B tensor.Backend](path, key string, backend B) (*tensor.Tensor[float32, B], error) {
	raw, err := loadRaw(path, key)
	if err != nil {
		return nil, err
	}
	std, err := preprocess.Standardise(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to standardise %s: %w", path, err)
	}
	return tensor.FromRaw[float32](std, backend)
}

// LoadGroundTruths loads the mask batch stored under key as uint8.
func LoadGroundTruths[B tensor.Backend](path, key string, backend B) (*tensor.Tensor[uint8, B], error) {
	raw, err := loadRaw(path, key)
	if err != nil {
		return nil, err
	}
	if raw.DType() != tensor.Uint8 {
		raw = backend.Cast(raw, tensor.Uint8)
	}
	return tensor.FromRaw[uint8](raw, backend)
}

func loadRaw(path, key string) (*tensor.RawTensor, error) {
	if key == "" {
		key = DefaultKey
	}
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Load(key)
}
