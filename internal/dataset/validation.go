package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/segkit/internal/tensor"
)

// Validation limits.
const (
	MaxHeaderSize    = 16 * 1024 * 1024 // 16MB - maximum JSON header size
	MaxTensorCount   = 1024             // Maximum number of tensors in a file
	MaxTensorNameLen = 256              // Maximum tensor name length
)

// ValidateTensorName rejects empty, oversized and path-like names.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &StoreError{Type: "invalid_name", Details: "empty tensor name"}
	case len(name) > MaxTensorNameLen:
		return &StoreError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case strings.Contains(name, ".."), strings.ContainsAny(name, "/\\"):
		return &StoreError{Type: "invalid_name", Tensor: name, Details: "contains a path element"}
	case strings.Contains(name, "\x00"):
		return &StoreError{Type: "invalid_name", Tensor: name, Details: "contains null byte"}
	}
	return nil
}

// ValidateHeader checks names, dtypes, shapes and data offsets of every
// tensor against a data section of dataSize bytes.
func ValidateHeader(h *Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &StoreError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	seen := make(map[string]bool, len(h.Tensors))
	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if seen[t.Name] {
			return &StoreError{Type: "duplicate_name", Tensor: t.Name, Details: "tensor listed twice"}
		}
		seen[t.Name] = true

		dtype, ok := tensor.ParseDataType(t.DType)
		if !ok {
			return &StoreError{Type: "invalid_dtype", Tensor: t.Name, Details: fmt.Sprintf("unknown dtype %q", t.DType)}
		}
		shape := tensor.Shape(t.Shape)
		if err := shape.Validate(); err != nil {
			return &StoreError{Type: "invalid_shape", Tensor: t.Name, Details: err.Error()}
		}
		if want := int64(shape.NumElements() * dtype.Size()); t.Size != want {
			return &StoreError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("size %d, shape %v of %s needs %d", t.Size, t.Shape, t.DType, want),
			}
		}
	}

	return validateOffsets(h.Tensors, dataSize)
}

// validateOffsets checks for negative, out-of-bounds and overlapping regions.
func validateOffsets(tensors []TensorMeta, dataSize int64) error {
	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &StoreError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}
		if t.Offset+t.Size > dataSize {
			return &StoreError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &StoreError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}
	return nil
}
