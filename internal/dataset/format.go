package dataset

import "time"

// Format constants.
const (
	MagicBytes      = "SGKD"
	FormatVersion   = 1    // v1: fixed header with SHA-256 checksum
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// DefaultKey is the tensor name used when a conversion does not name one.
const DefaultKey = "image"

// DefaultExt is the store file extension.
const DefaultExt = ".sgkd"

// Flags for the .sgkd format.
const (
	FlagMasks       uint32 = 1 << 0 // bit 0: tensors are binarized masks
	FlagHasMetadata uint32 = 1 << 1 // bit 1: custom metadata included
)

// Header represents the JSON header in a .sgkd file.
type Header struct {
	FormatVersion int               `json:"format_version"` // Version of the .sgkd format
	SegkitVersion string            `json:"segkit_version"` // Version of segkit that created this file
	CreatedAt     time.Time         `json:"created_at"`     // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`        // Tensor metadata
	Metadata      map[string]string `json:"metadata"`       // Custom metadata (source dir, image count, ...)
}

// TensorMeta describes a tensor in the .sgkd file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "image")
	DType  string `json:"dtype"`  // Data type (e.g., "uint8")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// alignedOffset returns the data section offset for a header of headerSize bytes.
func alignedOffset(headerSize int64) int64 {
	pos := int64(FixedHeaderSize) + headerSize
	return pos + (HeaderAlignment-(pos%HeaderAlignment))%HeaderAlignment
}
