package dataset

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/born-ml/segkit/internal/tensor"
	"github.com/born-ml/segkit/internal/version"
)

// WriteOptions describes what a store holds.
type WriteOptions struct {
	Masks    bool              // Tensors are binarized ground-truth masks
	Metadata map[string]string // Free-form metadata recorded in the header
}

// Writer writes tensor batches in .sgkd format.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates (or truncates) a .sgkd file at path.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: output path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// Write stores tensors under their map keys.
//
// Tensors are laid out in name order, so the same input always produces
// the same data section and checksum.
func (w *Writer) Write(tensors map[string]*tensor.RawTensor, opts WriteOptions) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	return Encode(w.file, tensors, opts)
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// Encode writes a complete .sgkd store to out.
func Encode(out io.Writer, tensors map[string]*tensor.RawTensor, opts WriteOptions) error {
	if len(tensors) == 0 {
		return fmt.Errorf("no tensors to write")
	}
	if len(tensors) > MaxTensorCount {
		return &StoreError{Type: "too_many_tensors", Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount)}
	}

	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		SegkitVersion: version.Version,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(names)),
		Metadata:      opts.Metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Calculate tensor offsets
	var offset int64
	for _, name := range names {
		raw := tensors[name]
		size := int64(raw.ByteSize())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  raw.DType().String(),
			Shape:  []int(raw.Shape().Clone()),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	// Checksum covers the data section as written
	h := sha256.New()
	for _, name := range names {
		h.Write(tensors[name].Data())
	}
	var checksum [32]byte
	copy(checksum[:], h.Sum(nil))

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersion)

	flags := uint32(0)
	if opts.Masks {
		flags |= FlagMasks
	}
	if len(opts.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixed[8:12], flags)

	// 0x0C-0x0F: Reserved (0)
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(offset)) //nolint:gosec // G115: offset is a sum of non-negative sizes.
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := out.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := out.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	pos := int64(FixedHeaderSize + len(headerJSON))
	if padding := alignedOffset(int64(len(headerJSON))) - pos; padding > 0 {
		if _, err := out.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	for _, name := range names {
		if _, err := out.Write(tensors[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	return nil
}
