package dataset

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/segkit/internal/tensor"
)

// Reader reads tensors from a .sgkd file.
type Reader struct {
	file       *os.File
	header     Header
	flags      uint32
	dataOffset int64    // Offset where tensor data starts
	dataSize   int64    // Size of the data section
	checksum   [32]byte // SHA-256 checksum from the fixed header
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool // Skip checksum validation (faster but less safe)
}

// Open opens a .sgkd file and verifies its checksum.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{})
}

// OpenWithOptions opens a .sgkd file with custom options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: dataset path comes from the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{file: file, opts: opts}
	if err := r.parse(); err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return r, nil
}

func (r *Reader) parse() error {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.file, fixed); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return ErrInvalidMagic
		}
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixed[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(fixed[4:8]); v != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, v, FormatVersion)
	}
	r.flags = binary.LittleEndian.Uint32(fixed[8:12])

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.dataOffset = alignedOffset(int64(headerSize)) //nolint:gosec // G115: bounded by MaxHeaderSize.

	info, err := r.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	available := info.Size() - r.dataOffset
	if dataSize > uint64(max(available, 0)) {
		return &StoreError{
			Type:    "truncated",
			Details: fmt.Sprintf("data section declares %d bytes, file holds %d", dataSize, max(available, 0)),
		}
	}
	r.dataSize = int64(dataSize) //nolint:gosec // G115: bounded by file size.

	if err := ValidateHeader(&r.header, r.dataSize); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !r.opts.SkipChecksumValidation {
		section := io.NewSectionReader(r.file, r.dataOffset, r.dataSize)
		computed, err := ComputeChecksumReader(section)
		if err != nil {
			return fmt.Errorf("failed to read tensor data for checksum: %w", err)
		}
		if err := ValidateChecksum(computed, r.checksum); err != nil {
			return err
		}
	}

	return nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// Masks reports whether the store holds binarized masks.
func (r *Reader) Masks() bool {
	return r.flags&FlagMasks != 0
}

// Names returns the tensor names in storage order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// Info returns the metadata of a single tensor.
func (r *Reader) Info(name string) (*TensorMeta, error) {
	for _, meta := range r.header.Tensors {
		if meta.Name == name {
			return &meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
}

// Load reads one tensor into memory.
func (r *Reader) Load(name string) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.Info(name)
	if err != nil {
		return nil, err
	}
	dtype, _ := tensor.ParseDataType(meta.DType) // checked by ValidateHeader

	data := make([]byte, meta.Size)
	if _, err := r.file.ReadAt(data, r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}

	raw, err := tensor.NewRawFromBytes(data, tensor.Shape(meta.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor %s: %w", name, err)
	}
	return raw, nil
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
