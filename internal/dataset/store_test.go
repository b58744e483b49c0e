package dataset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/segkit/internal/tensor"
)

func rawUint8(t *testing.T, shape tensor.Shape, values ...uint8) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRawFromBytes(values, shape, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)
	return raw
}

func writeTestStore(t *testing.T) (string, map[string]*tensor.RawTensor) {
	t.Helper()

	f, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(f.AsFloat32(), []float32{0.5, -1, 2, 3, 4, 5})

	tensors := map[string]*tensor.RawTensor{
		"image": rawUint8(t, tensor.Shape{2, 2, 2, 1}, 0, 255, 255, 0, 10, 20, 30, 40),
		"pred":  f,
	}

	path := filepath.Join(t.TempDir(), "train.sgkd")
	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(tensors, WriteOptions{Masks: true, Metadata: map[string]string{"source": "train"}}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second Close is a no-op")

	return path, tensors
}

func TestStoreRoundTrip(t *testing.T) {
	path, tensors := writeTestStore(t)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"image", "pred"}, r.Names())
	assert.True(t, r.Masks())
	assert.Equal(t, "train", r.Metadata()["source"])
	assert.Equal(t, FormatVersion, r.Header().FormatVersion)

	for name, want := range tensors {
		got, err := r.Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, want.Shape(), got.Shape(), name)
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.Equal(t, want.Data(), got.Data(), name)
	}

	_, err = r.Load("missing")
	assert.ErrorIs(t, err, ErrTensorNotFound)

	require.NoError(t, r.Close())
	_, err = r.Load("image")
	assert.Error(t, err)
}

func TestStoreIsDeterministic(t *testing.T) {
	tensors := map[string]*tensor.RawTensor{
		"b": rawUint8(t, tensor.Shape{2}, 1, 2),
		"a": rawUint8(t, tensor.Shape{3}, 3, 4, 5),
	}

	var first, second bytes.Buffer
	require.NoError(t, Encode(&first, tensors, WriteOptions{}))
	require.NoError(t, Encode(&second, tensors, WriteOptions{}))

	// Everything but the creation timestamp is identical: compare the data
	// sections, which sit at the end of the file.
	assert.Equal(t, first.Bytes()[first.Len()-5:], second.Bytes()[second.Len()-5:])
	assert.Equal(t, []byte{3, 4, 5, 1, 2}, first.Bytes()[first.Len()-5:])
	assert.Equal(t, first.Bytes()[ChecksumOffset:ChecksumOffset+ChecksumSize],
		second.Bytes()[ChecksumOffset:ChecksumOffset+ChecksumSize])
}

func TestStoreDataIsAligned(t *testing.T) {
	path, _ := writeTestStore(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	headerSize := int64(binary.LittleEndian.Uint64(data[16:24])) //nolint:gosec // test file.
	dataSize := int64(binary.LittleEndian.Uint64(data[24:32]))   //nolint:gosec // test file.
	offset := alignedOffset(headerSize)

	assert.Zero(t, offset%HeaderAlignment)
	assert.Equal(t, int64(len(data)), offset+dataSize)
}

// corrupt rewrites a copy of the test store and returns the new path.
func corrupt(t *testing.T, mutate func(data []byte) []byte) string {
	t.Helper()
	path, _ := writeTestStore(t)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.sgkd")
	require.NoError(t, os.WriteFile(bad, mutate(data), 0o600))
	return bad
}

func TestStoreCorruption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"FlippedDataByte", func(d []byte) []byte { d[len(d)-1] ^= 0xFF; return d }, ErrChecksumMismatch},
		{"BadMagic", func(d []byte) []byte { copy(d, "BORN"); return d }, ErrInvalidMagic},
		{"Empty", func([]byte) []byte { return nil }, ErrInvalidMagic},
		{"FutureVersion", func(d []byte) []byte { binary.LittleEndian.PutUint32(d[4:8], 9); return d }, ErrUnsupportedVersion},
		{"HugeHeader", func(d []byte) []byte { binary.LittleEndian.PutUint64(d[16:24], 1<<40); return d }, ErrHeaderTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(corrupt(t, tt.mutate))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStoreTruncated(t *testing.T) {
	bad := corrupt(t, func(d []byte) []byte { return d[:len(d)-3] })

	_, err := Open(bad)
	var se *StoreError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, "truncated", se.Type)
}

func TestSkipChecksumValidation(t *testing.T) {
	bad := corrupt(t, func(d []byte) []byte { d[len(d)-1] ^= 0xFF; return d })

	r, err := OpenWithOptions(bad, ReaderOptions{SkipChecksumValidation: true})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Load("pred")
	assert.NoError(t, err)
}

func TestEncodeRejectsBadNames(t *testing.T) {
	var buf bytes.Buffer
	x := rawUint8(t, tensor.Shape{1}, 1)

	for _, name := range []string{"", "../escape", "a/b", "nul\x00"} {
		err := Encode(&buf, map[string]*tensor.RawTensor{name: x}, WriteOptions{})
		var se *StoreError
		assert.True(t, errors.As(err, &se), "name %q", name)
	}

	assert.Error(t, Encode(&buf, nil, WriteOptions{}))
}

func TestValidateHeader(t *testing.T) {
	meta := func(name string, offset, size int64) TensorMeta {
		return TensorMeta{Name: name, DType: "uint8", Shape: []int{int(size)}, Offset: offset, Size: size}
	}

	tests := []struct {
		name     string
		tensors  []TensorMeta
		wantType string
	}{
		{"Overlap", []TensorMeta{meta("a", 0, 8), meta("b", 4, 8)}, "offset_overlap"},
		{"OutOfBounds", []TensorMeta{meta("a", 10, 8)}, "out_of_bounds"},
		{"Negative", []TensorMeta{{Name: "a", DType: "uint8", Shape: []int{1}, Offset: -1, Size: 1}}, "negative_offset"},
		{"Duplicate", []TensorMeta{meta("a", 0, 4), meta("a", 4, 4)}, "duplicate_name"},
		{"UnknownDType", []TensorMeta{{Name: "a", DType: "complex64", Shape: []int{1}, Size: 8}}, "invalid_dtype"},
		{"SizeMismatch", []TensorMeta{{Name: "a", DType: "float32", Shape: []int{2}, Size: 4}}, "size_mismatch"},
		{"BadShape", []TensorMeta{{Name: "a", DType: "uint8", Shape: []int{0}, Size: 0}}, "invalid_shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(&Header{Tensors: tt.tensors}, 16)
			var se *StoreError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.wantType, se.Type)
		})
	}

	assert.NoError(t, ValidateHeader(&Header{Tensors: []TensorMeta{meta("a", 0, 8), meta("b", 8, 8)}}, 16))
}

func TestChecksum(t *testing.T) {
	data := []byte("mask batch")
	sum := ComputeChecksum(data)

	fromReader, err := ComputeChecksumReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sum, fromReader)

	assert.NoError(t, ValidateChecksum(sum, sum))
	assert.ErrorIs(t, ValidateChecksum(sum, ComputeChecksum([]byte("other"))), ErrChecksumMismatch)
}
