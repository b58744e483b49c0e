package cpu

import (
	"testing"

	"github.com/born-ml/segkit/internal/tensor"
)

// TestWhereScalar_Binarize thresholds a raw grayscale row the way mask
// binarization does.
func TestWhereScalar_Binarize(t *testing.T) {
	backend := newTestBackend()
	raw := rawUint8(t, tensor.Shape{1, 4}, 0, 20, 21, 200)

	mask := backend.WhereScalar(backend.GreaterScalar(raw, 20), 255, 0, tensor.Uint8)
	expected := []uint8{0, 0, 255, 255}
	for i, v := range mask.AsUint8() {
		if v != expected[i] {
			t.Errorf("mask[%d] = %d, expected %d", i, v, expected[i])
		}
	}
}

func TestWhereScalar_Float32(t *testing.T) {
	backend := newTestBackend()
	cond := backend.EqualScalar(rawUint8(t, tensor.Shape{2}, 0, 1), 0)

	result := backend.WhereScalar(cond, 1, 0, tensor.Float32).AsFloat32()
	if result[0] != 1 || result[1] != 0 {
		t.Errorf("Expected [1 0], got %v", result)
	}

	expectPanic(t, "non-bool condition", func() {
		backend.WhereScalar(rawUint8(t, tensor.Shape{1}, 1), 1, 0, tensor.Float32)
	})
}

func TestOneHot(t *testing.T) {
	backend := newTestBackend()

	idx, _ := tensor.NewRaw(tensor.Shape{1, 3}, tensor.Int32, tensor.CPU)
	copy(idx.AsInt32(), []int32{0, 1, 2})

	result := backend.OneHot(idx, 3, tensor.Float32)
	if !result.Shape().Equal(tensor.Shape{1, 3, 3}) {
		t.Fatalf("Expected shape [1 3 3], got %v", result.Shape())
	}
	expected := []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("result[%d] = %v, expected %v", i, v, expected[i])
		}
	}
}

func TestOneHot_Uint8Indices(t *testing.T) {
	backend := newTestBackend()
	idx := rawUint8(t, tensor.Shape{2}, 1, 0)

	result := backend.OneHot(idx, 2, tensor.Uint8).AsUint8()
	expected := []uint8{0, 1, 1, 0}
	for i, v := range result {
		if v != expected[i] {
			t.Errorf("result[%d] = %d, expected %d", i, v, expected[i])
		}
	}
}

func TestOneHot_Invalid(t *testing.T) {
	backend := newTestBackend()
	idx := rawUint8(t, tensor.Shape{2}, 0, 2)

	expectPanic(t, "index out of range", func() { backend.OneHot(idx, 2, tensor.Float32) })
	expectPanic(t, "zero classes", func() { backend.OneHot(idx, 0, tensor.Float32) })
	expectPanic(t, "float indices", func() {
		backend.OneHot(rawFloat32(t, tensor.Shape{1}, 0), 2, tensor.Float32)
	})
}
