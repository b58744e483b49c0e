package cpu

import (
	"testing"

	"github.com/born-ml/segkit/internal/tensor"
)

func TestArgmax_LastDim(t *testing.T) {
	backend := newTestBackend()

	// (1, 2, 2, 3): four pixels with three class scores each.
	x := rawFloat32(t, tensor.Shape{1, 2, 2, 3},
		0.1, 0.7, 0.2,
		0.9, 0.05, 0.05,
		0.2, 0.3, 0.5,
		0.4, 0.4, 0.2, // tie → lowest index
	)

	result := backend.Argmax(x, -1)
	if !result.Shape().Equal(tensor.Shape{1, 2, 2}) {
		t.Fatalf("Expected shape [1 2 2], got %v", result.Shape())
	}
	if result.DType() != tensor.Int32 {
		t.Fatalf("Expected int32, got %s", result.DType())
	}
	expected := []int32{1, 0, 2, 0}
	for i, v := range result.AsInt32() {
		if v != expected[i] {
			t.Errorf("argmax[%d] = %d, expected %d", i, v, expected[i])
		}
	}
}

func TestArgmax_MiddleDim(t *testing.T) {
	backend := newTestBackend()

	// [[1, 5], [3, 2], [0, 9]] along dim 0 → [1, 2]
	x := rawUint8(t, tensor.Shape{3, 2}, 1, 5, 3, 2, 0, 9)
	result := backend.Argmax(x, 0).AsInt32()
	if result[0] != 1 || result[1] != 2 {
		t.Errorf("Expected [1 2], got %v", result)
	}
}

func TestSumDim_Float32(t *testing.T) {
	backend := newTestBackend()
	x := rawFloat32(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	result := backend.SumDim(x, -1, true)
	if !result.Shape().Equal(tensor.Shape{2, 1}) {
		t.Errorf("Expected shape [2 1], got %v", result.Shape())
	}
	data := result.AsFloat32()
	if data[0] != 6 || data[1] != 15 {
		t.Errorf("Expected [6 15], got %v", data)
	}

	result = backend.SumDim(x, 0, false)
	if !result.Shape().Equal(tensor.Shape{3}) {
		t.Errorf("Expected shape [3], got %v", result.Shape())
	}
}

func TestSumDim_Uint8Widens(t *testing.T) {
	backend := newTestBackend()
	x := rawUint8(t, tensor.Shape{1, 3}, 200, 200, 200)

	result := backend.SumDim(x, 1, false)
	if result.DType() != tensor.Int32 {
		t.Fatalf("Expected int32, got %s", result.DType())
	}
	if got := result.AsInt32()[0]; got != 600 {
		t.Errorf("Expected 600, got %d", got)
	}
}

func TestCountNonZero(t *testing.T) {
	backend := newTestBackend()

	if n := backend.CountNonZero(rawUint8(t, tensor.Shape{5}, 0, 255, 0, 1, 0)); n != 2 {
		t.Errorf("uint8: expected 2, got %d", n)
	}
	if n := backend.CountNonZero(rawFloat32(t, tensor.Shape{3}, 0, 0.5, -1)); n != 2 {
		t.Errorf("float32: expected 2, got %d", n)
	}
	cond := backend.EqualScalar(rawUint8(t, tensor.Shape{3}, 0, 0, 1), 0)
	if n := backend.CountNonZero(cond); n != 2 {
		t.Errorf("bool: expected 2, got %d", n)
	}
}
