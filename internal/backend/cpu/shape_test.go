package cpu

import (
	"testing"

	"github.com/born-ml/segkit/internal/tensor"
)

func TestReshape(t *testing.T) {
	backend := newTestBackend()
	x := rawUint8(t, tensor.Shape{1, 2, 2, 1}, 1, 2, 3, 4)

	result := backend.Reshape(x, tensor.Shape{1, 4})
	if !result.Shape().Equal(tensor.Shape{1, 4}) {
		t.Errorf("Expected shape [1 4], got %v", result.Shape())
	}
	result.AsUint8()[0] = 9
	if x.AsUint8()[0] != 1 {
		t.Error("Reshape result aliases its input")
	}

	expectPanic(t, "reshape 4 → 3", func() { backend.Reshape(x, tensor.Shape{3}) })
}

func TestNarrow_LastDim(t *testing.T) {
	backend := newTestBackend()

	// (2, 2, 2): channel pairs [0,1] [2,3] [4,5] [6,7]
	x := rawFloat32(t, tensor.Shape{2, 2, 2}, 0, 1, 2, 3, 4, 5, 6, 7)

	result := backend.Narrow(x, -1, 1, 1)
	if !result.Shape().Equal(tensor.Shape{2, 2, 1}) {
		t.Fatalf("Expected shape [2 2 1], got %v", result.Shape())
	}
	expected := []float32{1, 3, 5, 7}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("result[%d] = %v, expected %v", i, v, expected[i])
		}
	}
}

func TestNarrow_FirstDim(t *testing.T) {
	backend := newTestBackend()
	x := rawUint8(t, tensor.Shape{3, 2}, 1, 2, 3, 4, 5, 6)

	result := backend.Narrow(x, 0, 1, 2)
	expected := []uint8{3, 4, 5, 6}
	got := result.AsUint8()
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("result[%d] = %d, expected %d", i, got[i], expected[i])
		}
	}
}

func TestNarrow_OutOfRange(t *testing.T) {
	backend := newTestBackend()
	x := rawUint8(t, tensor.Shape{2, 2}, 1, 2, 3, 4)

	expectPanic(t, "start+length past end", func() { backend.Narrow(x, 1, 1, 2) })
	expectPanic(t, "bad dim", func() { backend.Narrow(x, 2, 0, 1) })
	expectPanic(t, "zero length", func() { backend.Narrow(x, 0, 0, 0) })
}
