package cpu

import (
	"testing"

	"github.com/born-ml/segkit/internal/tensor"
)

func TestGreaterScalar(t *testing.T) {
	backend := newTestBackend()

	t.Run("Uint8", func(t *testing.T) {
		x := rawUint8(t, tensor.Shape{5}, 0, 19, 20, 21, 255)
		expected := []bool{false, false, false, true, true}
		for i, v := range backend.GreaterScalar(x, 20).AsBool() {
			if v != expected[i] {
				t.Errorf("[%d] = %v, expected %v", i, v, expected[i])
			}
		}
	})

	t.Run("Float32Boundary", func(t *testing.T) {
		x := rawFloat32(t, tensor.Shape{3}, 0.49, 0.5, 0.51)
		expected := []bool{false, false, true}
		for i, v := range backend.GreaterScalar(x, float64(float32(0.5))).AsBool() {
			if v != expected[i] {
				t.Errorf("[%d] = %v, expected %v", i, v, expected[i])
			}
		}
	})

	t.Run("UnsupportedDType", func(t *testing.T) {
		x, _ := tensor.NewRaw(tensor.Shape{1}, tensor.Bool, tensor.CPU)
		expectPanic(t, "bool input", func() { backend.GreaterScalar(x, 0) })
	})
}

func TestEqualScalar(t *testing.T) {
	backend := newTestBackend()
	x := rawUint8(t, tensor.Shape{4}, 0, 255, 0, 7)

	expected := []bool{true, false, true, false}
	for i, v := range backend.EqualScalar(x, 0).AsBool() {
		if v != expected[i] {
			t.Errorf("[%d] = %v, expected %v", i, v, expected[i])
		}
	}
}

func TestOrNot(t *testing.T) {
	backend := newTestBackend()
	a := backend.EqualScalar(rawUint8(t, tensor.Shape{4}, 1, 1, 0, 0), 1)
	b := backend.EqualScalar(rawUint8(t, tensor.Shape{4}, 1, 0, 1, 0), 1)

	or := backend.Or(a, b).AsBool()
	not := backend.Not(a).AsBool()

	expectedOr := []bool{true, true, true, false}
	expectedNot := []bool{false, false, true, true}
	for i := range expectedOr {
		if or[i] != expectedOr[i] {
			t.Errorf("or[%d] = %v, expected %v", i, or[i], expectedOr[i])
		}
		if not[i] != expectedNot[i] {
			t.Errorf("not[%d] = %v, expected %v", i, not[i], expectedNot[i])
		}
	}

	c := backend.EqualScalar(rawUint8(t, tensor.Shape{2}, 1, 0), 1)
	expectPanic(t, "or shape mismatch", func() { backend.Or(a, c) })
}
