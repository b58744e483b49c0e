package tensor

// mockBackend implements only what the tensor package itself calls.
// Any other Backend method panics on the nil embedded interface.
type mockBackend struct {
	Backend

	catCalls int
}

func newMockBackend() *mockBackend {
	return &mockBackend{}
}

func (m *mockBackend) Name() string   { return "mock" }
func (m *mockBackend) Device() Device { return CPU }

func (m *mockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	out, err := t.WithShape(newShape)
	if err != nil {
		panic(err)
	}
	return out
}

// Cat supports dim 0 only, enough to observe delegation.
func (m *mockBackend) Cat(tensors []*RawTensor, dim int) *RawTensor {
	m.catCalls++
	if dim != 0 {
		panic("mock cat: only dim 0")
	}
	shape := tensors[0].Shape().Clone()
	shape[0] = 0
	var data []byte
	for _, t := range tensors {
		shape[0] += t.Shape()[0]
		data = append(data, t.Data()...)
	}
	out, err := NewRawFromBytes(data, shape, tensors[0].DType(), CPU)
	if err != nil {
		panic(err)
	}
	return out
}

func mustFromSlice[T DType](t interface{ Fatalf(string, ...any) }, data []T, shape Shape, b *mockBackend) *Tensor[T, *mockBackend] {
	out, err := FromSlice(data, shape, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return out
}
