package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	row := tensor.Cat([]*Tensor[uint8, B]{tile0, tile1, tile2}, 1) // tiles side by side
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	if len(tensors) == 1 {
		// Single tensor - return clone
		return tensors[0].Clone()
	}

	rawTensors := make([]*RawTensor, len(tensors))
	backend := tensors[0].backend
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}

	result := backend.Cat(rawTensors, dim)
	return New[T, B](result, backend)
}

// Narrow returns the slice [start, start+length) of the tensor along dim.
//
// Example:
//
//	fg := pred.Narrow(-1, 1, 1) // (N, H, W, C) → (N, H, W, 1), channel 1 only
func (t *Tensor[T, B]) Narrow(dim, start, length int) *Tensor[T, B] {
	result := t.backend.Narrow(t.raw, dim, start, length)
	return New[T, B](result, t.backend)
}
