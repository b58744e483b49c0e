package tensor

// Backend defines the whole-tensor operations the codec, grid composer and
// preprocessing stages are built from.
//
// Contract shared by every operation:
//   - The result is a freshly allocated RawTensor.
//   - Inputs are never modified.
//   - Invalid arguments (dimension out of range, dtype mismatch) panic;
//     callers validate shapes before calling.
//
// Implementations:
//   - CPU: Pure Go, parallel over large tensors (internal/backend/cpu)
type Backend interface {
	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor       // same data, new shape
	Cat(tensors []*RawTensor, dim int) *RawTensor           // concatenate along dimension
	Narrow(x *RawTensor, dim, start, length int) *RawTensor // slice [start, start+length) along dimension

	// Comparison with a scalar (element-wise, return bool tensor)
	GreaterScalar(x *RawTensor, scalar float64) *RawTensor // x > scalar
	EqualScalar(x *RawTensor, scalar float64) *RawTensor   // x == scalar

	// Boolean operations (element-wise on bool tensors)
	Or(a, b *RawTensor) *RawTensor // logical OR, shapes must match
	Not(x *RawTensor) *RawTensor   // logical NOT

	// Selection
	WhereScalar(cond *RawTensor, onTrue, onFalse float64, dtype DataType) *RawTensor // cond ? onTrue : onFalse
	OneHot(indices *RawTensor, numClasses int, dtype DataType) *RawTensor           // append class axis

	// Reduction operations
	Argmax(x *RawTensor, dim int) *RawTensor               // index of maximum value along dimension (int32)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension
	CountNonZero(x *RawTensor) int                         // number of non-zero (or true) elements

	// Type conversion
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
