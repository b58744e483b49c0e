package codec

import (
	"errors"
	"fmt"

	"github.com/born-ml/segkit/internal/tensor"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidSettings = errors.New("invalid codec settings")
)

// ShapeMismatchError reports a tensor whose shape does not fit the layout
// an operation expects.
type ShapeMismatchError struct {
	Op   string       // Operation that rejected the tensor (e.g. "encode")
	Want string       // Human-readable expected shape (e.g. "(N, H, W, 1)")
	Got  tensor.Shape // Actual shape, nil when no tensor was given
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: expected %s, got no tensor", e.Op, e.Want)
	}
	return fmt.Sprintf("%s: expected %s, got %v", e.Op, e.Want, e.Got)
}

// Unwrap makes errors.Is(err, ErrShapeMismatch) hold.
func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

// ValidationError reports the first element that violates a value
// constraint (a third mask intensity, an out-of-range label, a one-hot
// pixel whose classes do not sum to 1).
type ValidationError struct {
	Op     string // Operation that rejected the tensor
	Index  int    // Flat element (or pixel) index of the first violation
	Value  int    // Offending value
	Reason string // What was expected instead
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: element %d has value %d: %s", e.Op, e.Index, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func errNilTensor(op, want string) error {
	return &ShapeMismatchError{Op: op, Want: want}
}
