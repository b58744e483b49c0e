package codec

import (
	"fmt"
	"strings"
)

// Layout selects how the spatial axes of a one-hot tensor are arranged.
type Layout int

const (
	// Spatial keeps height and width separate: (N, H, W, C).
	Spatial Layout = iota
	// Flattened merges them into one pixel axis: (N, H×W, C).
	Flattened
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case Spatial:
		return "spatial"
	case Flattened:
		return "flattened"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout converts a layout name ("spatial", "flattened") to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spatial", "4d":
		return Spatial, nil
	case "flattened", "flat", "3d":
		return Flattened, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (want spatial or flattened)", s)
	}
}

// ValidationMode controls how Encode treats mask values that are neither
// the background nor the foreground intensity.
type ValidationMode int

const (
	// Permissive treats every non-background value as foreground.
	Permissive ValidationMode = iota
	// Strict rejects any third intensity with a ValidationError.
	Strict
)

// String returns the mode name.
func (m ValidationMode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("ValidationMode(%d)", int(m))
	}
}

// ParseValidationMode converts "permissive" or "strict" to a ValidationMode.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return 0, fmt.Errorf("unknown validation mode %q (want permissive or strict)", s)
	}
}
