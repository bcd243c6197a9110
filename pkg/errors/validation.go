package errors

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// MaxDimension bounds grid width and height in pixels.
const MaxDimension = 1 << 20

// ValidateDimensions checks that a grid size is usable.
// Zero is accepted on either axis and means "use the default".
//
// Validation rules:
//   - No NaN or infinite values
//   - No negative values
//   - At most MaxDimension pixels per axis
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", d.name)
		}
		if d.value < 0 {
			return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", d.name, d.value)
		}
		if d.value > MaxDimension {
			return New(ErrCodeInvalidInput, "%s too large (max %d pixels)", d.name, MaxDimension)
		}
	}
	return nil
}

// ValidateThickness checks a divider thickness. Zero means "use the default".
func ValidateThickness(thickness float64) error {
	if math.IsNaN(thickness) || math.IsInf(thickness, 0) {
		return New(ErrCodeInvalidInput, "thickness must be a finite number")
	}
	if thickness < 0 {
		return New(ErrCodeInvalidInput, "thickness cannot be negative (got %g)", thickness)
	}
	return nil
}

// ValidatePath validates a local file path given on the command line or
// in a request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateExtension checks that path ends in one of the allowed extensions.
// Extensions are compared case-insensitively and include the leading dot.
func ValidateExtension(path string, allowed ...string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(allowed, ext) {
		return New(ErrCodeInvalidFormat, "unsupported file extension %q (must be one of: %s)", ext, strings.Join(allowed, ", "))
	}
	return nil
}
