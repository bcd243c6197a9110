package grid

import (
	"fmt"

	"github.com/matzehuels/splitgrid/pkg/errors"
)

// Reason classifies a ValidationError.
type Reason string

// Validation failure reasons.
const (
	ReasonEmpty          Reason = "empty"
	ReasonRagged         Reason = "ragged"
	ReasonNegativeLabel  Reason = "negative_label"
	ReasonNonRectangular Reason = "non_rectangular"
	ReasonDuplicateLabel Reason = "duplicate_label"
	ReasonUncovered      Reason = "uncovered"
)

// ValidationError reports a malformed label matrix. Row and Col locate the
// offending cell (the start of the offending component for rectangle and
// duplicate checks); they are -1 when the failure has no location.
type ValidationError struct {
	Reason Reason
	Label  int
	Row    int
	Col    int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "grid: matrix must have at least one row and one column"
	case ReasonRagged:
		return fmt.Sprintf("grid: row %d has a different length than row 0", e.Row)
	case ReasonNegativeLabel:
		return fmt.Sprintf("grid: negative label %d at (%d,%d)", e.Label, e.Row, e.Col)
	case ReasonNonRectangular:
		return fmt.Sprintf("grid: label %d starting at (%d,%d) is not a rectangle", e.Label, e.Row, e.Col)
	case ReasonDuplicateLabel:
		return fmt.Sprintf("grid: label %d at (%d,%d) appears in more than one component", e.Label, e.Row, e.Col)
	case ReasonUncovered:
		return fmt.Sprintf("grid: cell (%d,%d) is not covered by any component", e.Row, e.Col)
	}
	return fmt.Sprintf("grid: invalid matrix (%s)", e.Reason)
}

// Code returns the error code for this error type.
func (e *ValidationError) Code() errors.Code { return errors.ErrCodeInvalidMatrix }

// ConfigurationError reports a broken topology invariant, such as a divider
// without a recognised orientation. It never occurs for validated input.
type ConfigurationError struct {
	Reason string
	Row    int
	Col    int
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Row < 0 {
		return "grid: configuration error: " + e.Reason
	}
	return fmt.Sprintf("grid: configuration error at (%d,%d): %s", e.Row, e.Col, e.Reason)
}

// Code returns the error code for this error type.
func (e *ConfigurationError) Code() errors.Code { return errors.ErrCodeConfiguration }
