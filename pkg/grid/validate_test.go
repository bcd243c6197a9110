package grid

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/splitgrid/pkg/errors"
)

func TestValidate_Valid(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]int
	}{
		{"single cell", [][]int{{0}}},
		{"one region", [][]int{{4, 4}, {4, 4}}},
		{"two columns", [][]int{{0, 1}, {0, 1}}},
		{"tee", [][]int{{0, 0}, {1, 2}}},
		{"cross", [][]int{{0, 1}, {2, 3}}},
		{"footer", [][]int{{0, 1, 2}, {0, 1, 2}, {3, 3, 3}}},
		{"sparse labels", [][]int{{5, 9}, {7, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.matrix); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		matrix   [][]int
		reason   Reason
		label    int
		row, col int
	}{
		{"nil", nil, ReasonEmpty, 0, -1, -1},
		{"empty row", [][]int{{}}, ReasonEmpty, 0, -1, -1},
		{"ragged", [][]int{{0, 1}, {0}}, ReasonRagged, 0, 1, -1},
		{"negative", [][]int{{0, -1}}, ReasonNegativeLabel, -1, 0, 1},
		{"negative before shape", [][]int{{0, 1}, {1, -2}}, ReasonNegativeLabel, -2, 1, 1},
		{"l shape", [][]int{{0, 0}, {0, 1}}, ReasonNonRectangular, 0, 0, 0},
		{"diagonal", [][]int{{0, 1}, {1, 0}}, ReasonDuplicateLabel, 1, 1, 0},
		{"split row", [][]int{{0, 1, 0}}, ReasonDuplicateLabel, 0, 0, 2},
		{"ring", [][]int{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}}, ReasonNonRectangular, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.matrix)
			var ve *ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", ve.Reason, tt.reason)
			}
			if ve.Label != tt.label || ve.Row != tt.row || ve.Col != tt.col {
				t.Errorf("location = label %d at (%d,%d), want label %d at (%d,%d)",
					ve.Label, ve.Row, ve.Col, tt.label, tt.row, tt.col)
			}
			if got := errors.GetCode(err); got != errors.ErrCodeInvalidMatrix {
				t.Errorf("GetCode() = %s, want %s", got, errors.ErrCodeInvalidMatrix)
			}
			if ve.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}
