package errors

import (
	"math"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"typical", 800, 600, false},
		{"zero means default", 0, 0, false},
		{"fractional", 99.5, 0.25, false},

		{"negative width", -1, 600, true},
		{"negative height", 800, -10, true},
		{"nan", math.NaN(), 600, true},
		{"infinite", 800, math.Inf(1), true},
		{"too large", MaxDimension + 1, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateDimensions returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateThickness(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"default", 0, false},
		{"original", 7, false},
		{"negative", -2, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThickness(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThickness(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "layout.toml", false},
		{"valid nested", "testdata/grids/two-by-two.json", false},
		{"valid absolute", "/tmp/grid.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"toml", "grid.toml", ""},
		{"upper case", "GRID.JSON", ""},
		{"yaml", "grid.yaml", ErrCodeInvalidFormat},
		{"no extension", "grid", ErrCodeInvalidFormat},
		{"empty", "", ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtension(tt.input, ".toml", ".json")
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateExtension(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}
