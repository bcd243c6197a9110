package io

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
)

const tomlScenario = `
width = 100
height = 100
thickness = 10
matrix = [
  [0, 1],
  [0, 1],
]

[[drag]]
divider = -3
delta = 10

[[drag]]
divider = -3
delta = -2.5
`

const jsonScenario = `{
  "width": 100,
  "height": 100,
  "thickness": 10,
  "matrix": [[0, 1], [0, 1]],
  "drags": [{"divider": -3, "delta": 10}, {"divider": -3, "delta": -2.5}]
}`

func TestReadScenario(t *testing.T) {
	want := &Scenario{
		Width:     100,
		Height:    100,
		Thickness: 10,
		Matrix:    [][]int{{0, 1}, {0, 1}},
		Drags:     []grid.DragEvent{{Divider: -3, Delta: 10}, {Divider: -3, Delta: -2.5}},
	}
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"toml", tomlScenario, FormatTOML},
		{"json", jsonScenario, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadScenario(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadScenario() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ReadScenario() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReadScenario_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   errors.Code
	}{
		{"malformed json", `{"matrix": [[0]`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown json key", `{"matrix": [[0]], "colour": "red"}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown toml key", "matrix = [[0]]\ncolour = \"red\"\n", FormatTOML, errors.ErrCodeInvalidFormat},
		{"malformed toml", "matrix = [[0]", FormatTOML, errors.ErrCodeInvalidFormat},
		{"missing matrix", `{"width": 10}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"negative width", `{"width": -10, "matrix": [[0]]}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"negative thickness", "thickness = -1\nmatrix = [[0]]\n", FormatTOML, errors.ErrCodeInvalidInput},
		{"unknown format", `{}`, Format("yaml"), errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScenario(strings.NewReader(tt.input), tt.format)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ReadScenario() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestImportScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.toml")
	if err := os.WriteFile(path, []byte(tomlScenario), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := ImportScenario(path)
	if err != nil {
		t.Fatalf("ImportScenario() error: %v", err)
	}
	if len(sc.Drags) != 2 || sc.Width != 100 {
		t.Errorf("ImportScenario() = %+v", sc)
	}

	g, err := grid.New(sc.Matrix, sc.Options()...)
	if err != nil {
		t.Fatalf("grid.New() error: %v", err)
	}
	if g.Thickness() != 10 {
		t.Errorf("Thickness() = %v, want 10", g.Thickness())
	}
}

func TestImportScenario_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"empty path", "", errors.ErrCodeInvalidPath},
		{"bad extension", filepath.Join(dir, "grid.yaml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportScenario(tt.path)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ImportScenario() code = %q, want %q", got, tt.code)
			}
		})
	}

	if _, err := ImportScenario(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ImportScenario() on a missing file should fail")
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "JSON", ".toml", "toml"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}
	if _, err := ParseFormat("svg"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParseFormat(svg) error = %v, want UNSUPPORTED", err)
	}
	if f, err := FormatFromPath("a/b/Grid.TOML"); err != nil || f != FormatTOML {
		t.Errorf("FormatFromPath() = %q, %v", f, err)
	}
}
