package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
)

// Scenario is a grid declaration plus the drags to replay on it.
type Scenario struct {
	Width     float64          `json:"width,omitempty" toml:"width,omitempty"`
	Height    float64          `json:"height,omitempty" toml:"height,omitempty"`
	Thickness float64          `json:"thickness,omitempty" toml:"thickness,omitempty"`
	Matrix    [][]int          `json:"matrix" toml:"matrix"`
	Drags     []grid.DragEvent `json:"drags,omitempty" toml:"drag,omitempty"`
}

// Validate checks the scenario sizes and that a matrix is present. The
// matrix itself is validated when the grid is built.
func (s *Scenario) Validate() error {
	if len(s.Matrix) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scenario has no matrix")
	}
	if err := errors.ValidateDimensions(s.Width, s.Height); err != nil {
		return err
	}
	return errors.ValidateThickness(s.Thickness)
}

// Options returns the grid options described by the scenario.
func (s *Scenario) Options() []grid.Option {
	return []grid.Option{
		grid.WithSize(s.Width, s.Height),
		grid.WithThickness(s.Thickness),
	}
}

// ReadScenario decodes a scenario in format f from r and validates it.
// ReadScenario does not close r.
func ReadScenario(r io.Reader, f Format) (*Scenario, error) {
	var sc Scenario
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scenario")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&sc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scenario")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scenario keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scenario format %q", f)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ImportScenario reads the scenario file at path, choosing the format from
// its extension.
func ImportScenario(path string) (*Scenario, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sc, err := ReadScenario(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
