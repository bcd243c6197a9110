// Package pipeline provides the scenario pipeline for splitgrid.
//
// This package implements the complete build → drag → render pipeline used
// by the CLI and the API server. By centralizing this logic, both entry
// points produce byte-identical artifacts for identical input.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: validate the label matrix and lay the grid out
//  2. Drag: replay the scenario's drag events in order
//  3. Render: produce artifacts (JSON, TOML, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.OptionsFromScenario(sc)
//	opts.Formats = []string{"json", "svg"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Build(ctx, opts)
//	err = runner.Replay(ctx, g, opts.Drags)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default surface width in pixels.
	DefaultWidth = grid.DefaultWidth

	// DefaultHeight is the default surface height in pixels.
	DefaultHeight = grid.DefaultHeight

	// DefaultThickness is the default divider thickness in pixels.
	DefaultThickness = grid.DefaultThickness
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is produced when no format is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatTOML: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the scenario pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Matrix    [][]int `json:"matrix"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`

	// Drag options
	Drags []grid.DragEvent `json:"drags,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Add bounding boxes to topology graph labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// OptionsFromScenario copies a scenario into pipeline options.
func OptionsFromScenario(sc *sgio.Scenario) Options {
	return Options{
		Matrix:    sc.Matrix,
		Width:     sc.Width,
		Height:    sc.Height,
		Thickness: sc.Thickness,
		Drags:     append([]grid.DragEvent(nil), sc.Drags...),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the built grid after all drags.
	Grid *grid.Grid

	// Layout is the exported geometry of Grid.
	Layout sgio.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Regions    int
	Dividers   int
	Drags      int
	CacheHits  int
	BuildTime  time.Duration
	DragTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, toml, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the matrix and sizes and applies build defaults.
// The matrix is checked for presence only; its shape is validated when the
// grid is built.
func (o *Options) ValidateForBuild() error {
	if len(o.Matrix) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "matrix is required")
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateThickness(o.Thickness); err != nil {
		return err
	}
	o.SetBuildDefaults()
	return nil
}

// SetBuildDefaults sets default values for grid construction.
func (o *Options) SetBuildDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Thickness == 0 {
		o.Thickness = DefaultThickness
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// GridOptions returns the grid options for building.
func (o *Options) GridOptions() []grid.Option {
	return []grid.Option{
		grid.WithSize(o.Width, o.Height),
		grid.WithThickness(o.Thickness),
		grid.WithLogger(o.Logger),
	}
}

// String summarizes the options for log output.
func (o *Options) String() string {
	rows, cols := len(o.Matrix), 0
	if rows > 0 {
		cols = len(o.Matrix[0])
	}
	return fmt.Sprintf("%dx%d matrix, %gx%g px, %d drags", rows, cols, o.Width, o.Height, len(o.Drags))
}
