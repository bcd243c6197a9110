package grid

import (
	"io"

	"github.com/charmbracelet/log"
)

// Defaults applied when an option is omitted or zero.
const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultThickness = 7.0
)

// Option configures a Grid.
type Option func(*config)

type config struct {
	width, height float64
	thickness     float64
	logger        *log.Logger
}

// WithSize sets the surface size the grid is laid out on. Zero values fall
// back to DefaultWidth and DefaultHeight.
func WithSize(width, height float64) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// WithThickness sets the divider thickness in pixels. Zero falls back to
// DefaultThickness.
func WithThickness(t float64) Option { return func(c *config) { c.thickness = t } }

// WithLogger sets the logger for construction and drag events.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.width == 0 {
		c.width = DefaultWidth
	}
	if c.height == 0 {
		c.height = DefaultHeight
	}
	if c.thickness == 0 {
		c.thickness = DefaultThickness
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}
