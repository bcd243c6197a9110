package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
)

// Layout is the exported geometry of a grid.
type Layout struct {
	Width     float64         `json:"width" toml:"width"`
	Height    float64         `json:"height" toml:"height"`
	Thickness float64         `json:"thickness" toml:"thickness"`
	Labels    [][]int         `json:"labels" toml:"labels"`
	Regions   []RegionLayout  `json:"regions" toml:"region"`
	Dividers  []DividerLayout `json:"dividers" toml:"divider"`
}

// RegionLayout is the geometry of one region.
type RegionLayout struct {
	Label     int     `json:"label" toml:"label"`
	ElementID string  `json:"element_id" toml:"element_id"`
	X         float64 `json:"x" toml:"x"`
	Y         float64 `json:"y" toml:"y"`
	Width     float64 `json:"width" toml:"width"`
	Height    float64 `json:"height" toml:"height"`
}

// DividerLayout is the geometry and adjacency of one divider.
type DividerLayout struct {
	ID          int     `json:"id" toml:"id"`
	ElementID   string  `json:"element_id" toml:"element_id"`
	Orientation string  `json:"orientation" toml:"orientation"`
	X           float64 `json:"x" toml:"x"`
	Y           float64 `json:"y" toml:"y"`
	Width       float64 `json:"width" toml:"width"`
	Height      float64 `json:"height" toml:"height"`
	Length      float64 `json:"length" toml:"length"`
	Thickness   float64 `json:"thickness" toml:"thickness"`
	Before      []int   `json:"before" toml:"before"`
	After       []int   `json:"after" toml:"after"`
}

// FromGrid snapshots the current geometry of g.
func FromGrid(g *grid.Grid) Layout {
	l := Layout{
		Width:     g.Width(),
		Height:    g.Height(),
		Thickness: g.Thickness(),
		Labels:    g.Topology().Labels(),
		Regions:   []RegionLayout{},
		Dividers:  []DividerLayout{},
	}
	for _, r := range g.Regions() {
		pos, size := r.Position(), r.Size()
		l.Regions = append(l.Regions, RegionLayout{
			Label:     r.Label(),
			ElementID: r.ElementID(),
			X:         pos.X,
			Y:         pos.Y,
			Width:     size.W,
			Height:    size.H,
		})
	}
	for _, d := range g.Dividers() {
		pos, size := d.Position(), d.Size()
		l.Dividers = append(l.Dividers, DividerLayout{
			ID:          d.ID(),
			ElementID:   d.ElementID(),
			Orientation: d.Orientation().String(),
			X:           pos.X,
			Y:           pos.Y,
			Width:       size.W,
			Height:      size.H,
			Length:      d.Length(),
			Thickness:   d.Thickness(),
			Before:      d.Before(),
			After:       d.After(),
		})
	}
	return l
}

// WriteLayout encodes l in format f and writes it to w. JSON output is
// indented with two spaces.
func WriteLayout(l Layout, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(l); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported layout format %q", f)
	}
	return nil
}

// ReadLayout decodes a layout in format f from r.
func ReadLayout(r io.Reader, f Format) (Layout, error) {
	var l Layout
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&l); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json layout")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&l); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml layout")
		}
	default:
		return Layout{}, errors.New(errors.ErrCodeUnsupported, "unsupported layout format %q", f)
	}
	return l, nil
}

// ExportLayout writes l to path, choosing the format from its extension.
func ExportLayout(l Layout, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
