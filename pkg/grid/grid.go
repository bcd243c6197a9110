package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/observability"
)

// Presenter receives the geometry of one region or divider. Presenters are
// rendering collaborators: they are told where to draw and never write back.
type Presenter interface {
	SetGeometry(pos Point, size Size)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(pos Point, size Size)

// SetGeometry calls f(pos, size).
func (f PresenterFunc) SetGeometry(pos Point, size Size) { f(pos, size) }

// =============================================================================
// Regions and Dividers
// =============================================================================

// Region is a read-only handle on one rectangular region. Its geometry is
// refreshed by the owning Grid after every drag.
type Region struct {
	label      int
	box        Box
	pos        Point
	size       Size
	presenters []Presenter
}

// Label returns the region label.
func (r *Region) Label() int { return r.label }

// Box returns the bounding box in expanded coordinates.
func (r *Region) Box() Box { return r.box }

// Position returns the top-left corner in pixels.
func (r *Region) Position() Point { return r.pos }

// Size returns the region extent in pixels.
func (r *Region) Size() Size { return r.size }

// ElementID returns the stable element identifier "grid_cell_<label>".
func (r *Region) ElementID() string { return fmt.Sprintf("grid_cell_%d", r.label) }

// Divider is a read-only handle on one divider.
type Divider struct {
	info       DividerInfo
	thickness  float64
	length     float64
	pos        Point
	size       Size
	rng        Range
	presenters []Presenter
}

// ID returns the negative divider ID.
func (d *Divider) ID() int { return d.info.ID }

// Orientation returns the divider orientation.
func (d *Divider) Orientation() Orientation { return d.info.Orientation }

// Box returns the bounding box in expanded coordinates.
func (d *Divider) Box() Box { return d.info.Box }

// Thickness returns the fixed divider thickness in pixels.
func (d *Divider) Thickness() float64 { return d.thickness }

// Length returns the extent of the divider along its run.
func (d *Divider) Length() float64 { return d.length }

// Position returns the top-left corner in pixels.
func (d *Divider) Position() Point { return d.pos }

// Size returns the divider extent in pixels.
func (d *Divider) Size() Size { return d.size }

// Before returns the labels of the regions above or left of the divider.
func (d *Divider) Before() []int { return append([]int(nil), d.info.Regions.Before...) }

// After returns the labels of the regions below or right of the divider.
func (d *Divider) After() []int { return append([]int(nil), d.info.Regions.After...) }

// Followers returns the perpendicular dividers that move with this one.
func (d *Divider) Followers() Adjacency {
	return Adjacency{
		Before: append([]int(nil), d.info.Followers.Before...),
		After:  append([]int(nil), d.info.Followers.After...),
	}
}

// Range returns the informational drag range. It defaults to (-Inf, +Inf)
// and is never enforced.
func (d *Divider) Range() Range { return d.rng }

// SetRange records an informational drag range.
func (d *Divider) SetRange(r Range) { d.rng = r }

// AxisDelta projects a raw pointer displacement onto the divider's axis:
// the Y component for horizontal dividers, the X component for vertical ones.
func (d *Divider) AxisDelta(p Point) float64 {
	if d.info.Orientation == Horizontal {
		return p.Y
	}
	return p.X
}

// ElementID returns the stable element identifier "splitter_<id>".
func (d *Divider) ElementID() string { return fmt.Sprintf("splitter_%d", d.info.ID) }

// =============================================================================
// Grid
// =============================================================================

// Grid owns the topology, the size matrix and every region and divider
// handle of one arrangement.
type Grid struct {
	topo      *Topology
	width     float64
	height    float64
	thickness float64

	sizes     Sizes
	positions Positions

	regions  []*Region
	byLabel  map[int]*Region
	dividers []*Divider
	byID     map[int]*Divider
	maxLabel int
	active   *DragSession
	logger   *log.Logger
}

// New validates matrix, expands it and lays it out. No grid is returned on
// error: a malformed matrix yields a *ValidationError, invalid dimensions an
// INVALID_INPUT error.
func New(matrix [][]int, opts ...Option) (*Grid, error) {
	start := time.Now()
	g, err := build(matrix, newConfig(opts))
	if err != nil {
		observability.Grid().OnBuild(0, 0, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Grid().OnBuild(g.topo.Rows(), g.topo.Cols(), len(g.regions), len(g.dividers), time.Since(start), nil)
	g.logger.Debug("grid built",
		"rows", g.topo.Rows(), "cols", g.topo.Cols(),
		"regions", len(g.regions), "dividers", len(g.dividers))
	return g, nil
}

func build(matrix [][]int, cfg config) (*Grid, error) {
	if err := errors.ValidateDimensions(cfg.width, cfg.height); err != nil {
		return nil, err
	}
	if err := errors.ValidateThickness(cfg.thickness); err != nil {
		return nil, err
	}
	topo, err := Expand(matrix)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		topo:      topo,
		width:     cfg.width,
		height:    cfg.height,
		thickness: cfg.thickness,
		byLabel:   make(map[int]*Region),
		byID:      make(map[int]*Divider),
		maxLabel:  -1,
		logger:    cfg.logger,
	}
	for _, label := range topo.RegionLabels() {
		box, _ := topo.RegionBox(label)
		r := &Region{label: label, box: box}
		g.regions = append(g.regions, r)
		g.byLabel[label] = r
		g.maxLabel = max(g.maxLabel, label)
	}
	for _, info := range topo.Dividers() {
		d := &Divider{info: info, thickness: cfg.thickness, rng: unbounded}
		g.dividers = append(g.dividers, d)
		g.byID[info.ID] = d
	}

	g.sizes = InitialSizes(topo, cfg.width, cfg.height, cfg.thickness)
	g.recompute()
	return g, nil
}

// recompute derives positions and all handle geometry from the size matrix
// and notifies presenters.
func (g *Grid) recompute() {
	g.positions = ComputePositions(g.sizes)
	for _, r := range g.regions {
		r.pos, r.size = BoxGeometry(r.box, g.positions)
		for _, p := range r.presenters {
			p.SetGeometry(r.pos, r.size)
		}
	}
	for _, d := range g.dividers {
		d.pos, d.size = BoxGeometry(d.info.Box, g.positions)
		d.length = d.size.H
		if d.info.Orientation == Horizontal {
			d.length = d.size.W
		}
		for _, p := range d.presenters {
			p.SetGeometry(d.pos, d.size)
		}
	}
}

// Drag applies one drag event and recomputes all geometry. Unknown dividers
// fail with NOT_FOUND and non-finite deltas with INVALID_INPUT; both leave the
// grid unchanged. A zero delta is a no-op.
func (g *Grid) Drag(ev DragEvent) error {
	start := time.Now()
	err := g.drag(ev)
	affected := 0
	if d, ok := g.byID[ev.Divider]; ok {
		affected = d.info.Regions.Len() + d.info.Followers.Len()
	}
	observability.Grid().OnDrag(ev.Divider, ev.Delta, affected, time.Since(start), err)
	if err != nil {
		return err
	}
	g.logger.Debug("divider dragged", "divider", ev.Divider, "delta", ev.Delta, "affected", affected)
	return nil
}

func (g *Grid) drag(ev DragEvent) error {
	if math.IsNaN(ev.Delta) || math.IsInf(ev.Delta, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "drag delta must be finite, got %v", ev.Delta)
	}
	if _, ok := g.byID[ev.Divider]; !ok {
		return errors.New(errors.ErrCodeNotFound, "divider %d not found", ev.Divider)
	}
	if ev.Delta == 0 {
		return nil
	}
	sizes, err := Resize(g.topo, g.sizes, g.positions, g.thickness, ev)
	if err != nil {
		return err
	}
	g.sizes = sizes
	g.recompute()
	return nil
}

// Apply applies events in order and stops at the first error.
func (g *Grid) Apply(events ...DragEvent) error {
	for i, ev := range events {
		if err := g.Drag(ev); err != nil {
			return fmt.Errorf("drag %d: %w", i, err)
		}
	}
	return nil
}

// Regions returns the region handles in ascending label order.
func (g *Grid) Regions() []*Region { return append([]*Region(nil), g.regions...) }

// Region returns the handle for label.
func (g *Grid) Region(label int) (*Region, bool) {
	r, ok := g.byLabel[label]
	return r, ok
}

// Dividers returns the divider handles ordered by descending ID.
func (g *Grid) Dividers() []*Divider { return append([]*Divider(nil), g.dividers...) }

// Divider returns the handle for a divider ID.
func (g *Grid) Divider(id int) (*Divider, bool) {
	d, ok := g.byID[id]
	return d, ok
}

// Attach registers a presenter for a region and hands it the current geometry.
func (g *Grid) Attach(label int, p Presenter) error {
	r, ok := g.byLabel[label]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "region %d not found", label)
	}
	r.presenters = append(r.presenters, p)
	p.SetGeometry(r.pos, r.size)
	return nil
}

// AttachDivider registers a presenter for a divider and hands it the current
// geometry.
func (g *Grid) AttachDivider(id int, p Presenter) error {
	d, ok := g.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "divider %d not found", id)
	}
	d.presenters = append(d.presenters, p)
	p.SetGeometry(d.pos, d.size)
	return nil
}

// Sizes returns a copy of the per-cell size matrix.
func (g *Grid) Sizes() Sizes { return g.sizes.Clone() }

// Positions returns a copy of the position matrix.
func (g *Grid) Positions() Positions { return g.positions.Clone() }

// Topology returns the immutable expanded topology.
func (g *Grid) Topology() *Topology { return g.topo }

// Width returns the configured surface width.
func (g *Grid) Width() float64 { return g.width }

// Height returns the configured surface height.
func (g *Grid) Height() float64 { return g.height }

// Thickness returns the divider thickness.
func (g *Grid) Thickness() float64 { return g.thickness }

// MaxLabel returns the largest region label.
func (g *Grid) MaxLabel() int { return g.maxLabel }
