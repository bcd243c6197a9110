package grid

import (
	"github.com/matzehuels/splitgrid/pkg/errors"
)

// DragEvent moves one divider by Delta pixels along its resize axis.
// A positive Delta moves the divider toward the origin: regions before it
// shrink, regions after it grow.
type DragEvent struct {
	Divider int     `json:"divider" toml:"divider"`
	Delta   float64 `json:"delta" toml:"delta"`
}

// side is one component touched by a drag.
type side struct {
	box  Box
	sign float64
}

// Resize applies ev to s and returns the new size matrix; s is not modified.
// p must be the positions computed from s.
//
// Every region and follower divider on the before side loses Delta on the
// divider's axis and every one on the after side gains Delta. The new extent
// of a component is spread evenly over its non-divider lines while its
// divider lines keep thickness. Components without non-divider lines on the
// axis are left unchanged. Sizes are not clamped.
func Resize(t *Topology, s Sizes, p Positions, thickness float64, ev DragEvent) (Sizes, error) {
	d, ok := t.Divider(ev.Divider)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "divider %d not found", ev.Divider)
	}

	out := s.Clone()
	for _, part := range affected(t, d) {
		_, size := BoxGeometry(part.box, p)
		current := size.W
		if d.Orientation == Horizontal {
			current = size.H
		}
		if err := spread(t, out, part.box, d.Orientation, current+part.sign*ev.Delta, thickness); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// affected lists the components a drag of d resizes, each once.
func affected(t *Topology, d DividerInfo) []side {
	seen := make(map[Cell]struct{})
	var parts []side
	add := func(c Cell, box Box, ok bool, sign float64) {
		if _, dup := seen[c]; dup || !ok {
			return
		}
		seen[c] = struct{}{}
		parts = append(parts, side{box: box, sign: sign})
	}
	for i, labels := range [2][]int{d.Regions.Before, d.Regions.After} {
		sign := float64(2*i - 1)
		for _, label := range labels {
			box, ok := t.RegionBox(label)
			add(Cell{Kind: KindRegion, ID: label}, box, ok, sign)
		}
	}
	for i, ids := range [2][]int{d.Followers.Before, d.Followers.After} {
		sign := float64(2*i - 1)
		for _, id := range ids {
			f, ok := t.Divider(id)
			add(Cell{Kind: dividerKind(f.Orientation), ID: id}, f.Box, ok, sign)
		}
	}
	return parts
}

func dividerKind(o Orientation) Kind {
	if o == Horizontal {
		return KindHorizontal
	}
	return KindVertical
}

// spread writes newSize over the non-divider lines of box along the axis
// resized by o.
func spread(t *Topology, s Sizes, box Box, o Orientation, newSize, thickness float64) error {
	dividers, total, err := t.dividerLines(box, o)
	if err != nil {
		return err
	}
	free := total - dividers
	if free <= 0 {
		return nil
	}
	per := (newSize - float64(dividers)*thickness) / float64(free)
	for r := box.MinRow; r <= box.MaxRow; r++ {
		for c := box.MinCol; c <= box.MaxCol; c++ {
			switch o {
			case Vertical:
				if !t.dividerCol[c] {
					s[r][c].W = per
				}
			case Horizontal:
				if !t.dividerRow[r] {
					s[r][c].H = per
				}
			}
		}
	}
	return nil
}
