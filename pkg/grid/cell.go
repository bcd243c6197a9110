package grid

import (
	"fmt"
	"math"
)

// Divider ID sequences. Each orientation counts down in steps of two from
// its own start so IDs of the two orientations never collide.
const (
	firstHorizontalID = -2
	firstVerticalID   = -3
	dividerIDStep     = -2
)

// Kind tags an expanded cell.
type Kind uint8

const (
	// KindRegion marks a cell owned by a region.
	KindRegion Kind = iota
	// KindHorizontal marks a cell of a horizontal divider.
	KindHorizontal
	// KindVertical marks a cell of a vertical divider.
	KindVertical
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindHorizontal:
		return "horizontal"
	case KindVertical:
		return "vertical"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Orientation returns the divider orientation of k.
// Region cells have no orientation and yield a *ConfigurationError.
func (k Kind) Orientation() (Orientation, error) {
	switch k {
	case KindHorizontal:
		return Horizontal, nil
	case KindVertical:
		return Vertical, nil
	}
	return 0, &ConfigurationError{Reason: fmt.Sprintf("%s cell has no divider orientation", k), Row: -1, Col: -1}
}

// Cell is one entry of the expanded matrix. ID is the region label for
// KindRegion and the negative divider ID otherwise.
type Cell struct {
	Kind Kind
	ID   int
}

// IsDivider reports whether the cell belongs to a divider.
func (c Cell) IsDivider() bool { return c.Kind != KindRegion }

// Orientation says which way a divider runs. A Horizontal divider separates
// regions above from regions below and resizes heights; a Vertical divider
// separates left from right and resizes widths.
type Orientation uint8

const (
	Horizontal Orientation = iota + 1
	Vertical
)

// String returns "horizontal", "vertical" or a placeholder for unknown values.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("orientation(%d)", uint8(o))
}

// Point is a pixel coordinate relative to the grid's top-left corner.
type Point struct {
	X, Y float64
}

// Size is a pixel extent.
type Size struct {
	W, H float64
}

// Box is an inclusive bounding box in expanded-matrix coordinates.
type Box struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Rows returns the number of rows covered by b.
func (b Box) Rows() int { return b.MaxRow - b.MinRow + 1 }

// Cols returns the number of columns covered by b.
func (b Box) Cols() int { return b.MaxCol - b.MinCol + 1 }

// Area returns the number of cells covered by b.
func (b Box) Area() int { return b.Rows() * b.Cols() }

// Contains reports whether (row, col) lies inside b.
func (b Box) Contains(row, col int) bool {
	return row >= b.MinRow && row <= b.MaxRow && col >= b.MinCol && col <= b.MaxCol
}

// Range is the informational drag range of a divider. It is never enforced.
type Range struct {
	Min, Max float64
}

// unbounded is the default divider range.
var unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}
