package grid

// Sizes is the per-cell size matrix, parallel to the expanded matrix.
// It is the single source of truth for geometry.
type Sizes [][]Size

// Clone returns a deep copy of s.
func (s Sizes) Clone() Sizes {
	if s == nil {
		return nil
	}
	out := make(Sizes, len(s))
	for r, row := range s {
		out[r] = append([]Size(nil), row...)
	}
	return out
}

// RowWidth returns the sum of the cell widths of expanded row r.
func (s Sizes) RowWidth(r int) float64 {
	var w float64
	for _, cell := range s[r] {
		w += cell.W
	}
	return w
}

// ColHeight returns the sum of the cell heights of expanded column c.
func (s Sizes) ColHeight(c int) float64 {
	var h float64
	for _, row := range s {
		h += row[c].H
	}
	return h
}

// Positions holds the top-left corner of every expanded cell, with one extra
// row and column whose entries mark the far edges of the grid.
type Positions [][]Point

// Clone returns a deep copy of p.
func (p Positions) Clone() Positions {
	if p == nil {
		return nil
	}
	out := make(Positions, len(p))
	for r, row := range p {
		out[r] = append([]Point(nil), row...)
	}
	return out
}

// Extent returns the far corner of the grid.
func (p Positions) Extent() Size {
	if len(p) == 0 {
		return Size{}
	}
	last := len(p) - 1
	return Size{W: p[0][len(p[0])-1].X, H: p[last][0].Y}
}

// InitialSizes lays out t uniformly over a width×height surface. Divider
// columns get thickness width and divider rows thickness height; every other
// column gets (width - dividerCols*thickness) / originalCols, and rows
// likewise.
func InitialSizes(t *Topology, width, height, thickness float64) Sizes {
	cellW := (width - float64(t.DividerCols())*thickness) / float64(t.OriginalCols())
	cellH := (height - float64(t.DividerRows())*thickness) / float64(t.OriginalRows())

	s := make(Sizes, t.Rows())
	for r := range s {
		h := cellH
		if t.DividerRow(r) {
			h = thickness
		}
		s[r] = make([]Size, t.Cols())
		for c := range s[r] {
			w := cellW
			if t.DividerCol(c) {
				w = thickness
			}
			s[r][c] = Size{W: w, H: h}
		}
	}
	return s
}

// ComputePositions derives absolute cell positions from s. X coordinates are
// prefix sums of widths along each row and Y coordinates prefix sums of
// heights down each column. The extra row repeats the X coordinates of the
// last row and the extra column the Y coordinates of the last column.
func ComputePositions(s Sizes) Positions {
	rows := len(s)
	if rows == 0 {
		return nil
	}
	cols := len(s[0])

	p := make(Positions, rows+1)
	for r := range p {
		p[r] = make([]Point, cols+1)
	}
	for r := 0; r <= rows; r++ {
		src := s[min(r, rows-1)]
		for c := 0; c < cols; c++ {
			p[r][c+1].X = p[r][c].X + src[c].W
		}
	}
	for c := 0; c <= cols; c++ {
		sc := min(c, cols-1)
		for r := 0; r < rows; r++ {
			p[r+1][c].Y = p[r][c].Y + s[r][sc].H
		}
	}
	return p
}

// BoxGeometry returns the position and size of the cells covered by b.
// The position is that of the top-left cell; the width is measured along
// the bottom row of the box and the height along its rightmost column.
func BoxGeometry(b Box, p Positions) (Point, Size) {
	origin := p[b.MinRow][b.MinCol]
	return origin, Size{
		W: p[b.MaxRow][b.MaxCol+1].X - origin.X,
		H: p[b.MaxRow+1][b.MaxCol].Y - origin.Y,
	}
}
