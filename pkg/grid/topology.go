package grid

import (
	"fmt"
	"slices"
)

// Adjacency holds the two sides of a divider along its resize axis, as
// ascending ID lists. Before is above a horizontal divider or left of a
// vertical one.
type Adjacency struct {
	Before []int
	After  []int
}

// Len returns the number of entries on both sides.
func (a Adjacency) Len() int { return len(a.Before) + len(a.After) }

// DividerInfo describes one divider of a Topology.
type DividerInfo struct {
	ID          int
	Orientation Orientation
	Box         Box

	// Regions are the region labels the divider resizes.
	Regions Adjacency
	// Followers are perpendicular divider segments that end on this divider
	// and are stretched or shrunk together with the regions.
	Followers Adjacency
}

// Topology is the expanded matrix of a validated label matrix together with
// the bounding box of every region and divider and the divider adjacency.
// A Topology is immutable once built.
type Topology struct {
	cells      [][]Cell
	dividerRow []bool
	dividerCol []bool
	origRows   int
	origCols   int

	labels   []int
	regions  map[int]Box
	dividers []DividerInfo
	byID     map[int]int
}

// line maps an expanded row or column to its original index.
type line struct {
	orig    int
	divider bool
}

// Expand validates m and builds its Topology.
//
// A divider column is inserted between original columns c-1 and c when any
// row holds different labels on the two sides, and likewise for rows. Each
// inserted cell becomes a divider cell where the labels on its two sides
// differ and repeats the shared label otherwise. Junction cells, where an
// inserted row meets an inserted column, are resolved from the four
// surrounding original cells; a vertical boundary running through the
// junction wins over a horizontal one.
func Expand(m [][]int) (*Topology, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	rows, cols := len(m), len(m[0])

	colLines := make([]line, 0, 2*cols-1)
	for c := 0; c < cols; c++ {
		if c > 0 && columnBoundary(m, c) {
			colLines = append(colLines, line{orig: c, divider: true})
		}
		colLines = append(colLines, line{orig: c})
	}
	rowLines := make([]line, 0, 2*rows-1)
	for r := 0; r < rows; r++ {
		if r > 0 && rowBoundary(m, r) {
			rowLines = append(rowLines, line{orig: r, divider: true})
		}
		rowLines = append(rowLines, line{orig: r})
	}

	t := &Topology{
		cells:      make([][]Cell, len(rowLines)),
		dividerRow: make([]bool, len(rowLines)),
		dividerCol: make([]bool, len(colLines)),
		origRows:   rows,
		origCols:   cols,
		regions:    make(map[int]Box),
		byID:       make(map[int]int),
	}
	for ec, cl := range colLines {
		t.dividerCol[ec] = cl.divider
	}
	for er, rl := range rowLines {
		t.dividerRow[er] = rl.divider
		t.cells[er] = make([]Cell, len(colLines))
		for ec, cl := range colLines {
			kind, label, ok := resolveCell(m, rl, cl)
			if !ok {
				return nil, &ConfigurationError{Reason: "junction has no consistent boundary", Row: er, Col: ec}
			}
			t.cells[er][ec] = Cell{Kind: kind, ID: label}
		}
	}

	t.numberDividers()
	if err := t.collectComponents(); err != nil {
		return nil, err
	}
	if err := t.collectAdjacency(); err != nil {
		return nil, err
	}
	return t, nil
}

// columnBoundary reports whether any row differs across columns c-1 and c.
func columnBoundary(m [][]int, c int) bool {
	for _, row := range m {
		if row[c-1] != row[c] {
			return true
		}
	}
	return false
}

// rowBoundary reports whether any column differs across rows r-1 and r.
func rowBoundary(m [][]int, r int) bool {
	for c := range m[r] {
		if m[r-1][c] != m[r][c] {
			return true
		}
	}
	return false
}

// resolveCell decides the expanded cell for one row/column line pair.
// Divider cells get a zero ID, assigned later by numberDividers.
func resolveCell(m [][]int, rl, cl line) (Kind, int, bool) {
	r, c := rl.orig, cl.orig
	switch {
	case !rl.divider && !cl.divider:
		return KindRegion, m[r][c], true
	case !rl.divider:
		if m[r][c-1] == m[r][c] {
			return KindRegion, m[r][c], true
		}
		return KindVertical, 0, true
	case !cl.divider:
		if m[r-1][c] == m[r][c] {
			return KindRegion, m[r][c], true
		}
		return KindHorizontal, 0, true
	}

	// Junction: a b
	//           d e
	a, b := m[r-1][c-1], m[r-1][c]
	d, e := m[r][c-1], m[r][c]
	switch {
	case a == b && b == d && d == e:
		return KindRegion, e, true
	case a != b && d != e:
		return KindVertical, 0, true
	case a != d && b != e:
		return KindHorizontal, 0, true
	}
	return 0, 0, false
}

// numberDividers assigns IDs to maximal runs of divider cells: vertical runs
// column by column, then horizontal runs row by row.
func (t *Topology) numberDividers() {
	next, id := firstVerticalID, 0
	for ec, isDivider := range t.dividerCol {
		if !isDivider {
			continue
		}
		inRun := false
		for er := range t.cells {
			cell := &t.cells[er][ec]
			if cell.Kind != KindVertical {
				inRun = false
				continue
			}
			if !inRun {
				inRun, id = true, next
				next += dividerIDStep
			}
			cell.ID = id
		}
	}

	next = firstHorizontalID
	for er, isDivider := range t.dividerRow {
		if !isDivider {
			continue
		}
		inRun := false
		for ec := range t.cells[er] {
			cell := &t.cells[er][ec]
			if cell.Kind != KindHorizontal {
				inRun = false
				continue
			}
			if !inRun {
				inRun, id = true, next
				next += dividerIDStep
			}
			cell.ID = id
		}
	}
}

// collectComponents records the bounding box of every region and divider.
func (t *Topology) collectComponents() error {
	visited := newVisited(t.Rows(), t.Cols())
	for er, row := range t.cells {
		for ec := range row {
			if visited[er][ec] {
				continue
			}
			comp := FindComponent(t.cells, visited, er, ec)
			if !comp.IsRectangle() {
				return &ConfigurationError{
					Reason: fmt.Sprintf("%s %d is not a rectangle", comp.Value.Kind, comp.Value.ID),
					Row:    er, Col: ec,
				}
			}
			if !comp.Value.IsDivider() {
				t.regions[comp.Value.ID] = comp.Box
				t.labels = append(t.labels, comp.Value.ID)
				continue
			}
			o, err := comp.Value.Kind.Orientation()
			if err != nil {
				return err
			}
			t.dividers = append(t.dividers, DividerInfo{ID: comp.Value.ID, Orientation: o, Box: comp.Box})
		}
	}

	slices.Sort(t.labels)
	slices.SortFunc(t.dividers, func(a, b DividerInfo) int { return b.ID - a.ID })
	for i, d := range t.dividers {
		t.byID[d.ID] = i
	}
	return nil
}

// collectAdjacency inspects the neighbors of every divider cell along its
// resize axis.
func (t *Topology) collectAdjacency() error {
	type sides struct{ regions, followers [2]map[int]struct{} }
	acc := make(map[int]*sides, len(t.dividers))
	for _, d := range t.dividers {
		s := &sides{}
		for i := range 2 {
			s.regions[i] = make(map[int]struct{})
			s.followers[i] = make(map[int]struct{})
		}
		acc[d.ID] = s
	}

	for er, row := range t.cells {
		for ec, cell := range row {
			if !cell.IsDivider() {
				continue
			}
			var neighbors [2]Cell
			switch cell.Kind {
			case KindHorizontal:
				neighbors = [2]Cell{t.cells[er-1][ec], t.cells[er+1][ec]}
			case KindVertical:
				neighbors = [2]Cell{t.cells[er][ec-1], t.cells[er][ec+1]}
			default:
				return &ConfigurationError{Reason: fmt.Sprintf("unrecognized divider kind %s", cell.Kind), Row: er, Col: ec}
			}
			s := acc[cell.ID]
			for side, n := range neighbors {
				switch {
				case !n.IsDivider():
					s.regions[side][n.ID] = struct{}{}
				case n.Kind != cell.Kind:
					s.followers[side][n.ID] = struct{}{}
				}
			}
		}
	}

	for i := range t.dividers {
		s := acc[t.dividers[i].ID]
		t.dividers[i].Regions = Adjacency{Before: sortedKeys(s.regions[0]), After: sortedKeys(s.regions[1])}
		t.dividers[i].Followers = Adjacency{Before: sortedKeys(s.followers[0]), After: sortedKeys(s.followers[1])}
	}
	return nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Rows returns the number of expanded rows.
func (t *Topology) Rows() int { return len(t.cells) }

// Cols returns the number of expanded columns.
func (t *Topology) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// OriginalRows returns the row count of the input matrix.
func (t *Topology) OriginalRows() int { return t.origRows }

// OriginalCols returns the column count of the input matrix.
func (t *Topology) OriginalCols() int { return t.origCols }

// At returns the expanded cell at (row, col).
func (t *Topology) At(row, col int) Cell { return t.cells[row][col] }

// DividerRow reports whether expanded row r is an inserted divider row.
func (t *Topology) DividerRow(r int) bool { return t.dividerRow[r] }

// DividerCol reports whether expanded column c is an inserted divider column.
func (t *Topology) DividerCol(c int) bool { return t.dividerCol[c] }

// DividerRows returns the number of inserted divider rows.
func (t *Topology) DividerRows() int { return countTrue(t.dividerRow) }

// DividerCols returns the number of inserted divider columns.
func (t *Topology) DividerCols() int { return countTrue(t.dividerCol) }

// Labels returns the expanded matrix as integers: region labels and
// negative divider IDs.
func (t *Topology) Labels() [][]int {
	out := make([][]int, len(t.cells))
	for r, row := range t.cells {
		out[r] = make([]int, len(row))
		for c, cell := range row {
			out[r][c] = cell.ID
		}
	}
	return out
}

// RegionLabels returns the region labels in ascending order.
func (t *Topology) RegionLabels() []int { return slices.Clone(t.labels) }

// RegionBox returns the expanded bounding box of a region.
func (t *Topology) RegionBox(label int) (Box, bool) {
	b, ok := t.regions[label]
	return b, ok
}

// Dividers returns every divider ordered by descending ID (-2, -3, -4, ...).
func (t *Topology) Dividers() []DividerInfo { return slices.Clone(t.dividers) }

// Divider returns the divider with the given ID.
func (t *Topology) Divider(id int) (DividerInfo, bool) {
	i, ok := t.byID[id]
	if !ok {
		return DividerInfo{}, false
	}
	return t.dividers[i], true
}

// dividerLines counts the inserted lines a box spans on the axis an
// orientation resizes, together with the total number of lines.
func (t *Topology) dividerLines(b Box, o Orientation) (dividers, total int, err error) {
	switch o {
	case Vertical:
		return countTrue(t.dividerCol[b.MinCol : b.MaxCol+1]), b.Cols(), nil
	case Horizontal:
		return countTrue(t.dividerRow[b.MinRow : b.MaxRow+1]), b.Rows(), nil
	}
	return 0, 0, &ConfigurationError{Reason: fmt.Sprintf("unrecognized divider orientation %s", o), Row: -1, Col: -1}
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
