package grid

// Component is one 4-connected group of equal cells found by FindComponent.
type Component[T comparable] struct {
	Value T   // value shared by every cell of the component
	Box   Box // bounding box of the component
	Size  int // number of cells in the component
}

// IsRectangle reports whether the component fills its bounding box.
func (c Component[T]) IsRectangle() bool { return c.Box.Area() == c.Size }

// 4-neighborhood offsets: up, right, down, left.
var neighborOffsets = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// FindComponent flood-fills the component containing (row, col) with a
// breadth-first search over the four orthogonal neighbors. Cells with a
// different value, cells outside the matrix and cells already marked in
// visited are boundaries. Every cell of the component is marked in visited.
//
// The matrix must be rectangular and visited must have the same shape.
// Complexity is O(cells of the component).
func FindComponent[T comparable](m [][]T, visited [][]bool, row, col int) Component[T] {
	value := m[row][col]
	comp := Component[T]{
		Value: value,
		Box:   Box{MinRow: row, MinCol: col, MaxRow: row, MaxCol: col},
	}
	if visited[row][col] {
		return comp
	}

	queue := [][2]int{{row, col}}
	visited[row][col] = true
	for head := 0; head < len(queue); head++ {
		r, c := queue[head][0], queue[head][1]
		comp.Size++
		comp.Box.MinRow = min(comp.Box.MinRow, r)
		comp.Box.MaxRow = max(comp.Box.MaxRow, r)
		comp.Box.MinCol = min(comp.Box.MinCol, c)
		comp.Box.MaxCol = max(comp.Box.MaxCol, c)

		for _, off := range neighborOffsets {
			nr, nc := r+off[0], c+off[1]
			if nr < 0 || nr >= len(m) || nc < 0 || nc >= len(m[nr]) {
				continue
			}
			if visited[nr][nc] || m[nr][nc] != value {
				continue
			}
			visited[nr][nc] = true
			queue = append(queue, [2]int{nr, nc})
		}
	}
	return comp
}

// newVisited allocates a rows×cols visited mask backed by one slice.
func newVisited(rows, cols int) [][]bool {
	backing := make([]bool, rows*cols)
	mask := make([][]bool, rows)
	for r := range mask {
		mask[r] = backing[r*cols : (r+1)*cols : (r+1)*cols]
	}
	return mask
}
