package grid

// Validate checks that m is a legal region arrangement: a non-empty
// rectangular matrix of non-negative labels in which every label occupies
// exactly one axis-aligned rectangle.
//
// Checks run in order; the first failure is returned as a *ValidationError:
//  1. the matrix is non-empty and every row has the same length
//  2. every label is non-negative
//  3. in a row-major scan each flood-fill component fills its bounding box,
//     and its label has not been seen in an earlier component
//  4. every cell belongs to some component
func Validate(m [][]int) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return &ValidationError{Reason: ReasonEmpty, Row: -1, Col: -1}
	}
	cols := len(m[0])
	for r, row := range m {
		if len(row) != cols {
			return &ValidationError{Reason: ReasonRagged, Row: r, Col: -1}
		}
	}

	for r, row := range m {
		for c, label := range row {
			if label < 0 {
				return &ValidationError{Reason: ReasonNegativeLabel, Label: label, Row: r, Col: c}
			}
		}
	}

	visited := newVisited(len(m), cols)
	seen := make(map[int]struct{})
	for r, row := range m {
		for c := range row {
			if visited[r][c] {
				continue
			}
			comp := FindComponent(m, visited, r, c)
			if !comp.IsRectangle() {
				return &ValidationError{Reason: ReasonNonRectangular, Label: comp.Value, Row: r, Col: c}
			}
			if _, dup := seen[comp.Value]; dup {
				return &ValidationError{Reason: ReasonDuplicateLabel, Label: comp.Value, Row: r, Col: c}
			}
			seen[comp.Value] = struct{}{}
		}
	}

	for r, row := range visited {
		for c, ok := range row {
			if !ok {
				return &ValidationError{Reason: ReasonUncovered, Label: m[r][c], Row: r, Col: c}
			}
		}
	}
	return nil
}
