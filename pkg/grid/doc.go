// Package grid partitions a rectangular surface into resizable regions
// separated by draggable dividers.
//
// # Overview
//
// A grid is declared by a label matrix: every cell holds a non-negative
// region label and every label must occupy exactly one rectangle.
//
//	| 0 1 2 |
//	| 0 1 2 |   three columns, region 3 spans the bottom row
//	| 3 3 3 |
//
// Construction runs in four stages:
//
//  1. [Validate] rejects matrices whose labels are not single rectangles.
//  2. [Expand] inserts a divider column between any two original columns
//     whose labels differ in at least one row, then a divider row between
//     any two original rows that differ in at least one column. Each
//     maximal run of crossing cells in an inserted line becomes one divider.
//  3. [FindComponent] extracts the bounding box of every region and
//     divider from the expanded matrix.
//  4. [InitialSizes] and [ComputePositions] derive pixel geometry.
//
// # Cells and Dividers
//
// Expanded cells are tagged with a [Kind]: a region, a horizontal divider
// (moves up and down, resizes heights) or a vertical divider (moves left and
// right, resizes widths). Divider IDs are negative: horizontal dividers are
// numbered -2, -4, -6, ... and vertical dividers -3, -5, -7, ..., in the
// order they are found scanning inserted columns left to right and then
// inserted rows top to bottom.
//
// # Resizing
//
// The per-cell size matrix is the single source of truth. A drag is the
// message [DragEvent]; [Resize] is a pure function from the current sizes
// and one event to new sizes. Regions before the divider lose Delta pixels
// on the divider's axis, regions after it gain Delta, so a positive Delta
// moves the divider toward the origin. Perpendicular divider segments that
// end on the dragged divider follow the same rule so that divider lengths
// stay exact. After every event the grid recomputes all positions from
// scratch.
//
// Drags are not clamped: regions may reach zero or negative sizes.
//
// # Drag Sessions
//
// [Grid.BeginDrag] opens a [DragSession] on a [PointerSurface]. The session
// registers its pointer listeners and a selection suppressor and removes all
// of them exactly once on [DragSession.Release], which also runs on pointer
// up. Only one session may be active per grid.
//
// # Concurrency
//
// A Grid is not safe for concurrent use. All operations are synchronous and
// bounded by the number of cells.
package grid
