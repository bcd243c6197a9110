// Package io reads grid scenarios and writes computed layouts.
//
// # Overview
//
// A scenario describes a grid to build and the drags to replay on it. A
// layout is the computed geometry of a grid, suitable for external renderers
// and for diffing between runs.
//
// Both are available as TOML and JSON; the format is picked from the file
// extension (.toml or .json).
//
// # Scenario Format
//
//	width = 800
//	height = 600
//	thickness = 7
//	matrix = [
//	  [0, 1, 2],
//	  [0, 1, 2],
//	  [3, 3, 3],
//	]
//
//	[[drag]]
//	divider = -3
//	delta = 20
//
// The same scenario as JSON uses a "drags" array:
//
//	{
//	  "width": 800,
//	  "height": 600,
//	  "matrix": [[0, 1, 2], [0, 1, 2], [3, 3, 3]],
//	  "drags": [{"divider": -3, "delta": 20}]
//	}
//
// Only matrix is required. Zero or missing sizes fall back to the grid
// defaults. Unknown keys are rejected in both formats.
//
// # Import
//
// Use [ImportScenario] to read a file, or [ReadScenario] for any io.Reader:
//
//	sc, err := io.ImportScenario("layout.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := grid.New(sc.Matrix, sc.Options()...)
//
// # Export
//
// [FromGrid] snapshots a grid into a [Layout]; [WriteLayout] encodes it and
// [ExportLayout] writes it to a file:
//
//	err := io.ExportLayout(io.FromGrid(g), "layout.json")
//
// Regions are listed in ascending label order and dividers in the grid's
// divider order, so output is deterministic for identical input.
package io
