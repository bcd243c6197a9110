package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/splitgrid/pkg/grid"
)

// Options configures topology graph rendering.
type Options struct {
	// Detailed adds bounding boxes to node labels.
	Detailed bool
	// HideFollowers omits the dashed follower edges.
	HideFollowers bool
}

// ToDOT converts a topology to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(t *grid.Topology, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, label := range t.RegionLabels() {
		box, _ := t.RegionBox(label)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", regionNode(label), fmtLabel(fmt.Sprintf("region %d", label), box, opts.Detailed))
	}
	dividers := t.Dividers()
	for _, d := range dividers {
		name := fmt.Sprintf("divider %d\n%s", d.ID, d.Orientation)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=diamond, style=filled, fillcolor=%s];\n",
			dividerNode(d.ID), fmtLabel(name, d.Box, opts.Detailed), fillColor(d.Orientation))
	}

	buf.WriteString("\n")
	for _, d := range dividers {
		for _, label := range d.Regions.Before {
			fmt.Fprintf(&buf, "  %q -> %q;\n", regionNode(label), dividerNode(d.ID))
		}
		for _, label := range d.Regions.After {
			fmt.Fprintf(&buf, "  %q -> %q;\n", dividerNode(d.ID), regionNode(label))
		}
		if opts.HideFollowers {
			continue
		}
		for _, id := range d.Followers.Before {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", dividerNode(id), dividerNode(d.ID))
		}
		for _, id := range d.Followers.After {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", dividerNode(d.ID), dividerNode(id))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func regionNode(label int) string { return fmt.Sprintf("r%d", label) }

func dividerNode(id int) string { return fmt.Sprintf("d%d", -id) }

func fillColor(o grid.Orientation) string {
	if o == grid.Horizontal {
		return "lightblue"
	}
	return "lightyellow"
}

func fmtLabel(name string, b grid.Box, detailed bool) string {
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\nrows %d-%d\ncols %d-%d", name, b.MinRow, b.MaxRow, b.MinCol, b.MaxCol)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin and whose size matches the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
