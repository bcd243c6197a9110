package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
	"github.com/matzehuels/splitgrid/pkg/render/adjacency"
)

// RenderArtifact produces one artifact for g.
//
//   - json, toml: the exported layout
//   - dot: the topology graph source
//   - svg: the topology graph rendered through Graphviz
func RenderArtifact(ctx context.Context, g *grid.Grid, format string, detailed bool) ([]byte, error) {
	switch format {
	case FormatJSON, FormatTOML:
		var buf bytes.Buffer
		if err := sgio.WriteLayout(sgio.FromGrid(g), &buf, sgio.Format(format)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(adjacency.ToDOT(g.Topology(), adjacency.Options{Detailed: detailed})), nil
	case FormatSVG:
		return adjacency.RenderSVG(ctx, adjacency.ToDOT(g.Topology(), adjacency.Options{Detailed: detailed}))
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
