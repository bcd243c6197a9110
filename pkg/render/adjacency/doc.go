// Package adjacency renders the divider topology of a grid as a graph.
//
// # Overview
//
// Every region becomes a box node and every divider a diamond node. Edges run
// from each region before a divider to the divider, and from the divider to
// each region after it, so the graph reads in drag direction. Follower
// dividers are connected with dashed edges.
//
// # Usage
//
//	dot := adjacency.ToDOT(g.Topology(), adjacency.Options{})
//	svg, err := adjacency.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package adjacency
