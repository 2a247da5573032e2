// Package nodelink renders graphs as node-link diagrams with Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then lay it out and render:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineFDP)
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.EngineFDP)
//
// # Engines
//
// The default engine is fdp, a spring-model force-directed layout that
// approximates the browser force simulation. neato and sfdp are also
// force-directed; dot, circo and twopi give hierarchical, circular and radial
// layouts. Use [ValidateEngine] to resolve user input.
//
// # DOT Format
//
// [ToDOT] output can be rendered directly or saved and processed with
// external Graphviz tools. Node fill colours come from the graph; aggregate
// nodes are drawn as circles sized by [graph.Node.DisplaySize].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No external Graphviz installation is required.
//
// [graph.Node.DisplaySize]: github.com/eggsposition/eggsposition/pkg/graph.Node.DisplaySize
package nodelink
