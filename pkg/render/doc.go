// Package render turns a [graph.Graph] into output artifacts.
//
// # Overview
//
// A graph can be emitted in five formats:
//
//   - json: the graph model itself (nodes and edges)
//   - forcegraph: the {nodes, links} shape read by browser force-graph renderers
//   - dot: Graphviz source
//   - svg, png: Graphviz layouts (in the [nodelink] subpackage)
//
// [Graph] dispatches on [Format]:
//
//	svg, err := render.Graph(ctx, g, render.FormatSVG, render.Options{Engine: nodelink.EngineFDP})
//
// [graph.Graph]: github.com/eggsposition/eggsposition/pkg/graph.Graph
// [nodelink]: github.com/eggsposition/eggsposition/pkg/render/nodelink
package render
