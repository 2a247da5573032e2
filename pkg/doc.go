// Package pkg provides the core libraries for eggsposition e-graph
// visualization.
//
// # Overview
//
// Eggsposition turns e-graphs (egraph-serialize JSON) and hypergraphs into a
// flat node/edge model that graph renderers can draw. The pkg directory is
// organized into three areas:
//
//  1. Domain: [egraph] and [hypergraph] inputs, the [graph] model, and the
//     [convert] functions between them
//  2. Output: [render] (JSON, force-graph, DOT) and its Graphviz-backed
//     nodelink subpackage (SVG, PNG)
//  3. Infrastructure: [pipeline] orchestration, [cache], [store], [config],
//     [observability], [errors] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	egraph-serialize JSON          hypergraph JSON / YAML
//	         ↓                               ↓
//	    [egraph.Parse]               [hypergraph.Parse]
//	         ↓                               ↓
//	    [convert.EGraph]             [convert.Hypergraph]
//	                  ↘             ↙
//	                   [graph.Graph]
//	                         ↓
//	                  [render.Graph]
//	                         ↓
//	      JSON / force-graph / DOT / SVG / PNG
//
// [pipeline.Runner] runs these steps with caching and observability hooks.
//
// # Quick Start
//
//	eg, err := egraph.ReadFile("fibonacci.json")
//	if err != nil {
//	    return err
//	}
//	g := convert.EGraph(eg)
//	svg, err := render.Graph(ctx, g, render.FormatSVG, render.Options{})
//
// [egraph]: github.com/eggsposition/eggsposition/pkg/egraph
// [hypergraph]: github.com/eggsposition/eggsposition/pkg/hypergraph
// [graph]: github.com/eggsposition/eggsposition/pkg/graph
// [convert]: github.com/eggsposition/eggsposition/pkg/convert
// [render]: github.com/eggsposition/eggsposition/pkg/render
// [pipeline]: github.com/eggsposition/eggsposition/pkg/pipeline
// [cache]: github.com/eggsposition/eggsposition/pkg/cache
// [store]: github.com/eggsposition/eggsposition/pkg/store
// [config]: github.com/eggsposition/eggsposition/pkg/config
// [observability]: github.com/eggsposition/eggsposition/pkg/observability
// [errors]: github.com/eggsposition/eggsposition/pkg/errors
// [buildinfo]: github.com/eggsposition/eggsposition/pkg/buildinfo
// [egraph.Parse]: github.com/eggsposition/eggsposition/pkg/egraph.Parse
// [hypergraph.Parse]: github.com/eggsposition/eggsposition/pkg/hypergraph.Parse
// [convert.EGraph]: github.com/eggsposition/eggsposition/pkg/convert.EGraph
// [convert.Hypergraph]: github.com/eggsposition/eggsposition/pkg/convert.Hypergraph
// [graph.Graph]: github.com/eggsposition/eggsposition/pkg/graph.Graph
// [render.Graph]: github.com/eggsposition/eggsposition/pkg/render.Graph
// [pipeline.Runner]: github.com/eggsposition/eggsposition/pkg/pipeline.Runner
package pkg
