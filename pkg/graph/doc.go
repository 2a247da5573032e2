// Package graph provides the flat node/edge model shared by every converter
// and renderer in Eggsposition.
//
// This package defines the canonical wire format handed to renderers: the
// Graphviz node-link renderer, the force-graph JSON export, and the HTTP API.
//
// # Core Types
//
//   - [Graph]: Flat node/edge description
//   - [Node]: A drawable node, either primary or aggregate
//   - [Edge]: A labelled connection between two node IDs
//   - [NodeKind]: Distinguishes primary entities from synthesized structural nodes
//
// # Node Kinds
//
// Converters emit two kinds of nodes:
//
//	graph.KindPrimary    // "primary"   e-nodes, hypergraph vertices
//	graph.KindAggregate  // "aggregate" e-classes, hyperedges
//
// # Serialization
//
// Graphs use a simple JSON format:
//
//	{
//	  "nodes": [{"id": "n1", "label": "a", "fill": "#60a5fa", "size": 12, "kind": "primary"}],
//	  "edges": [{"id": "n2-arg0", "source": "n2", "target": "eclass-e1", "label": "arg0"}]
//	}
//
// Common operations:
//
//	data, _ := graph.MarshalGraph(g)         // Graph → []byte
//	g, _ := graph.UnmarshalGraph(data)       // []byte → Graph
//	fg := graph.ForceGraph(g)                // Graph → react-force-graph shape
//
// # Invariants
//
// Every edge endpoint must reference a node of the same graph, and node and edge
// IDs are unique. [Graph.Validate] checks this; a violation is a converter defect.
//
// # Concurrency
//
// Graph values are never mutated after construction and are safe for
// concurrent reads.
package graph
