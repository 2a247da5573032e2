package graph_test

import (
	"bytes"
	"fmt"

	"github.com/eggsposition/eggsposition/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "n1", Label: "a", Fill: "#60a5fa", Size: 12, Kind: graph.KindPrimary},
			{ID: "eclass-e1", Label: "e1", Fill: "#60a5fa", Size: 16, Kind: graph.KindAggregate},
		},
		Edges: []graph.Edge{
			{ID: "eclass-e1-n1", Source: "eclass-e1", Target: "n1", Label: "∈"},
		},
	}

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "n1",
	//       "label": "a",
	//       "fill": "#60a5fa",
	//       "size": 12,
	//       "kind": "primary"
	//     },
	//     {
	//       "id": "eclass-e1",
	//       "label": "e1",
	//       "fill": "#60a5fa",
	//       "size": 16,
	//       "kind": "aggregate"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "id": "eclass-e1-n1",
	//       "source": "eclass-e1",
	//       "target": "n1",
	//       "label": "∈"
	//     }
	//   ]
	// }
}

func ExampleGraph_Stats() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindPrimary},
			{ID: "b", Kind: graph.KindPrimary},
			{ID: "he_h1", Kind: graph.KindAggregate},
		},
		Edges: []graph.Edge{
			{ID: "h1_a_0", Source: "he_h1", Target: "a"},
			{ID: "h1_b_1", Source: "he_h1", Target: "b"},
		},
	}

	s := g.Stats()
	fmt.Printf("%d nodes (%d primary, %d aggregate), %d edges\n",
		s.Nodes, s.PrimaryNodes, s.AggregateNodes, s.Edges)
	fmt.Println("valid:", g.Validate() == nil)
	// Output:
	// 3 nodes (2 primary, 1 aggregate), 2 edges
	// valid: true
}
