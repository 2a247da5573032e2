package convert_test

import (
	"fmt"

	"github.com/eggsposition/eggsposition/pkg/convert"
	"github.com/eggsposition/eggsposition/pkg/egraph"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
)

func ExampleEGraph() {
	eg, err := egraph.Parse([]byte(`{
		"nodes": {
			"n1": {"op": "a", "eclass": "e1"},
			"n2": {"op": "b", "eclass": "e1", "children": ["n1"]}
		}
	}`))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	g := convert.EGraph(eg)
	for _, n := range g.Nodes {
		fmt.Printf("node %s %q %s\n", n.ID, n.Label, n.Kind)
	}
	for _, e := range g.Edges {
		fmt.Printf("edge %s: %s -> %s [%s]\n", e.ID, e.Source, e.Target, e.Label)
	}
	// Output:
	// node n1 "a" primary
	// node n2 "b" primary
	// node eclass-e1 "e1" aggregate
	// edge n2-arg0: n2 -> eclass-e1 [arg0]
	// edge eclass-e1-n1: eclass-e1 -> n1 [∈]
	// edge eclass-e1-n2: eclass-e1 -> n2 [∈]
}

func ExampleHypergraph() {
	hg := hypergraph.Data{
		Nodes: []hypergraph.Node{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		Hyperedges: []hypergraph.Hyperedge{
			{ID: "h1", Nodes: []string{"a", "b"}},
		},
	}

	g, err := convert.Hypergraph(hg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, n := range g.Nodes {
		fmt.Printf("node %s %q %s %s\n", n.ID, n.Label, n.Fill, n.Kind)
	}
	for _, e := range g.Edges {
		fmt.Printf("edge %s: %s -> %s\n", e.ID, e.Source, e.Target)
	}
	// Output:
	// node a "A" #3b82f6 primary
	// node b "B" #3b82f6 primary
	// node he_h1 "HE-h1" #ef4444 aggregate
	// edge h1_a_0: he_h1 -> a
	// edge h1_b_1: he_h1 -> b
}

func ExampleWithDiagnostics() {
	eg, _ := egraph.Parse([]byte(`{"nodes": {"n1": {"op": "f", "eclass": "e1", "children": ["gone"]}}}`))
	g := convert.EGraph(eg, convert.WithDiagnostics(func(d convert.Diagnostic) {
		fmt.Println(d)
	}))
	fmt.Println(len(g.Nodes), "nodes,", len(g.Edges), "edges")
	// Output:
	// e-node "n1": child 0 references unknown e-node "gone"
	// 2 nodes, 1 edges
}
