// Package hypergraph defines the hypergraph input format and the built-in
// sample hypergraphs.
//
// A hypergraph is a set of nodes plus hyperedges; each hyperedge spans an
// arbitrary ordered subset of node IDs. Data is read from JSON or YAML with
// [Read] and [ReadFile], and can be converted to a flat graph with
// convert.Hypergraph.
package hypergraph

import (
	"fmt"
)

// Node is a hypergraph vertex. Color takes precedence over Fill when both are set.
type Node struct {
	ID    string  `json:"id" yaml:"id" bson:"id"`
	Label string  `json:"label" yaml:"label" bson:"label"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty" bson:"color,omitempty"`
	Fill  string  `json:"fill,omitempty" yaml:"fill,omitempty" bson:"fill,omitempty"`
	Size  float64 `json:"size,omitempty" yaml:"size,omitempty" bson:"size,omitempty"`
}

// Hyperedge connects an ordered list of node IDs.
type Hyperedge struct {
	ID    string   `json:"id" yaml:"id" bson:"id"`
	Nodes []string `json:"nodes" yaml:"nodes" bson:"nodes"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty" bson:"color,omitempty"`
}

// Data is a complete hypergraph.
type Data struct {
	Nodes      []Node      `json:"nodes" yaml:"nodes" bson:"nodes"`
	Hyperedges []Hyperedge `json:"hyperedges" yaml:"hyperedges" bson:"hyperedges"`
}

// Validate checks that node and hyperedge IDs are non-empty and unique.
// Hyperedge members are not resolved here.
func (d Data) Validate() error {
	nodes := make(map[string]struct{}, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(d.Hyperedges))
	for i, he := range d.Hyperedges {
		if he.ID == "" {
			return fmt.Errorf("hyperedge %d: empty id", i)
		}
		if _, dup := edges[he.ID]; dup {
			return fmt.Errorf("duplicate hyperedge id %q", he.ID)
		}
		edges[he.ID] = struct{}{}
	}
	return nil
}

// Incidence returns the number of node/hyperedge memberships.
func (d Data) Incidence() int {
	n := 0
	for _, he := range d.Hyperedges {
		n += len(he.Nodes)
	}
	return n
}
