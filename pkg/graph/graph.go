package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Structure
// =============================================================================

// Validate checks the structural invariants of g: node IDs are unique, edge
// IDs are unique, and every edge endpoint names a node of g.
func (g Graph) Validate() error {
	nodes := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := edges[e.ID]; dup {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.Source]; !ok {
			return fmt.Errorf("edge %q: unknown source %q", e.ID, e.Source)
		}
		if _, ok := nodes[e.Target]; !ok {
			return fmt.Errorf("edge %q: unknown target %q", e.ID, e.Target)
		}
	}
	return nil
}

// Stats returns node and edge counts by kind.
func (g Graph) Stats() Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	for i := range g.Nodes {
		if g.Nodes[i].IsAggregate() {
			s.AggregateNodes++
		} else {
			s.PrimaryNodes++
		}
	}
	return s
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(normalize(g))
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return normalize(g), nil
}

// ReadGraph decodes a graph from r.
func ReadGraph(r io.Reader) (Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Graph{}, err
	}
	return UnmarshalGraph(data)
}

// normalize replaces nil slices with empty ones so serialized output always
// carries both arrays.
func normalize(g Graph) Graph {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return g
}

// =============================================================================
// Force-graph Export
// =============================================================================

// ForceGraphData is the {nodes, links} shape consumed by force-directed
// browser renderers such as react-force-graph.
type ForceGraphData struct {
	Nodes []ForceGraphNode `json:"nodes"`
	Links []ForceGraphLink `json:"links"`
}

// ForceGraphNode is a force-graph node. Val drives the rendered radius.
type ForceGraphNode struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Val   float64  `json:"val"`
	Color string   `json:"color"`
	Kind  NodeKind `json:"kind"`
	Root  bool     `json:"root,omitempty"`
}

// ForceGraphLink is a force-graph link.
type ForceGraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// ForceGraph maps g to the force-graph shape, applying renderer defaults for
// unset fill and size. Physics coordinates are left to the renderer.
func ForceGraph(g Graph) ForceGraphData {
	out := ForceGraphData{
		Nodes: make([]ForceGraphNode, len(g.Nodes)),
		Links: make([]ForceGraphLink, len(g.Edges)),
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		out.Nodes[i] = ForceGraphNode{
			ID:    n.ID,
			Name:  n.Label,
			Val:   n.DisplaySize(),
			Color: n.DisplayFill(),
			Kind:  n.Kind,
			Root:  n.Root,
		}
	}
	for i, e := range g.Edges {
		out.Links[i] = ForceGraphLink{Source: e.Source, Target: e.Target, Label: e.Label}
	}
	return out
}

// MarshalForceGraph converts a graph to indented force-graph JSON.
func MarshalForceGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ForceGraph(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
