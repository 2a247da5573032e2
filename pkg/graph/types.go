package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeKind distinguishes primary entities from synthesized structural nodes.
type NodeKind string

// Node kinds.
const (
	// KindPrimary marks nodes that correspond to input entities
	// (e-nodes, hypergraph vertices).
	KindPrimary NodeKind = "primary"

	// KindAggregate marks nodes synthesized to represent a group
	// (e-classes, hyperedges).
	KindAggregate NodeKind = "aggregate"
)

// Renderer defaults applied when a node leaves Fill or Size unset.
const (
	DefaultFill = "#60a5fa"
	DefaultSize = 10.0
)

// =============================================================================
// Graph - Flat Node/Edge Description
// =============================================================================

// Graph is the flat node/edge description consumed by renderers.
// Converters always return non-nil slices so an empty graph serializes as
// {"nodes": [], "edges": []}.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Empty returns a graph with empty, non-nil node and edge slices.
func Empty() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// =============================================================================
// Node
// =============================================================================

// Node is a drawable graph node.
type Node struct {
	ID    string   `json:"id" bson:"id"`
	Label string   `json:"label" bson:"label"`
	Fill  string   `json:"fill,omitempty" bson:"fill,omitempty"` // CSS colour, DefaultFill if empty
	Size  float64  `json:"size,omitempty" bson:"size,omitempty"` // Relative size, DefaultSize if zero
	Kind  NodeKind `json:"kind" bson:"kind"`
	Root  bool     `json:"root,omitempty" bson:"root,omitempty"` // Designated root e-class
}

// IsAggregate returns true if this node was synthesized to represent a group.
func (n *Node) IsAggregate() bool { return n.Kind == KindAggregate }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// DisplayFill returns the fill colour, falling back to DefaultFill.
func (n *Node) DisplayFill() string {
	if n.Fill != "" {
		return n.Fill
	}
	return DefaultFill
}

// DisplaySize returns the size, falling back to DefaultSize.
func (n *Node) DisplaySize() float64 {
	if n.Size > 0 {
		return n.Size
	}
	return DefaultSize
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two nodes of the same graph.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Stats
// =============================================================================

// Stats summarizes a graph's cardinalities.
type Stats struct {
	Nodes          int `json:"nodes"`
	PrimaryNodes   int `json:"primary_nodes"`
	AggregateNodes int `json:"aggregate_nodes"`
	Edges          int `json:"edges"`
}
