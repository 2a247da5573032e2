package convert

import (
	"strconv"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
)

const (
	// DefaultNodeFill is the fill of hypergraph nodes with neither color nor fill.
	DefaultNodeFill = "#3b82f6"
	// DefaultHyperedgeFill is the fill of hyperedge nodes without a color.
	DefaultHyperedgeFill = "#ef4444"

	nodeSize      = 10
	hyperedgeSize = 8
)

// HyperedgeNodeID returns the graph node id synthesized for a hyperedge.
func HyperedgeNodeID(hyperedge string) string {
	return "he_" + hyperedge
}

// Hypergraph converts hg to a graph.
//
// Nodes appear hypergraph nodes first, then one aggregate node per hyperedge,
// both in input order. Under [MembersPassThrough] (the default) star edges are
// emitted for every member even when it names no node; under [MembersStrict]
// such a member fails the conversion with INVALID_HYPERGRAPH.
func Hypergraph(hg hypergraph.Data, opts ...Option) (graph.Graph, error) {
	o := newOptions(opts)
	g := graph.Empty()

	known := make(map[string]struct{}, len(hg.Nodes))
	for _, n := range hg.Nodes {
		known[n.ID] = struct{}{}

		fill := n.Color
		if fill == "" {
			fill = n.Fill
		}
		if fill == "" {
			fill = DefaultNodeFill
		}
		size := n.Size
		if size == 0 {
			size = nodeSize
		}
		g.Nodes = append(g.Nodes, graph.Node{
			ID:    n.ID,
			Label: n.Label,
			Fill:  fill,
			Size:  size,
			Kind:  graph.KindPrimary,
		})
	}

	for _, he := range hg.Hyperedges {
		id := HyperedgeNodeID(he.ID)
		label := he.Label
		if label == "" {
			label = "HE-" + he.ID
		}
		fill := he.Color
		if fill == "" {
			fill = DefaultHyperedgeFill
		}
		g.Nodes = append(g.Nodes, graph.Node{
			ID:    id,
			Label: label,
			Fill:  fill,
			Size:  hyperedgeSize,
			Kind:  graph.KindAggregate,
		})

		for i, member := range he.Nodes {
			if _, ok := known[member]; !ok {
				if o.members == MembersStrict {
					return graph.Empty(), errors.New(errors.ErrCodeInvalidHypergraph,
						"hyperedge %q references unknown node %q", he.ID, member)
				}
				o.report(Diagnostic{Kind: DanglingMember, Subject: he.ID, Reference: member, Index: i})
			}
			g.Edges = append(g.Edges, graph.Edge{
				ID:     he.ID + "_" + member + "_" + strconv.Itoa(i),
				Source: id,
				Target: member,
			})
		}
	}

	return g, nil
}
