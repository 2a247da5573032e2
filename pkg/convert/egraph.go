package convert

import (
	"strconv"

	"github.com/eggsposition/eggsposition/pkg/egraph"
	"github.com/eggsposition/eggsposition/pkg/graph"
)

// Palette is cycled over e-classes in first-seen order.
var Palette = [...]string{
	"#60a5fa", // blue
	"#f59e0b", // amber
	"#10b981", // emerald
	"#ef4444", // red
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#f97316", // orange
}

// FallbackColor is used for an eclass with no assigned palette entry.
const FallbackColor = "#64748b"

const (
	eNodeSize    = 12
	subsumedSize = 8
	eClassSize   = 16

	// MembershipLabel labels edges from an e-class to its members.
	MembershipLabel = "∈"
)

// ClassNodeID returns the graph node id of an e-class.
func ClassNodeID(eclass string) string {
	return "eclass-" + eclass
}

// EGraph converts eg to a graph.
//
// Nodes appear e-nodes first (in key order), then e-classes (in first-seen
// order). Child references that name no e-node are dropped and reported to
// the diagnostics callback, if any. A nil or empty e-graph yields an empty
// graph with non-nil slices.
func EGraph(eg *egraph.SerializedEGraph, opts ...Option) graph.Graph {
	o := newOptions(opts)
	g := graph.Empty()
	if eg == nil || eg.Nodes.Len() == 0 {
		return g
	}

	var (
		classes []string
		members = make(map[string][]string)
		colors  = make(map[string]string)
	)
	for key, n := range eg.Nodes.All() {
		if _, seen := members[n.EClass]; !seen {
			colors[n.EClass] = Palette[len(classes)%len(Palette)]
			classes = append(classes, n.EClass)
		}
		members[n.EClass] = append(members[n.EClass], key)
	}

	colorOf := func(eclass string) string {
		if c, ok := colors[eclass]; ok {
			return c
		}
		return FallbackColor
	}

	for key, n := range eg.Nodes.All() {
		size := float64(eNodeSize)
		if n.Subsumed {
			size = subsumedSize
		}
		g.Nodes = append(g.Nodes, graph.Node{
			ID:    key,
			Label: n.Op,
			Fill:  colorOf(n.EClass),
			Size:  size,
			Kind:  graph.KindPrimary,
		})

		for i, childKey := range n.Children {
			child, ok := eg.Nodes.Get(childKey)
			if !ok {
				o.report(Diagnostic{Kind: DanglingChild, Subject: key, Reference: childKey, Index: i})
				continue
			}
			arg := "arg" + strconv.Itoa(i)
			g.Edges = append(g.Edges, graph.Edge{
				ID:     key + "-" + arg,
				Source: key,
				Target: ClassNodeID(child.EClass),
				Label:  arg,
			})
		}
	}

	for _, eclass := range classes {
		id := ClassNodeID(eclass)
		label := eg.ClassType(eclass)
		if label == "" {
			label = eclass
		}
		g.Nodes = append(g.Nodes, graph.Node{
			ID:    id,
			Label: label,
			Fill:  colorOf(eclass),
			Size:  eClassSize,
			Kind:  graph.KindAggregate,
			Root:  eg.IsRoot(eclass),
		})

		for _, key := range members[eclass] {
			g.Edges = append(g.Edges, graph.Edge{
				ID:     id + "-" + key,
				Source: id,
				Target: key,
				Label:  MembershipLabel,
			})
		}
	}

	return g
}
