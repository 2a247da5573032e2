package hypergraph

import (
	"strconv"

	"github.com/eggsposition/eggsposition/pkg/errors"
)

const memberColor = "#60a5fa"

// Sample is a named built-in hypergraph.
type Sample struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Data        Data   `json:"data"`
}

// DefaultSample is the slug returned by [Generate].
const DefaultSample = "team-collaboration"

// Samples returns fresh copies of the built-in hypergraphs in display order.
func Samples() []Sample {
	return []Sample{
		{
			Slug:        "team-collaboration",
			Name:        "Team Collaboration",
			Description: "People working across multiple teams",
			Data:        teamCollaboration(),
		},
		{
			Slug:        "academic-papers",
			Name:        "Academic Papers",
			Description: "Co-authorship network with multiple authors per paper",
			Data:        academicPapers(),
		},
		{
			Slug:        "chemical-reactions",
			Name:        "Chemical Reactions",
			Description: "Chemical compounds participating in reactions",
			Data:        chemicalReactions(),
		},
		{
			Slug:        "social-groups",
			Name:        "Social Groups",
			Description: "People belonging to multiple interest groups",
			Data:        socialGroups(),
		},
	}
}

// Lookup returns the built-in sample with the given slug.
func Lookup(slug string) (Sample, error) {
	if err := errors.ValidateSampleName(slug); err != nil {
		return Sample{}, err
	}
	for _, s := range Samples() {
		if s.Slug == slug {
			return s, nil
		}
	}
	return Sample{}, errors.New(errors.ErrCodeNotFound, "unknown sample: %s", slug)
}

// Generate returns the default demonstration hypergraph.
func Generate() Data {
	return teamCollaboration()
}

func people(prefix string, names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = Node{ID: prefix + strconv.Itoa(i+1), Label: name, Color: memberColor}
	}
	return nodes
}

func teamCollaboration() Data {
	return Data{
		Nodes: people("n", "Alice", "Bob", "Charlie", "David", "Eve", "Frank", "Grace", "Henry"),
		Hyperedges: []Hyperedge{
			{ID: "h1", Nodes: []string{"n1", "n2", "n3"}, Label: "Team A", Color: "#f59e0b"},
			{ID: "h2", Nodes: []string{"n2", "n4", "n5"}, Label: "Team B", Color: "#10b981"},
			{ID: "h3", Nodes: []string{"n3", "n5", "n6", "n7"}, Label: "Team C", Color: "#8b5cf6"},
			{ID: "h4", Nodes: []string{"n1", "n4", "n8"}, Label: "Team D", Color: "#ec4899"},
			{ID: "h5", Nodes: []string{"n6", "n7", "n8"}, Label: "Team E", Color: "#14b8a6"},
		},
	}
}

func academicPapers() Data {
	return Data{
		Nodes: people("a", "Dr. Smith", "Dr. Jones", "Dr. Brown", "Dr. Lee", "Dr. Chen", "Dr. Wilson"),
		Hyperedges: []Hyperedge{
			{ID: "p1", Nodes: []string{"a1", "a2", "a3"}, Label: "Paper: ML Advances", Color: "#f59e0b"},
			{ID: "p2", Nodes: []string{"a2", "a4"}, Label: "Paper: Neural Nets", Color: "#10b981"},
			{ID: "p3", Nodes: []string{"a1", "a3", "a5", "a6"}, Label: "Paper: Deep Learning", Color: "#8b5cf6"},
			{ID: "p4", Nodes: []string{"a4", "a5"}, Label: "Paper: Computer Vision", Color: "#ec4899"},
		},
	}
}

func chemicalReactions() Data {
	return Data{
		Nodes: []Node{
			{ID: "c1", Label: "H₂", Color: memberColor, Size: 8},
			{ID: "c2", Label: "O₂", Color: memberColor, Size: 8},
			{ID: "c3", Label: "H₂O", Color: memberColor, Size: 10},
			{ID: "c4", Label: "CO₂", Color: memberColor, Size: 9},
			{ID: "c5", Label: "CH₄", Color: memberColor, Size: 9},
			{ID: "c6", Label: "N₂", Color: memberColor, Size: 8},
			{ID: "c7", Label: "NH₃", Color: memberColor, Size: 9},
		},
		Hyperedges: []Hyperedge{
			{ID: "r1", Nodes: []string{"c1", "c2", "c3"}, Label: "Water Formation", Color: "#06b6d4"},
			{ID: "r2", Nodes: []string{"c5", "c2", "c4", "c3"}, Label: "Combustion", Color: "#f97316"},
			{ID: "r3", Nodes: []string{"c6", "c1", "c7"}, Label: "Ammonia Synthesis", Color: "#84cc16"},
		},
	}
}

func socialGroups() Data {
	return Data{
		Nodes: people("p", "Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason", "Isabella", "Logan"),
		Hyperedges: []Hyperedge{
			{ID: "g1", Nodes: []string{"p1", "p2", "p5", "p7"}, Label: "Book Club", Color: "#f59e0b"},
			{ID: "g2", Nodes: []string{"p2", "p3", "p4", "p6", "p8"}, Label: "Gaming Group", Color: "#10b981"},
			{ID: "g3", Nodes: []string{"p1", "p3", "p9"}, Label: "Yoga Class", Color: "#8b5cf6"},
			{ID: "g4", Nodes: []string{"p5", "p6", "p7", "p10"}, Label: "Hiking Club", Color: "#ec4899"},
			{ID: "g5", Nodes: []string{"p4", "p8", "p9", "p10"}, Label: "Photography", Color: "#14b8a6"},
		},
	}
}
