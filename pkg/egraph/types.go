package egraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"

	"github.com/tidwall/gjson"
)

// Node is a single e-node.
type Node struct {
	Op       string   `json:"op" bson:"op"`
	Children []string `json:"children,omitempty" bson:"children,omitempty"` // Keys of child e-nodes
	EClass   string   `json:"eclass" bson:"eclass"`
	Cost     *float64 `json:"cost,omitempty" bson:"cost,omitempty"`
	Subsumed bool     `json:"subsumed,omitempty" bson:"subsumed,omitempty"`
}

// =============================================================================
// NodeMap - insertion-ordered e-node table
// =============================================================================

// NodeMap maps e-node keys to nodes and remembers the order keys were added.
// The zero value is an empty map ready to use.
type NodeMap struct {
	keys  []string
	nodes map[string]Node
}

// Set inserts or replaces a node. New keys are appended to the iteration order;
// replacing an existing key keeps its position.
func (m *NodeMap) Set(key string, n Node) {
	if m.nodes == nil {
		m.nodes = make(map[string]Node)
	}
	if _, ok := m.nodes[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.nodes[key] = n
}

// Get returns the node stored under key.
func (m NodeMap) Get(key string) (Node, bool) {
	n, ok := m.nodes[key]
	return n, ok
}

// Len returns the number of nodes.
func (m NodeMap) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m NodeMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates over key/node pairs in insertion order.
func (m NodeMap) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range m.keys {
			if !yield(k, m.nodes[k]) {
				return
			}
		}
	}
}

// UnmarshalJSON decodes a JSON object of nodes, preserving key order.
// Node fields are read leniently; see [decodeNode].
func (m *NodeMap) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return fmt.Errorf("nodes must be an object")
	}

	m.keys = nil
	m.nodes = make(map[string]Node)
	res.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), decodeNode(value))
		return true
	})
	return nil
}

// decodeNode reads an e-node without rejecting it. Field names match exactly
// and a repeated field takes its last value. Scalar ids of any JSON type are
// kept in their text form, so {"eclass": 3} lands in e-class "3". A non-object
// value decodes to the zero Node.
func decodeNode(v gjson.Result) Node {
	var n Node
	if !v.IsObject() {
		return n
	}
	v.ForEach(func(key, f gjson.Result) bool {
		switch key.String() {
		case "op":
			n.Op = f.String()
		case "eclass":
			n.EClass = f.String()
		case "children":
			n.Children = nil
			if f.IsArray() {
				for _, c := range f.Array() {
					n.Children = append(n.Children, c.String())
				}
			}
		case "cost":
			n.Cost = nil
			if f.Type == gjson.Number {
				c := f.Float()
				n.Cost = &c
			}
		case "subsumed":
			n.Subsumed = f.Bool()
		}
		return true
	})
	return n
}

// MarshalJSON encodes the nodes as a JSON object in insertion order.
func (m NodeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.nodes[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =============================================================================
// ClassData - per-eclass metadata
// =============================================================================

// ClassData holds metadata for one e-class. Type is the only field with a
// known meaning; every other key is kept verbatim in Extra so the document
// round-trips without loss.
type ClassData struct {
	Type  string
	Extra map[string]json.RawMessage
}

// UnmarshalJSON splits the known "type" field from extension fields.
// A non-string "type" is kept in Extra.
func (c *ClassData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = ""
	c.Extra = nil
	for k, v := range raw {
		if k == "type" {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				c.Type = s
				continue
			}
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[k] = v
	}
	return nil
}

// MarshalJSON merges Type back with the extension fields.
func (c ClassData) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+1)
	maps.Copy(out, c.Extra)
	if c.Type != "" {
		t, err := json.Marshal(c.Type)
		if err != nil {
			return nil, err
		}
		out["type"] = t
	}
	return json.Marshal(out)
}

// =============================================================================
// SerializedEGraph
// =============================================================================

// SerializedEGraph is a parsed egraph-serialize document.
type SerializedEGraph struct {
	Nodes        NodeMap              `json:"nodes"`
	RootEClasses []string             `json:"root_eclasses,omitempty"`
	ClassData    map[string]ClassData `json:"class_data,omitempty"`
}

// Stats summarizes an e-graph.
type Stats struct {
	Nodes    int `json:"nodes"`
	EClasses int `json:"eclasses"`
	Roots    int `json:"roots"`
}

// EClasses returns the distinct eclass ids in order of first appearance
// while walking nodes in key order.
func (g *SerializedEGraph) EClasses() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range g.Nodes.All() {
		if _, ok := seen[n.EClass]; ok {
			continue
		}
		seen[n.EClass] = struct{}{}
		out = append(out, n.EClass)
	}
	return out
}

// Members returns the keys of the nodes in eclass, in key order.
func (g *SerializedEGraph) Members(eclass string) []string {
	var out []string
	for k, n := range g.Nodes.All() {
		if n.EClass == eclass {
			out = append(out, k)
		}
	}
	return out
}

// ClassType returns the type label recorded for eclass in class_data.
func (g *SerializedEGraph) ClassType(eclass string) string {
	if cd, ok := g.ClassData[eclass]; ok {
		return cd.Type
	}
	return ""
}

// IsRoot reports whether eclass is listed in root_eclasses.
func (g *SerializedEGraph) IsRoot(eclass string) bool {
	for _, r := range g.RootEClasses {
		if r == eclass {
			return true
		}
	}
	return false
}

// Stats returns node, eclass and root counts.
func (g *SerializedEGraph) Stats() Stats {
	return Stats{
		Nodes:    g.Nodes.Len(),
		EClasses: len(g.EClasses()),
		Roots:    len(g.RootEClasses),
	}
}
