// Package convert flattens e-graphs and hypergraphs into [graph.Graph].
//
// Both converters are pure: they read their input, allocate a fresh graph,
// and never retain or mutate either. They are safe to call from any goroutine.
//
// [EGraph] emits one primary node per e-node and one aggregate node per
// e-class, with "argN" edges from each e-node to the e-classes of its children
// and "∈" membership edges from each e-class to its members.
//
// [Hypergraph] emits one primary node per hypergraph node and one aggregate
// "he_<id>" node per hyperedge, joined to its members by star edges.
//
// [graph.Graph]: github.com/eggsposition/eggsposition/pkg/graph.Graph
package convert

import (
	"fmt"
	"strings"
)

// MemberPolicy controls how [Hypergraph] treats hyperedge members that name no
// node of the hypergraph.
type MemberPolicy int

const (
	// MembersPassThrough emits star edges for every member, resolved or not.
	MembersPassThrough MemberPolicy = iota
	// MembersStrict fails the conversion on the first unresolved member.
	MembersStrict
)

// String returns the policy name.
func (p MemberPolicy) String() string {
	switch p {
	case MembersStrict:
		return "strict"
	default:
		return "pass-through"
	}
}

// ParseMemberPolicy maps "strict" or "pass-through" (case-insensitive) to a policy.
func ParseMemberPolicy(s string) (MemberPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pass-through", "passthrough":
		return MembersPassThrough, nil
	case "strict":
		return MembersStrict, nil
	default:
		return MembersPassThrough, fmt.Errorf("unknown member policy: %s", s)
	}
}

// DiagnosticKind classifies a [Diagnostic].
type DiagnosticKind string

const (
	// DanglingChild is an e-node child key with no matching e-node. The edge is dropped.
	DanglingChild DiagnosticKind = "dangling-child"
	// DanglingMember is a hyperedge member with no matching node.
	DanglingMember DiagnosticKind = "dangling-member"
)

// Diagnostic describes an unresolved reference met during conversion.
// Diagnostics never change the produced graph.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Subject   string         `json:"subject"`   // e-node key or hyperedge id holding the reference
	Reference string         `json:"reference"` // the key or node id that did not resolve
	Index     int            `json:"index"`     // position in the children or member list
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DanglingChild:
		return fmt.Sprintf("e-node %q: child %d references unknown e-node %q", d.Subject, d.Index, d.Reference)
	case DanglingMember:
		return fmt.Sprintf("hyperedge %q: member %d references unknown node %q", d.Subject, d.Index, d.Reference)
	default:
		return fmt.Sprintf("%s: %s[%d] -> %s", d.Kind, d.Subject, d.Index, d.Reference)
	}
}

// Option configures a conversion.
type Option func(*options)

type options struct {
	diagnostics func(Diagnostic)
	members     MemberPolicy
}

// WithDiagnostics registers fn to receive every unresolved reference.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(o *options) { o.diagnostics = fn }
}

// WithMemberPolicy sets the hyperedge member policy. The default is
// [MembersPassThrough].
func WithMemberPolicy(p MemberPolicy) Option {
	return func(o *options) { o.members = p }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) report(d Diagnostic) {
	if o.diagnostics != nil {
		o.diagnostics(d)
	}
}
