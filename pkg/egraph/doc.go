// Package egraph parses the egraph-serialize JSON format.
//
// # Overview
//
// An e-graph groups equivalent terms into equivalence classes (e-classes).
// The serialized form lists every e-node under a unique key; each e-node
// names its operator, its ordered children (keys of other e-nodes) and the
// e-class it belongs to. E-classes are implicit: the set of nodes sharing an
// eclass id.
//
// # JSON Format
//
//	{
//	  "nodes": {
//	    "n1": {"op": "a", "eclass": "e1"},
//	    "n2": {"op": "b", "eclass": "e1", "children": ["n1"], "cost": 1.0}
//	  },
//	  "root_eclasses": ["e1"],
//	  "class_data": {"e1": {"type": "Math"}}
//	}
//
// # Key Order
//
// The order of keys in the "nodes" object is significant for downstream
// conversion (colour assignment and output order). [NodeMap] preserves the
// input order. A duplicated key keeps the position of its first occurrence
// and the value of its last.
//
// # Errors
//
// [Parse] fails with [errors.ErrCodeInvalidJSON] when the text is not JSON and
// with [errors.ErrCodeInvalidEGraph] when the "nodes" field is missing or is
// not an object. Individual nodes are not validated: ids of any scalar type
// are read as text, wrong-typed fields are left at their zero value, and
// dangling child references are kept for converters to drop.
//
// [errors.ErrCodeInvalidJSON]: github.com/eggsposition/eggsposition/pkg/errors.ErrCodeInvalidJSON
// [errors.ErrCodeInvalidEGraph]: github.com/eggsposition/eggsposition/pkg/errors.ErrCodeInvalidEGraph
package egraph
