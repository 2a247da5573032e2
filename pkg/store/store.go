// Package store persists converted graphs so they can be fetched and
// rendered again by id.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-process, for development and tests
//   - [FileStore]: one JSON file per document, for single-host deployments
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Document ids are time-ordered UUIDs (version 7) assigned by Put.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
)

// Kind is the input format a document was converted from.
type Kind string

const (
	KindEGraph     Kind = "egraph"
	KindHypergraph Kind = "hypergraph"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Document is a stored conversion.
type Document struct {
	ID        string      `json:"id" bson:"_id"`
	Kind      Kind        `json:"kind" bson:"kind"`
	Name      string      `json:"name,omitempty" bson:"name,omitempty"`
	Source    []byte      `json:"-" bson:"source,omitempty"` // Raw input as uploaded
	Graph     graph.Graph `json:"graph" bson:"graph"`
	Stats     graph.Stats `json:"stats" bson:"stats"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store persists documents. Implementations are safe for concurrent use.
type Store interface {
	// Put stores doc, assigning ID, Stats and CreatedAt, and returns the stored copy.
	Put(ctx context.Context, doc Document) (Document, error)

	// Get returns the document with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (Document, error)

	// List returns up to limit documents, newest first.
	List(ctx context.Context, limit int) ([]Document, error)

	// Delete removes the document with id, or returns a NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// prepare fills the fields Put is responsible for. Ids are UUIDv7, so they
// sort in creation order within a process even when CreatedAt ties.
func prepare(doc Document) Document {
	doc.ID = uuid.Must(uuid.NewV7()).String()
	doc.Stats = doc.Graph.Stats()
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return doc
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "graph not found: %s", id)
}

// newestFirst orders documents by CreatedAt, then ID, both descending.
func newestFirst(a, b Document) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
