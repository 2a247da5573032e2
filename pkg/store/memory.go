package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps documents in memory in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

func (s *MemoryStore) Put(ctx context.Context, doc Document) (Document, error) {
	doc = prepare(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return doc, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, notFound(id)
	}
	return doc, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Document, error) {
	limit = listLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.docs[s.order[i]])
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
