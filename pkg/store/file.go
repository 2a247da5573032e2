package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/eggsposition/eggsposition/pkg/errors"
)

// FileStore keeps each document as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// fileDocument adds the raw source to the JSON form, which Document omits.
type fileDocument struct {
	Document
	Source []byte `json:"source,omitempty"`
}

// NewFileStore creates a file-based store rooted at baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("file store: empty directory")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Put(ctx context.Context, doc Document) (Document, error) {
	doc = prepare(doc)

	data, err := json.Marshal(fileDocument{Document: doc, Source: doc.Source})
	if err != nil {
		return Document{}, fmt.Errorf("marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.docPath(doc.ID), data, 0o600); err != nil {
		return Document{}, fmt.Errorf("write document file: %w", err)
	}
	return doc, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (Document, error) {
	if err := errors.ValidateID(id); err != nil {
		return Document{}, notFound(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.docPath(id), id)
}

func (s *FileStore) read(path, id string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, notFound(id)
		}
		return Document{}, fmt.Errorf("read document file: %w", err)
	}
	var fd fileDocument
	if err := json.Unmarshal(data, &fd); err != nil {
		return Document{}, fmt.Errorf("parse document %s: %w", id, err)
	}
	fd.Document.Source = fd.Source
	return fd.Document, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Document, error) {
	limit = listLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		doc, err := s.read(filepath.Join(s.baseDir, entry.Name()), id)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	slices.SortFunc(docs, newestFirst)
	if len(docs) > limit {
		docs = docs[:limit]
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return notFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.docPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
