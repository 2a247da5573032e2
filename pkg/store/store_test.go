package store

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
)

func testDoc(name string) Document {
	return Document{
		Kind:   KindHypergraph,
		Name:   name,
		Source: []byte(`{"nodes":[{"id":"a"}],"hyperedges":[]}`),
		Graph: graph.Graph{
			Nodes: []graph.Node{{ID: "a", Label: "A", Fill: "#3b82f6", Size: 10, Kind: graph.KindPrimary}},
			Edges: []graph.Edge{},
		},
	}
}

// exerciseStore runs the shared Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	first, err := s.Put(ctx, testDoc("first"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := errors.ValidateID(first.ID); err != nil {
		t.Errorf("Put assigned invalid id %q: %v", first.ID, err)
	}
	if first.CreatedAt.IsZero() {
		t.Error("Put should set CreatedAt")
	}
	if first.Stats.Nodes != 1 || first.Stats.PrimaryNodes != 1 {
		t.Errorf("Put stats = %+v", first.Stats)
	}

	time.Sleep(2 * time.Millisecond)
	second, err := s.Put(ctx, testDoc("second"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if first.ID == second.ID {
		t.Error("Put should assign unique ids")
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "first" || got.Kind != KindHypergraph || len(got.Graph.Nodes) != 1 {
		t.Errorf("Get = %+v", got)
	}
	if got.Graph.Nodes[0] != first.Graph.Nodes[0] {
		t.Errorf("node = %+v, want %+v", got.Graph.Nodes[0], first.Graph.Nodes[0])
	}
	if string(got.Source) != string(first.Source) {
		t.Errorf("source = %s", got.Source)
	}

	list, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("List order wrong: %v", ids(list))
	}

	limited, err := s.List(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("List(1) = %v, %v", ids(limited), err)
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, first.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete = %v, want NOT_FOUND", err)
	}

	list, _ = s.List(ctx, 0)
	if len(list) != 1 {
		t.Errorf("List after Delete = %v", ids(list))
	}
}

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	if _, err := s.Get(context.Background(), "../etc/passwd"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("path-like id = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreListSameMillisecond(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	var want []string
	for i := range 20 {
		doc, err := s.Put(ctx, testDoc(fmt.Sprintf("doc-%d", i)))
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		want = append([]string{doc.ID}, want...)
	}

	for range 3 {
		list, err := s.List(ctx, 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if got := ids(list); !slices.Equal(got, want) {
			t.Fatalf("List = %v, want newest first %v", got, want)
		}
	}
}

func TestNewestFirst(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: "a", CreatedAt: at},
		{ID: "c", CreatedAt: at},
		{ID: "b", CreatedAt: at.Add(time.Millisecond)},
		{ID: "d", CreatedAt: at.Add(-time.Millisecond)},
	}
	slices.SortFunc(docs, newestFirst)
	if got, want := ids(docs), []string{"b", "c", "a", "d"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestFileStoreEmptyDir(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("expected error for empty dir")
	}
}

func TestMemoryStoreEmptyList(t *testing.T) {
	list, err := NewMemoryStore().List(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List on empty store = %#v", list)
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 20 {
				doc, err := s.Put(ctx, testDoc("c"))
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := s.Get(ctx, doc.ID); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for range 8 {
		<-done
	}
	list, _ := s.List(ctx, 1000)
	if len(list) != 160 {
		t.Errorf("List = %d docs, want 160", len(list))
	}
}
