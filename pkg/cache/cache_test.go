package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	h := Hash([]byte(`{"nodes":{}}`))

	// GraphKey should include options in hash
	gk1 := k.GraphKey("hypergraph", h, GraphKeyOpts{MemberPolicy: "strict"})
	gk2 := k.GraphKey("hypergraph", h, GraphKeyOpts{MemberPolicy: "pass-through"})
	if gk1 == gk2 {
		t.Error("Different GraphKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(gk1, "graph:hypergraph:") {
		t.Errorf("GraphKey unexpected prefix: %s", gk1)
	}

	// Input format is part of the key
	if k.GraphKey("hypergraph", h, GraphKeyOpts{InputFormat: "json"}) == k.GraphKey("hypergraph", h, GraphKeyOpts{InputFormat: "yaml"}) {
		t.Error("Different input formats should produce different keys")
	}

	// Kind is part of the key
	if k.GraphKey("egraph", h, GraphKeyOpts{}) == k.GraphKey("hypergraph", h, GraphKeyOpts{}) {
		t.Error("Different kinds should produce different keys")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Engine: "fdp"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Engine: "neato"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Engine: "fdp", Detailed: true})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:svg:") {
		t.Errorf("ArtifactKey unexpected prefix: %s", ak1)
	}

	// Deterministic
	if k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"}) != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	// All keys should be prefixed
	graphKey := scoped.GraphKey("egraph", "abc", GraphKeyOpts{})
	if graphKey != "tenant:123:"+inner.GraphKey("egraph", "abc", GraphKeyOpts{}) {
		t.Errorf("ScopedKeyer GraphKey unexpected: %s", graphKey)
	}

	artifactKey := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "dot"})
	if !strings.HasPrefix(artifactKey, "tenant:123:artifact:dot:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", artifactKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.GraphKey("egraph", "h", GraphKeyOpts{})
	if !strings.HasPrefix(key, "prefix:graph:egraph:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k1", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k1) = %q, %v, %v", data, hit, err)
	}

	// Expired entries are misses
	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should be a miss")
	}

	// Corrupt entries are misses
	if err := os.WriteFile(c.path("bad"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v", hit, err)
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k1"); hit {
		t.Error("deleted entry still present")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after Clear: %d entries", len(entries))
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

type recordingCache struct {
	NullCache
	ttls []time.Duration
}

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttls = append(c.ttls, ttl)
	return nil
}

func TestWithTTL(t *testing.T) {
	inner := &recordingCache{}
	c := WithTTL(inner, time.Hour)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("x"), TTLGraph)
	_ = c.Set(ctx, "b", []byte("x"), 0)
	if len(inner.ttls) != 2 || inner.ttls[0] != time.Hour || inner.ttls[1] != time.Hour {
		t.Errorf("ttls = %v, want [1h 1h]", inner.ttls)
	}

	if WithTTL(inner, 0) != Cache(inner) {
		t.Error("WithTTL(c, 0) should return c unchanged")
	}
}
