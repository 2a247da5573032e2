// Package cache stores converted graphs and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: a shared Redis instance (server)
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are content-addressed. A [Keyer] derives the graph key from the
// SHA-256 of the raw input plus the conversion options, and the artifact key
// from the hash of the converted graph plus the render options:
//
//	k := cache.NewDefaultKeyer()
//	gk := k.GraphKey("egraph", cache.Hash(input), cache.GraphKeyOpts{})
//	ak := k.ArtifactKey(cache.Hash(graphJSON), cache.ArtifactKeyOpts{Format: "svg", Engine: "fdp"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes. Keys are content hashes, so entries only expire to bound
// storage.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Keyer
// =============================================================================

// GraphKeyOpts are the conversion options that change a converted graph.
type GraphKeyOpts struct {
	InputFormat  string `json:"input_format,omitempty"`
	MemberPolicy string `json:"member_policy,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Engine   string `json:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey identifies a converted graph by input kind and content hash.
	GraphKey(kind, contentHash string, opts GraphKeyOpts) string

	// ArtifactKey identifies a rendered artifact by graph hash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "graph:<kind>:<hash>" and
// "artifact:<format>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(kind, contentHash string, opts GraphKeyOpts) string {
	return hashKey("graph:"+kind, contentHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, graphHash, opts)
}
