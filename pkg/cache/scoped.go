package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "eggsposition:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for converted graph caching.
func (k *ScopedKeyer) GraphKey(kind, contentHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(kind, contentHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
