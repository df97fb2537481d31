package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects or users
// can share one backend without key collisions, e.g. one Redis instance
// behind several service deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// NetKey generates a prefixed key for a transformed network.
func (k *ScopedKeyer) NetKey(sourceHash string, opts NetKeyOpts) string {
	return k.prefix + k.inner.NetKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(netHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(netHash, opts)
}
