package cache

// ScopedKeyer wraps a Keyer with a prefix so tenants sharing one backend
// never see each other's entries. The server scopes keys by the
// X-Connline-Namespace header:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "ns:team-a:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sceneHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// RegionKey generates a prefixed region key.
func (k *ScopedKeyer) RegionKey(store, ref string) string {
	return k.prefix + k.inner.RegionKey(store, ref)
}
