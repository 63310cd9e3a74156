package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies the layout of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// RegionKey identifies a region rect fetched from a remote store.
	RegionKey(store, ref string) string
}

// LayoutKeyOpts holds the layout inputs that are not part of the scene.
type LayoutKeyOpts struct {
	Straight    bool   `json:"straight"`
	RegionsHash string `json:"regions_hash,omitempty"`
}

// ArtifactKeyOpts holds the render inputs of an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Scale    float64 `json:"scale"`
	Margin   float64 `json:"margin"`
	Regions  bool    `json:"regions"`
	Detailed bool    `json:"detailed"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

// RegionKey returns "region:<store>:<ref>". Refs are short, so they stay readable.
func (DefaultKeyer) RegionKey(store, ref string) string {
	return fmt.Sprintf("region:%s:%s", store, ref)
}

var _ Keyer = DefaultKeyer{}
