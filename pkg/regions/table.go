package regions

import (
	"maps"
	"slices"

	"github.com/matzehuels/connline/pkg/geom"
)

// Table maps region references to absolute rectangles. It implements
// target.Lookup and is the form every [Store] is flattened into before a
// layout runs.
type Table map[string]geom.Rect

// Lookup returns the rectangle registered under ref.
func (t Table) Lookup(ref string) (geom.Rect, bool) {
	r, ok := t[ref]
	return r, ok
}

// Refs returns the registered references in sorted order.
func (t Table) Refs() []string {
	return slices.Sorted(maps.Keys(t))
}

// Merge returns a new table holding t's entries overlaid with other's.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	maps.Copy(out, t)
	maps.Copy(out, other)
	return out
}

// Missing returns the refs that t has no entry for, in input order and
// without duplicates.
func (t Table) Missing(refs []string) []string {
	var out []string
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if _, ok := t[ref]; ok || seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
