package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/scene"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout lays out every connector of s against the scene's own regions
// merged with remote. It does not touch any cache.
func Layout(s *scene.Scene, remote regions.Table, opts Options) ([]scene.Laid, error) {
	work := s
	if opts.Straight {
		work = straighten(s)
	}
	return work.Layout(work.Engine(remote))
}

// straighten returns a copy of s whose connectors are all straight.
func straighten(s *scene.Scene) *scene.Scene {
	cp := *s
	cp.Connectors = slices.Clone(s.Connectors)
	for i := range cp.Connectors {
		cp.Connectors[i].Options.Straight = true
	}
	return &cp
}

// SceneHash returns the content hash of a scene's JSON form.
func SceneHash(s *scene.Scene) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serialize scene: %w", err)
	}
	return cache.Hash(data), nil
}

// regionsHash returns the content hash of a region table. Map keys are
// marshalled in sorted order, so equal tables hash equally.
func regionsHash(t regions.Table) string {
	if len(t) == 0 {
		return ""
	}
	data, _ := json.Marshal(t)
	return cache.Hash(data)
}
