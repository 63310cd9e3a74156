package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/observability"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/scene"
)

// FetchRegions resolves the region refs s uses but does not define. Each
// ref is looked up in the cache first; the rest go to the runner's store in
// one batch. Without a store the result is empty and unresolved refs fall
// back to the zero rectangle at layout time.
func (r *Runner) FetchRegions(ctx context.Context, s *scene.Scene, opts Options) (regions.Table, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	refs := s.Refs()
	table := regions.Table{}
	if r.Regions == nil || len(refs) == 0 {
		return table, nil
	}

	missing := refs
	if !opts.Refresh {
		missing = missing[:0:0]
		for _, ref := range refs {
			if rect, ok := r.cachedRegion(ctx, ref); ok {
				table[ref] = rect
				continue
			}
			missing = append(missing, ref)
		}
	}
	if len(missing) == 0 {
		return table, nil
	}

	start := time.Now()
	fetched, err := regions.Prefetch(ctx, r.Regions, missing, regions.PrefetchOptions{
		Attempts: opts.RegionAttempts,
		Logger:   opts.Logger,
	})
	observability.Pipeline().OnRegionsFetch(ctx, r.RegionsName, len(missing), len(fetched), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for ref, rect := range fetched {
		table[ref] = rect
		if data, err := json.Marshal(rect); err == nil {
			_ = r.Cache.Set(ctx, r.Keyer.RegionKey(r.RegionsName, ref), data, cache.TTLRegions)
			observability.Cache().OnCacheSet(ctx, "region", len(data))
		}
	}
	if n := len(missing) - len(fetched); n > 0 {
		opts.Logger.Warn("regions not found in store", "count", n, "refs", fetched.Missing(missing))
	}
	return table, nil
}

func (r *Runner) cachedRegion(ctx context.Context, ref string) (geom.Rect, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.RegionKey(r.RegionsName, ref))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "region")
		return geom.Rect{}, false
	}
	var rect geom.Rect
	if err := json.Unmarshal(data, &rect); err != nil || !rect.Valid() {
		return geom.Rect{}, false
	}
	observability.Cache().OnCacheHit(ctx, "region")
	return rect, true
}
