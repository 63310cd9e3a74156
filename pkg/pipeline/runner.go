package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/observability"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its cache, store and logger, so
// multiple goroutines can safely share one with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Regions resolves region refs that scenes leave undefined. Optional.
	Regions regions.Store

	// RegionsName namespaces cached regions per store, e.g. "redis".
	RegionsName string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// WithRegions returns a copy of r that fetches missing regions from store.
func (r *Runner) WithRegions(name string, store regions.Store) *Runner {
	cp := *r
	cp.Regions = store
	cp.RegionsName = name
	return &cp
}

// WithKeyer returns a copy of r using keyer, e.g. a per-tenant ScopedKeyer.
func (r *Runner) WithKeyer(keyer cache.Keyer) *Runner {
	cp := *r
	cp.Keyer = keyer
	return &cp
}

// Execute runs the complete regions → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Regions
	regionsStart := time.Now()
	remote, err := r.FetchRegions(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("regions: %w", err)
	}
	result.Regions = remote
	result.Stats.RegionsWanted = len(s.Refs())
	result.Stats.RegionsFound = len(remote)
	result.Stats.RegionsTime = time.Since(regionsStart)
	if result.Stats.RegionsWanted > 0 {
		r.Logger.Debug("resolved regions",
			"wanted", result.Stats.RegionsWanted,
			"found", result.Stats.RegionsFound,
			"duration", result.Stats.RegionsTime)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	laid, layoutHit, err := r.LayoutWithCacheInfo(ctx, s, remote, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = laid
	result.SceneHash, _ = SceneHash(s)
	result.Stats.Connectors = len(laid)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"connectors", len(laid),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, laid, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out s with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *scene.Scene, remote regions.Table, opts Options) ([]scene.Laid, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	sceneHash, err := SceneHash(s)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts(regionsHash(remote)))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if laid, err := sink.ReadJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return laid, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(s.Connectors))
	laid, err := Layout(s, remote, opts)
	observability.Pipeline().OnLayoutComplete(ctx, len(laid), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := sink.RenderJSON(laid); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return laid, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, s *scene.Scene, remote regions.Table, opts Options) ([]scene.Laid, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, s, remote, opts)
	return laid, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The hit flag is true only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, laid []scene.Laid, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The key covers the geometry and the scene, which supplies region
	// outlines and overview nodes.
	layoutData, err := sink.RenderJSON(laid)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	sceneHash, err := SceneHash(s)
	if err != nil {
		return nil, false, err
	}
	keyHash := cache.Hash(append(layoutData, sceneHash...))

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
			continue
		}
		break
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, s, laid, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, laid []scene.Laid, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, laid, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
