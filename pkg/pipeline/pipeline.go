// Package pipeline runs the regions → layout → render pipeline for connline.
//
// The CLI and the HTTP server both drive scenes through a [Runner] so they
// share caching, validation and defaults.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Regions: fetch region rectangles the scene references but does not
//     define from a remote [regions.Store]
//  2. Layout: lay out every connector and place its markers
//  3. Render: produce output in the requested formats (SVG, PNG, PDF,
//     JSON, DOT, overview SVG)
//
// Layouts and artifacts are cached by content hash, so re-rendering an
// unchanged scene is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [regions.Store]: github.com/matzehuels/connline/pkg/regions
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStyle is the default stroke style.
	DefaultStyle = sink.StylePlain

	// DefaultScale is the default PNG pixels per layout unit.
	DefaultScale = sink.DefaultScale

	// DefaultMargin is the default whitespace around rendered output.
	DefaultMargin = sink.DefaultMargin

	// DefaultRegionAttempts is how often a region fetch is tried.
	DefaultRegionAttempts = 3
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatOverview = "overview"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatOverview: true,
}

// ValidStyles is the set of supported stroke styles.
var ValidStyles = map[string]bool{
	sink.StylePlain:  true,
	sink.StyleDashed: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatOverview {
		return "overview.svg"
	}
	return format
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatOverview:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests and TOML for the
// CLI config file.
type Options struct {
	// Region options
	RegionAttempts int  `json:"region_attempts,omitempty" toml:"region_attempts"`
	Refresh        bool `json:"refresh,omitempty" toml:"-"` // Bypass cached regions and layouts

	// Layout options
	Straight bool `json:"straight,omitempty" toml:"straight"` // Force straight segments for every connector

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Style       string   `json:"style,omitempty" toml:"style"`
	Scale       float64  `json:"scale,omitempty" toml:"scale"`
	Margin      *float64 `json:"margin,omitempty" toml:"margin"`
	ShowRegions bool     `json:"show_regions,omitempty" toml:"show_regions"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed"` // Side names in DOT and overview labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the scene as laid out.
	SceneHash string

	// Regions are the rectangles fetched from the region store.
	Regions regions.Table

	// Layout holds one laid connector per scene connector, in order.
	Layout []scene.Laid

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Connectors    int
	RegionsWanted int
	RegionsFound  int
	RegionsTime   time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, overview)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: plain, dashed)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults for the full pipeline and checks
// render settings. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for region fetching and layout.
func (o *Options) SetLayoutDefaults() {
	if o.RegionAttempts <= 0 {
		o.RegionAttempts = DefaultRegionAttempts
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Margin == nil {
		m := DefaultMargin
		o.Margin = &m
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if *o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative")
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(regionsHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Straight:    o.Straight,
		RegionsHash: regionsHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	margin := DefaultMargin
	if o.Margin != nil {
		margin = *o.Margin
	}
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Scale:    o.Scale,
		Margin:   margin,
		Regions:  o.ShowRegions,
		Detailed: o.Detailed,
	}
}

// sinkOptions converts render settings to sink options.
func (o *Options) sinkOptions(s *scene.Scene) []sink.Option {
	opts := []sink.Option{sink.WithStyle(o.Style), sink.WithScale(o.Scale)}
	if o.Margin != nil {
		opts = append(opts, sink.WithMargin(*o.Margin))
	}
	if o.ShowRegions {
		opts = append(opts, sink.WithRegions(s))
	}
	return opts
}
