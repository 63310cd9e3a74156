package sink

import (
	"math"

	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

// Stroke styles.
const (
	StylePlain  = "plain"
	StyleDashed = "dashed"
)

// Defaults for rendering.
const (
	DefaultMargin = 10.0
	DefaultScale  = 2.0
)

// Option configures a sink.
type Option func(*renderer)

type renderer struct {
	style   string
	regions []scene.Region
	origin  geom.Point
	margin  float64
	scale   float64
}

// WithStyle selects the stroke style. Unknown styles draw plain strokes.
func WithStyle(style string) Option { return func(r *renderer) { r.style = style } }

// WithRegions outlines the scene's regions.
func WithRegions(s *scene.Scene) Option {
	return func(r *renderer) {
		if s != nil {
			r.regions = s.Regions
			r.origin = s.Origin
		}
	}
}

// WithMargin sets the whitespace around the drawing. Negative margins are
// treated as zero.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = max(m, 0) } }

// WithScale sets the PNG pixels per layout unit.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{style: StylePlain, margin: DefaultMargin, scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// frameRegions returns the region outlines in scene frame coordinates.
func (r *renderer) frameRegions() []geom.Rect {
	out := make([]geom.Rect, len(r.regions))
	for i, reg := range r.regions {
		out[i] = reg.Rect.TranslateToFrame(r.origin)
	}
	return out
}

// canvas returns the drawing area in scene frame coordinates.
func (r *renderer) canvas(laid []scene.Laid) geom.Rect {
	var rects []geom.Rect
	for _, l := range laid {
		rects = append(rects, l.Result.Frame)
		for _, m := range markers(l) {
			rects = append(rects, geom.Rect{
				Left: m.center.X - m.size.W/2, Top: m.center.Y - m.size.H/2,
				Width: m.size.W, Height: m.size.H,
			})
		}
	}
	rects = append(rects, r.frameRegions()...)
	return geom.Bounds(rects...).Outset(r.margin)
}

// marker is a glyph ready to draw: centre in scene frame coordinates.
type marker struct {
	glyph    string
	center   geom.Point
	size     geom.Size
	rotation float64
}

// markers returns the non-empty markers of l.
func markers(l scene.Laid) []marker {
	g, fp, m, res := l.Connector.Glyphs, l.Footprints, l.Markers, l.Result
	all := []marker{
		{g.Start, res.ToFrame(m.Start.Center(fp.Start)), fp.Start, m.Start.Rotation},
		{g.End, res.ToFrame(m.End.Center(fp.End)), fp.End, m.End.Rotation},
		{g.Mid, res.ToFrame(m.Mid.Center(fp.Mid)), fp.Mid, m.Mid.Rotation},
	}
	out := all[:0]
	for _, mk := range all {
		if mk.glyph != "" {
			out = append(out, mk)
		}
	}
	return out
}

// dashPattern returns the dash and gap lengths for a stroke of width w.
func dashPattern(w float64) (dash, gap float64) {
	w = math.Max(w, 1)
	return 6 * w, 4 * w
}
