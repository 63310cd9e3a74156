package scene

import (
	"fmt"

	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/render"
	"github.com/matzehuels/connline/pkg/target"
)

// Defaults applied to connectors that leave a field unset.
const (
	DefaultEndGlyph  = "➤"
	DefaultLineColor = "black"
	DefaultLineWidth = 1.0
)

// Default endpoints for connectors that omit from or to.
var (
	DefaultFrom = target.AtPoint(0, 0)
	DefaultTo   = target.AtPoint(100, 100)
)

// Scene is a set of connectors sharing one coordinate frame.
type Scene struct {
	// Origin is the absolute position of the frame. Region rectangles are
	// absolute and are shifted by it; explicit targets are frame-relative.
	Origin     geom.Point  `json:"origin"`
	Regions    []Region    `json:"regions,omitempty"`
	Connectors []Connector `json:"connectors"`
}

// Region is a named rectangle in absolute coordinates.
type Region struct {
	Name string    `json:"name"`
	Rect geom.Rect `json:"rect"`
}

// Connector is one connector of a scene with its layout options and look.
type Connector struct {
	ID      string            `json:"id"`
	From    target.Spec       `json:"from"`
	To      target.Spec       `json:"to"`
	Options connector.Options `json:"options"`
	Glyphs  Glyphs            `json:"glyphs"`
	Style   Style             `json:"style"`
}

// Glyphs are the marker texts drawn at the start, end and middle.
type Glyphs struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Mid   string `json:"mid,omitempty"`
}

// Style holds per-connector stroke and text settings.
type Style struct {
	LineColor string  `json:"line_color"`
	LineWidth float64 `json:"line_width"`
	FontSize  float64 `json:"font_size"`
}

// Footprints are the marker sizes used for placement.
type Footprints struct {
	Start geom.Size `json:"start"`
	End   geom.Size `json:"end"`
	Mid   geom.Size `json:"mid"`
}

// Laid is a connector together with its computed geometry.
type Laid struct {
	Connector  Connector         `json:"connector"`
	Result     connector.Result  `json:"layout"`
	Markers    connector.Markers `json:"markers"`
	Footprints Footprints        `json:"footprints"`
}

// NewConnector returns a connector with every default applied.
func NewConnector(id string) Connector {
	return Connector{
		ID:      id,
		From:    DefaultFrom,
		To:      DefaultTo,
		Options: connector.DefaultOptions(),
		Glyphs:  Glyphs{End: DefaultEndGlyph},
		Style:   Style{LineColor: DefaultLineColor, LineWidth: DefaultLineWidth, FontSize: render.DefaultFontSize},
	}
}

// Validate checks identifiers, region geometry, targets and styles.
func (s *Scene) Validate() error {
	names := make(map[string]bool, len(s.Regions))
	for _, r := range s.Regions {
		if err := errors.ValidateRegionRef(r.Name); err != nil {
			return err
		}
		if names[r.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate region %q", r.Name)
		}
		names[r.Name] = true
		if !r.Rect.Valid() {
			return errors.New(errors.ErrCodeInvalidScene, "region %q has invalid rect %+v", r.Name, r.Rect)
		}
	}

	ids := make(map[string]bool, len(s.Connectors))
	for _, c := range s.Connectors {
		if err := errors.ValidateConnectorID(c.ID); err != nil {
			return err
		}
		if ids[c.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate connector id %q", c.ID)
		}
		ids[c.ID] = true
		if err := c.From.Validate(); err != nil {
			return fmt.Errorf("connector %q from: %w", c.ID, err)
		}
		if err := c.To.Validate(); err != nil {
			return fmt.Errorf("connector %q to: %w", c.ID, err)
		}
		if err := errors.ValidateColor(c.Style.LineColor); err != nil {
			return fmt.Errorf("connector %q: %w", c.ID, err)
		}
		if c.Style.LineWidth < 0 {
			return errors.New(errors.ErrCodeInvalidStyle, "connector %q: line width must not be negative", c.ID)
		}
	}
	return nil
}

// Table returns the scene's own regions as a lookup table.
func (s *Scene) Table() regions.Table {
	t := make(regions.Table, len(s.Regions))
	for _, r := range s.Regions {
		t[r.Name] = r.Rect
	}
	return t
}

// Refs returns the region references connectors use that the scene does
// not define itself, in first-use order. These are the refs a remote store
// must supply.
func (s *Scene) Refs() []string {
	var refs []string
	for _, c := range s.Connectors {
		for _, spec := range [...]target.Spec{c.From, c.To} {
			if spec.Kind == target.KindRegion {
				refs = append(refs, spec.Region)
			}
		}
	}
	return s.Table().Missing(refs)
}

// Engine returns a layout engine for this scene. Regions defined in the scene
// take precedence over those in remote.
func (s *Scene) Engine(remote regions.Table) connector.Engine {
	return connector.NewEngine(remote.Merge(s.Table()), target.FixedOrigin(s.Origin))
}

// Layout lays out every connector in order and places its markers.
func (s *Scene) Layout(e connector.Engine) ([]Laid, error) {
	out := make([]Laid, 0, len(s.Connectors))
	for _, c := range s.Connectors {
		res, err := e.Layout(c.From, c.To, c.Options)
		if err != nil {
			return nil, fmt.Errorf("connector %q: %w", c.ID, err)
		}
		fp := Footprints{
			Start: render.GlyphSize(c.Glyphs.Start, c.Style.FontSize),
			End:   render.GlyphSize(c.Glyphs.End, c.Style.FontSize),
			Mid:   render.GlyphSize(c.Glyphs.Mid, c.Style.FontSize),
		}
		out = append(out, Laid{
			Connector:  c,
			Result:     res,
			Markers:    connector.PlaceMarkers(res, fp.Start, fp.End, fp.Mid),
			Footprints: fp,
		})
	}
	return out, nil
}

// Bounds returns the smallest rectangle covering every laid connector's
// frame, in scene coordinates.
func Bounds(laid []Laid) geom.Rect {
	frames := make([]geom.Rect, len(laid))
	for i, l := range laid {
		frames[i] = l.Result.Frame
	}
	return geom.Bounds(frames...)
}
