package scene

import (
	"fmt"

	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/target"
)

// fileScene is the on-disk shape shared by the TOML and JSON formats. The
// HCL decoder converts into it as well.
type fileScene struct {
	Origin     []float64       `toml:"origin" json:"origin,omitempty"`
	Regions    []fileRegion    `toml:"region" json:"regions,omitempty"`
	Connectors []fileConnector `toml:"connector" json:"connectors"`
}

type fileRegion struct {
	Name string    `toml:"name" json:"name"`
	Rect []float64 `toml:"rect" json:"rect"`
}

// fileConnector uses pointers where "unset" and "zero" differ.
type fileConnector struct {
	ID            string         `toml:"id" json:"id"`
	From          target.Spec    `toml:"from" json:"from"`
	To            target.Spec    `toml:"to" json:"to"`
	Padding       *float64       `toml:"padding" json:"padding,omitempty"`
	FromDirection geom.Direction `toml:"from_direction" json:"from_direction,omitempty"`
	ToDirection   geom.Direction `toml:"to_direction" json:"to_direction,omitempty"`
	Straight      bool           `toml:"straight" json:"straight,omitempty"`
	StartGlyph    *string        `toml:"start_glyph" json:"start_glyph,omitempty"`
	EndGlyph      *string        `toml:"end_glyph" json:"end_glyph,omitempty"`
	MidGlyph      *string        `toml:"mid_glyph" json:"mid_glyph,omitempty"`
	LineColor     string         `toml:"line_color" json:"line_color,omitempty"`
	LineWidth     *float64       `toml:"line_width" json:"line_width,omitempty"`
	FontSize      *float64       `toml:"font_size" json:"font_size,omitempty"`
}

// build converts the decoded file into a Scene, applying defaults, and
// validates the result.
func (f *fileScene) build() (*Scene, error) {
	s := &Scene{}

	switch len(f.Origin) {
	case 0:
	case 2:
		s.Origin = geom.Pt(f.Origin[0], f.Origin[1])
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "origin has %d elements, want 2", len(f.Origin))
	}

	for _, r := range f.Regions {
		if len(r.Rect) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "region %q: rect has %d elements, want 4", r.Name, len(r.Rect))
		}
		s.Regions = append(s.Regions, Region{
			Name: r.Name,
			Rect: geom.Rect{Left: r.Rect[0], Top: r.Rect[1], Width: r.Rect[2], Height: r.Rect[3]},
		})
	}

	for i, fc := range f.Connectors {
		s.Connectors = append(s.Connectors, fc.build(i))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (fc fileConnector) build(index int) Connector {
	id := fc.ID
	if id == "" {
		id = fmt.Sprintf("c%d", index+1)
	}
	c := NewConnector(id)
	if fc.From.Kind != target.KindInvalid {
		c.From = fc.From
	}
	if fc.To.Kind != target.KindInvalid {
		c.To = fc.To
	}

	opts := map[string]any{"straight": fc.Straight}
	if fc.Padding != nil {
		opts["padding"] = *fc.Padding
	}
	c.Options = connector.OptionsFromMap(opts)
	c.Options.FromDirection = fc.FromDirection
	c.Options.ToDirection = fc.ToDirection

	if fc.StartGlyph != nil {
		c.Glyphs.Start = *fc.StartGlyph
	}
	if fc.EndGlyph != nil {
		c.Glyphs.End = *fc.EndGlyph
	}
	if fc.MidGlyph != nil {
		c.Glyphs.Mid = *fc.MidGlyph
	}
	if fc.LineColor != "" {
		c.Style.LineColor = fc.LineColor
	}
	if fc.LineWidth != nil {
		c.Style.LineWidth = *fc.LineWidth
	}
	if fc.FontSize != nil && *fc.FontSize > 0 {
		c.Style.FontSize = *fc.FontSize
	}
	return c
}
