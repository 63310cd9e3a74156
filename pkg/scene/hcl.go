package scene

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/target"
)

// hclFile is the HCL shape of a scene:
//
//	origin = [0, 0]
//
//	region "#a" {
//	  rect = [0, 0, 10, 10]
//	}
//
//	connector "a-b" {
//	  from    = "#a"
//	  to      = [100, 5]
//	  padding = 20
//	}
type hclFile struct {
	Origin     []float64      `hcl:"origin,optional"`
	Regions    []hclRegion    `hcl:"region,block"`
	Connectors []hclConnector `hcl:"connector,block"`
}

type hclRegion struct {
	Name string    `hcl:"name,label"`
	Rect []float64 `hcl:"rect"`
}

// hclConnector keeps from/to as raw expressions because a target may be a
// string, a tuple or an object.
type hclConnector struct {
	ID            string         `hcl:"id,label"`
	From          hcl.Expression `hcl:"from,optional"`
	To            hcl.Expression `hcl:"to,optional"`
	Padding       *float64       `hcl:"padding,optional"`
	FromDirection *string        `hcl:"from_direction,optional"`
	ToDirection   *string        `hcl:"to_direction,optional"`
	Straight      *bool          `hcl:"straight,optional"`
	StartGlyph    *string        `hcl:"start_glyph,optional"`
	EndGlyph      *string        `hcl:"end_glyph,optional"`
	MidGlyph      *string        `hcl:"mid_glyph,optional"`
	LineColor     *string        `hcl:"line_color,optional"`
	LineWidth     *float64       `hcl:"line_width,optional"`
	FontSize      *float64       `hcl:"font_size,optional"`
}

func decodeHCL(data []byte, name string) (*fileScene, error) {
	if name == "" {
		name = "scene.hcl"
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, diags, "parse HCL scene %s", name)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, diags, "decode HCL scene %s", name)
	}

	f := &fileScene{Origin: parsed.Origin}
	for _, r := range parsed.Regions {
		f.Regions = append(f.Regions, fileRegion{Name: r.Name, Rect: r.Rect})
	}
	for _, c := range parsed.Connectors {
		fc, err := c.toFile()
		if err != nil {
			return nil, fmt.Errorf("connector %q: %w", c.ID, err)
		}
		f.Connectors = append(f.Connectors, fc)
	}
	return f, nil
}

func (c hclConnector) toFile() (fileConnector, error) {
	fc := fileConnector{
		ID:         c.ID,
		Padding:    c.Padding,
		StartGlyph: c.StartGlyph,
		EndGlyph:   c.EndGlyph,
		MidGlyph:   c.MidGlyph,
		LineWidth:  c.LineWidth,
		FontSize:   c.FontSize,
	}
	if c.FromDirection != nil {
		fc.FromDirection = geom.ParseDirection(*c.FromDirection)
	}
	if c.ToDirection != nil {
		fc.ToDirection = geom.ParseDirection(*c.ToDirection)
	}
	if c.Straight != nil {
		fc.Straight = *c.Straight
	}
	if c.LineColor != nil {
		fc.LineColor = *c.LineColor
	}

	var err error
	if fc.From, err = specFromExpr(c.From); err != nil {
		return fc, fmt.Errorf("from: %w", err)
	}
	if fc.To, err = specFromExpr(c.To); err != nil {
		return fc, fmt.Errorf("to: %w", err)
	}
	return fc, nil
}

// specFromExpr evaluates a target expression. An absent attribute yields the
// zero Spec so the connector default applies.
func specFromExpr(expr hcl.Expression) (target.Spec, error) {
	if expr == nil {
		return target.Spec{}, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return target.Spec{}, errors.Wrap(errors.ErrCodeInvalidTargetSpec, diags, "evaluate target")
	}
	if val.IsNull() {
		return target.Spec{}, nil
	}
	raw, err := ctyToGo(val)
	if err != nil {
		return target.Spec{}, errors.Wrap(errors.ErrCodeInvalidTargetSpec, err, "convert target")
	}
	return target.FromValue(raw)
}

// ctyToGo converts a cty.Value into plain Go values: strings, float64, bool,
// []any and map[string]any.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			f, _ := val.AsBigFloat().Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		}
		return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			conv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = conv
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() {
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			conv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type: %s", ty.FriendlyName())
}
