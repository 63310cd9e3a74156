package target

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
)

// Kind identifies which variant a [Spec] holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPoint
	KindRect
	KindRegion
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindRect:
		return "rect"
	case KindRegion:
		return "region"
	}
	return "invalid"
}

// Spec describes one end of a connector: an explicit point, an explicit
// rectangle, or a reference to a named region resolved through a [Lookup].
// The zero value is invalid.
type Spec struct {
	Kind   Kind
	Point  geom.Point
	Rect   geom.Rect
	Region string
}

// AtPoint returns a point target.
func AtPoint(x, y float64) Spec { return Spec{Kind: KindPoint, Point: geom.Pt(x, y)} }

// InRect returns an explicit rectangle target.
func InRect(r geom.Rect) Spec { return Spec{Kind: KindRect, Rect: r} }

// Ref returns a named region target.
func Ref(name string) Spec { return Spec{Kind: KindRegion, Region: name} }

// String renders the spec for display and logs.
func (s Spec) String() string {
	switch s.Kind {
	case KindPoint:
		return formatNum(s.Point.X) + ", " + formatNum(s.Point.Y)
	case KindRect:
		return "[" + formatNum(s.Rect.Left) + ", " + formatNum(s.Rect.Top) + ", " +
			formatNum(s.Rect.Width) + ", " + formatNum(s.Rect.Height) + "]"
	case KindRegion:
		return s.Region
	}
	return "<invalid>"
}

func formatNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Validate reports ErrCodeInvalidTargetSpec for specs that cannot be resolved.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindPoint:
		if !finite(s.Point.X) || !finite(s.Point.Y) {
			return errors.New(errors.ErrCodeInvalidTargetSpec, "point target has non-finite coordinates")
		}
	case KindRect:
		if !s.Rect.Valid() {
			return errors.New(errors.ErrCodeInvalidTargetSpec, "rect target %v is not a valid rectangle", s.Rect)
		}
	case KindRegion:
		// Any reference is acceptable; unknown ones resolve to the zero rect.
	default:
		return errors.New(errors.ErrCodeInvalidTargetSpec, "target has no point, rect or region")
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

var numericToken = regexp.MustCompile(`^\s*[+-]?[0-9.]`)

// numberPrefix matches the longest leading decimal number of a token.
var numberPrefix = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?`)

// Parse interprets a string target. A string made of exactly two
// comma-separated numeric tokens is a point ("12, 40"); anything else is a
// region reference. Numeric tokens use their longest leading number, and a
// token with no usable number parses as 0.
func Parse(s string) Spec {
	parts := strings.Split(s, ",")
	if len(parts) == 2 && numericToken.MatchString(parts[0]) && numericToken.MatchString(parts[1]) {
		return AtPoint(parseNumber(parts[0]), parseNumber(parts[1]))
	}
	return Ref(strings.TrimSpace(s))
}

func parseNumber(tok string) float64 {
	m := numberPrefix.FindString(strings.TrimSpace(tok))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || !finite(v) {
		return 0
	}
	return v
}

// FromValue converts loosely typed input, as produced by JSON, TOML or HCL
// decoders, into a Spec. Accepted shapes:
//
//   - string: see [Parse]
//   - [x, y] or [left, top, width, height] as any numeric slice or array
//   - map with "x"/"y" keys, or "left"/"top"/"width"/"height" keys
//   - geom.Point, geom.Rect, or an existing Spec
//
// Anything else yields an ErrCodeInvalidTargetSpec error.
func FromValue(v any) (Spec, error) {
	var s Spec
	switch x := v.(type) {
	case Spec:
		s = x
	case *Spec:
		if x == nil {
			return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "nil target")
		}
		s = *x
	case string:
		if strings.TrimSpace(x) == "" {
			return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "empty target string")
		}
		s = Parse(x)
	case geom.Point:
		s = Spec{Kind: KindPoint, Point: x}
	case geom.Rect:
		s = InRect(x)
	case []float64:
		return fromNumbers(x)
	case [2]float64:
		return fromNumbers(x[:])
	case [4]float64:
		return fromNumbers(x[:])
	case []int:
		nums := make([]float64, len(x))
		for i, n := range x {
			nums[i] = float64(n)
		}
		return fromNumbers(nums)
	case []any:
		nums := make([]float64, len(x))
		for i, e := range x {
			n, ok := toFloat(e)
			if !ok {
				return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "target element %d is %T, want number", i, e)
			}
			nums[i] = n
		}
		return fromNumbers(nums)
	case map[string]any:
		return fromMap(x)
	case nil:
		return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "missing target")
	default:
		return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "unsupported target type %T", v)
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

func fromNumbers(n []float64) (Spec, error) {
	var s Spec
	switch len(n) {
	case 2:
		s = AtPoint(n[0], n[1])
	case 4:
		s = InRect(geom.Rect{Left: n[0], Top: n[1], Width: n[2], Height: n[3]})
	default:
		return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "target list has %d elements, want 2 or 4", len(n))
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

func fromMap(m map[string]any) (Spec, error) {
	get := func(key string) (float64, bool, error) {
		raw, ok := m[key]
		if !ok {
			return 0, false, nil
		}
		f, ok := toFloat(raw)
		if !ok {
			return 0, true, errors.New(errors.ErrCodeInvalidTargetSpec, "target field %q is %T, want number", key, raw)
		}
		return f, true, nil
	}

	if ref, ok := m["region"]; ok {
		name, isStr := ref.(string)
		if !isStr || strings.TrimSpace(name) == "" {
			return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "target region must be a non-empty string")
		}
		return Ref(strings.TrimSpace(name)), nil
	}

	var vals [6]float64
	var has [6]bool
	for i, key := range [...]string{"x", "y", "left", "top", "width", "height"} {
		f, ok, err := get(key)
		if err != nil {
			return Spec{}, err
		}
		vals[i], has[i] = f, ok
	}

	switch {
	case has[0] && has[1] && !has[2] && !has[3]:
		return fromNumbers([]float64{vals[0], vals[1]})
	case has[2] && has[3] && !has[0] && !has[1]:
		return fromNumbers([]float64{vals[2], vals[3], vals[4], vals[5]})
	}
	return Spec{}, errors.New(errors.ErrCodeInvalidTargetSpec, "target object needs x/y or left/top[/width/height]")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// MarshalJSON encodes points as [x, y], rects as [left, top, width, height]
// and regions as strings.
func (s Spec) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindPoint:
		return json.Marshal([2]float64{s.Point.X, s.Point.Y})
	case KindRect:
		return json.Marshal([4]float64{s.Rect.Left, s.Rect.Top, s.Rect.Width, s.Rect.Height})
	case KindRegion:
		return json.Marshal(s.Region)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts every shape [FromValue] does.
func (s *Spec) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTargetSpec, err, "decode target")
	}
	if raw == nil {
		*s = Spec{}
		return nil
	}
	v, err := FromValue(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalTOML implements the BurntSushi/toml Unmarshaler interface.
func (s *Spec) UnmarshalTOML(v any) error {
	out, err := FromValue(v)
	if err != nil {
		return err
	}
	*s = out
	return nil
}
