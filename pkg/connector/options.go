package connector

import (
	"github.com/matzehuels/connline/pkg/geom"
)

// DefaultPadding is the padding used when none is supplied.
const DefaultPadding = 20.0

// Options controls a single layout.
type Options struct {
	// Padding grows the frame around both rectangles and sets how far the
	// control points sit from their anchors. Negative values clamp to 0.
	Padding float64 `json:"padding"`

	// FromDirection and ToDirection override arbitration for one endpoint
	// each. Auto (the zero value) means arbitrate.
	FromDirection geom.Direction `json:"from_direction,omitempty"`
	ToDirection   geom.Direction `json:"to_direction,omitempty"`

	// Straight places the control points on the anchors, producing a
	// straight segment instead of a curve.
	Straight bool `json:"straight,omitempty"`
}

// DefaultOptions returns a fresh set of default options.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding}
}

// normalized returns o with out-of-range values replaced.
func (o Options) normalized() Options {
	if o.Padding < 0 || o.Padding != o.Padding {
		o.Padding = 0
	}
	if !o.FromDirection.IsSet() {
		o.FromDirection = geom.Auto
	}
	if !o.ToDirection.IsSet() {
		o.ToDirection = geom.Auto
	}
	return o
}

// OptionsFromMap converts loosely typed key/value input into Options,
// starting from [DefaultOptions]. Recognised keys are "padding",
// "from_direction" (or "fromDirection"), "to_direction" (or "toDirection")
// and "straight". Malformed values keep their defaults; unknown keys are
// ignored.
func OptionsFromMap(m map[string]any) Options {
	o := DefaultOptions()
	if v, ok := number(m["padding"]); ok {
		o.Padding = v
	}
	o.FromDirection = direction(m, "from_direction", "fromDirection")
	o.ToDirection = direction(m, "to_direction", "toDirection")
	if b, ok := m["straight"].(bool); ok {
		o.Straight = b
	}
	return o.normalized()
}

func direction(m map[string]any, keys ...string) geom.Direction {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return geom.ParseDirection(s)
		}
	}
	return geom.Auto
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
