package target

import "github.com/matzehuels/connline/pkg/geom"

// Lookup finds the absolute rectangle of a named region. The second return
// value is false when the region is unknown.
type Lookup interface {
	Lookup(ref string) (geom.Rect, bool)
}

// LookupFunc adapts an ordinary function to the [Lookup] interface.
type LookupFunc func(ref string) (geom.Rect, bool)

// Lookup calls f(ref).
func (f LookupFunc) Lookup(ref string) (geom.Rect, bool) { return f(ref) }

// OriginProvider reports the absolute position of the coordinate frame that
// layouts are expressed in.
type OriginProvider interface {
	FrameOrigin() geom.Point
}

// FixedOrigin is an OriginProvider with a constant origin.
type FixedOrigin geom.Point

// FrameOrigin returns the fixed origin.
func (o FixedOrigin) FrameOrigin() geom.Point { return geom.Point(o) }

// Resolver turns target specs into frame-relative rectangles.
//
// Regions and Origin may be nil: unknown regions (and all regions when
// Regions is nil) resolve to the zero rectangle, and a nil Origin means the
// frame origin is (0, 0).
type Resolver struct {
	Regions Lookup
	Origin  OriginProvider
}

// Resolve returns the rectangle for spec in the resolver's frame.
//
// Points become zero-size rectangles and explicit rectangles are returned as
// given, since both are already frame-relative. Region references are looked
// up and translated from absolute coordinates into the frame; a lookup miss
// yields Rect{0, 0, 0, 0}. Only a spec that fails [Spec.Validate] is an error.
func (r Resolver) Resolve(spec Spec) (geom.Rect, error) {
	if err := spec.Validate(); err != nil {
		return geom.Rect{}, err
	}
	switch spec.Kind {
	case KindPoint:
		return geom.PointRect(spec.Point), nil
	case KindRect:
		return spec.Rect, nil
	}

	if r.Regions == nil {
		return geom.Rect{}, nil
	}
	abs, ok := r.Regions.Lookup(spec.Region)
	if !ok || !abs.Valid() {
		return geom.Rect{}, nil
	}
	return abs.TranslateToFrame(r.origin()), nil
}

func (r Resolver) origin() geom.Point {
	if r.Origin == nil {
		return geom.Point{}
	}
	return r.Origin.FrameOrigin()
}
