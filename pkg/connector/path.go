package connector

import (
	"math"

	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
)

// Result is the geometry of one laid-out connector.
//
// Frame is expressed in the caller's coordinate frame (the frame targets
// were resolved into). Everything else is relative to Frame's top-left
// corner, so a renderer can place a canvas of Frame's size at Frame's
// position and draw Curve into it directly.
type Result struct {
	Frame             geom.Rect      `json:"frame"`
	Curve             curve.Cubic    `json:"curve"`
	FromAnchor        geom.Point     `json:"from_anchor"`
	ToAnchor          geom.Point     `json:"to_anchor"`
	FromDirection     geom.Direction `json:"from_direction"`
	ToDirection       geom.Direction `json:"to_direction"`
	StartTangentAngle float64        `json:"start_tangent_angle"`
	EndTangentAngle   float64        `json:"end_tangent_angle"`
}

// Path returns the curve in SVG path syntax, relative to Frame.
func (r Result) Path() string { return r.Curve.Path() }

// Absolute returns the curve translated back into the caller's frame.
func (r Result) Absolute() curve.Cubic { return r.Curve.Translate(r.Frame.TopLeft()) }

// ToFrame converts a frame-local point into the caller's frame.
func (r Result) ToFrame(p geom.Point) geom.Point { return p.Add(r.Frame.TopLeft()) }

// Build computes the padded frame, anchors, control points and tangent
// angles for a connector between two rectangles whose directions are
// already decided. Degenerate frames are not clamped.
func Build(from, to geom.Rect, fromDir, toDir geom.Direction, padding float64) Result {
	return build(from, to, fromDir, toDir, padding, false)
}

func build(from, to geom.Rect, fromDir, toDir geom.Direction, padding float64, straight bool) Result {
	if padding < 0 || math.IsNaN(padding) {
		padding = 0
	}
	frame := geom.Union(from, to, padding)
	origin := frame.TopLeft()

	p0 := from.EdgeMidpoint(fromDir).Sub(origin)
	p1 := to.EdgeMidpoint(toDir).Sub(origin)

	c1, c2 := p0, p1
	if !straight {
		c1 = p0.Add(fromDir.Normal().Scale(padding))
		c2 = p1.Add(toDir.Normal().Scale(padding))
	}

	return Result{
		Frame:             frame,
		Curve:             curve.Cubic{P0: p0, C1: c1, C2: c2, P1: p1},
		FromAnchor:        p0,
		ToAnchor:          p1,
		FromDirection:     fromDir,
		ToDirection:       toDir,
		StartTangentAngle: firstAngle(c1.Sub(p0), c2.Sub(p0), p1.Sub(p0)),
		EndTangentAngle:   firstAngle(p1.Sub(c2), p1.Sub(c1), p1.Sub(p0)),
	}
}

// firstAngle returns the angle of the first non-zero vector. When a control
// point coincides with its anchor the curve's limiting tangent follows the
// next distinct control point.
func firstAngle(vs ...geom.Point) float64 {
	for _, v := range vs {
		if v != (geom.Point{}) {
			return v.Angle()
		}
	}
	return 0
}
