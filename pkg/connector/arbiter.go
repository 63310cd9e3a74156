package connector

import (
	"math"

	"github.com/matzehuels/connline/pkg/geom"
)

// AngleBetween returns the direction from the centre of a to the centre of b
// as a mathematical angle in [0, 2π): 0 points right and angles grow
// counter-clockwise on screen, so π/2 means b is above a.
// Coincident centres give 0.
func AngleBetween(a, b geom.Rect) float64 {
	ca, cb := a.Center(), b.Center()
	// Screen y grows downward; flip it so "up" is positive.
	dx := cb.X - ca.X
	dy := ca.Y - cb.Y
	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle >= 2*math.Pi {
		angle = 0
	}
	return angle
}

// DirectionForAngle maps an angle in [0, 2π) to the side the connector leaves
// its source from and the side it enters its destination from. The four
// sectors are centred on the axes:
//
//	[0, π/4) ∪ [7π/4, 2π)  Right -> Left
//	[π/4, 3π/4)            Top -> Bottom
//	[3π/4, 5π/4)           Left -> Right
//	[5π/4, 7π/4)           Bottom -> Top
func DirectionForAngle(angle float64) (from, to geom.Direction) {
	switch {
	case angle >= math.Pi/4 && angle < 3*math.Pi/4:
		return geom.Top, geom.Bottom
	case angle >= 3*math.Pi/4 && angle < 5*math.Pi/4:
		return geom.Left, geom.Right
	case angle >= 5*math.Pi/4 && angle < 7*math.Pi/4:
		return geom.Bottom, geom.Top
	}
	return geom.Right, geom.Left
}

// Arbitrate chooses the endpoint directions for a connector from a to b.
// A set override replaces the arbitrated direction for its own endpoint
// only.
func Arbitrate(a, b geom.Rect, fromOverride, toOverride geom.Direction) (from, to geom.Direction) {
	from, to = DirectionForAngle(AngleBetween(a, b))
	if fromOverride.IsSet() {
		from = fromOverride
	}
	if toOverride.IsSet() {
		to = toOverride
	}
	return from, to
}
