package geom

import "math"

// Point is a position (or a displacement) in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Angle returns atan2(p.Y, p.X) in screen space.
// The zero vector has angle 0.
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Size is the footprint of a marker or label.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Half returns the offset from a footprint's top-left corner to its centre.
func (s Size) Half() Point { return Point{s.W / 2, s.H / 2} }

// IsZero reports whether the footprint has no area in either axis.
func (s Size) IsZero() bool { return s.W == 0 && s.H == 0 }
