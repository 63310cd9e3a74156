// Package curve implements the single-segment cubic Bézier curve used to draw
// connectors, with evaluation, tangents and arc-length sampling.
package curve

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/connline/pkg/geom"
)

// Samples is the number of polyline segments used to approximate arc length.
const Samples = 100

// Cubic is a cubic Bézier segment from P0 to P1 with control points C1, C2.
type Cubic struct {
	P0 geom.Point `json:"p0"`
	C1 geom.Point `json:"c1"`
	C2 geom.Point `json:"c2"`
	P1 geom.Point `json:"p1"`
}

// Eval returns the point at parameter t in [0, 1]. It uses de Casteljau
// subdivision, so coincident control points evaluate exactly.
func (c Cubic) Eval(t float64) geom.Point {
	a, b, d := lerp(c.P0, c.C1, t), lerp(c.C1, c.C2, t), lerp(c.C2, c.P1, t)
	return lerp(lerp(a, b, t), lerp(b, d, t), t)
}

func lerp(p, q geom.Point, t float64) geom.Point {
	return geom.Point{X: lerp1(p.X, q.X, t), Y: lerp1(p.Y, q.Y, t)}
}

func lerp1(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return a*(1-t) + b*t
}

// Derivative returns the (unnormalised) tangent vector at parameter t.
func (c Cubic) Derivative(t float64) geom.Point {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	return geom.Point{
		X: 3*mt2*(c.C1.X-c.P0.X) + 6*mt*t*(c.C2.X-c.C1.X) + 3*t2*(c.P1.X-c.C2.X),
		Y: 3*mt2*(c.C1.Y-c.P0.Y) + 6*mt*t*(c.C2.Y-c.C1.Y) + 3*t2*(c.P1.Y-c.C2.Y),
	}
}

// Translate moves all four points by d.
func (c Cubic) Translate(d geom.Point) Cubic {
	return Cubic{c.P0.Add(d), c.C1.Add(d), c.C2.Add(d), c.P1.Add(d)}
}

// Flatten returns n+1 evenly parameterised points along the curve.
func (c Cubic) Flatten(n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.Eval(float64(i) / float64(n))
	}
	return pts
}

// lengths returns the cumulative polyline length at each sample.
func (c Cubic) lengths() ([]geom.Point, []float64) {
	pts := c.Flatten(Samples)
	acc := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		acc[i] = acc[i-1] + pts[i].Sub(pts[i-1]).Len()
	}
	return pts, acc
}

// Length approximates the arc length of the curve.
func (c Cubic) Length() float64 {
	_, acc := c.lengths()
	return acc[len(acc)-1]
}

// PointAtLength returns the point at arc length s from P0. Values outside
// [0, Length] are clamped to the endpoints.
func (c Cubic) PointAtLength(s float64) geom.Point {
	pts, acc := c.lengths()
	total := acc[len(acc)-1]
	switch {
	case s <= 0 || total == 0:
		return pts[0]
	case s >= total:
		return pts[len(pts)-1]
	}
	i := 1
	for i < len(acc)-1 && acc[i] < s {
		i++
	}
	seg := acc[i] - acc[i-1]
	if seg == 0 {
		return pts[i]
	}
	f := (s - acc[i-1]) / seg
	return pts[i-1].Add(pts[i].Sub(pts[i-1]).Scale(f))
}

// Bounds returns a tight axis-aligned bounding box of the curve.
func (c Cubic) Bounds() geom.Rect {
	minX, maxX := math.Min(c.P0.X, c.P1.X), math.Max(c.P0.X, c.P1.X)
	minY, maxY := math.Min(c.P0.Y, c.P1.Y), math.Max(c.P0.Y, c.P1.Y)
	for _, t := range c.extrema() {
		p := c.Eval(t)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return geom.Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// extrema returns the parameters in (0, 1) where either coordinate's
// derivative vanishes.
func (c Cubic) extrema() []float64 {
	var ts []float64
	axis := func(p0, c1, c2, p1 float64) {
		// B'(t)/3 = a t^2 + b t + k
		a := -p0 + 3*c1 - 3*c2 + p1
		b := 2 * (p0 - 2*c1 + c2)
		k := c1 - p0
		for _, t := range quadRoots(a, b, k) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	axis(c.P0.X, c.C1.X, c.C2.X, c.P1.X)
	axis(c.P0.Y, c.C1.Y, c.C2.Y, c.P1.Y)
	return ts
}

func quadRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Path renders the curve in SVG path syntax: "M x0 y0 C x1 y1 x2 y2 x3 y3".
// Coordinates use the shortest decimal form that round-trips.
func (c Cubic) Path() string {
	var b strings.Builder
	b.WriteString("M ")
	writePair(&b, c.P0)
	b.WriteString(" C ")
	writePair(&b, c.C1)
	b.WriteByte(' ')
	writePair(&b, c.C2)
	b.WriteByte(' ')
	writePair(&b, c.P1)
	return b.String()
}

func writePair(b *strings.Builder, p geom.Point) {
	b.WriteString(FormatCoord(p.X))
	b.WriteByte(' ')
	b.WriteString(FormatCoord(p.Y))
}

// FormatCoord formats a coordinate for path output. Negative zero is
// written as 0.
func FormatCoord(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
