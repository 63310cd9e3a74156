package geom

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and extent.
// Width and Height are never negative for rectangles produced by this module.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointRect returns the zero-size rectangle located at p.
func PointRect(p Point) Rect { return Rect{Left: p.X, Top: p.Y} }

// Right returns Left+Width.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns Top+Height.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// TopLeft returns the rectangle's origin corner.
func (r Rect) TopLeft() Point { return Point{r.Left, r.Top} }

// Center returns the centre point of the rectangle.
func (r Rect) Center() Point { return Point{r.Left + r.Width/2, r.Top + r.Height/2} }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// IsEmpty reports whether the rectangle has zero area.
func (r Rect) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// Valid reports whether the rectangle has finite coordinates and a
// non-negative extent.
func (r Rect) Valid() bool {
	for _, v := range [...]float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width >= 0 && r.Height >= 0
}

// EdgeMidpoint returns the midpoint of the edge facing d.
// For [Auto] the centre is returned.
func (r Rect) EdgeMidpoint(d Direction) Point {
	c := r.Center()
	switch d {
	case Top:
		return Point{c.X, r.Top}
	case Bottom:
		return Point{c.X, r.Bottom()}
	case Left:
		return Point{r.Left, c.Y}
	case Right:
		return Point{r.Right(), c.Y}
	}
	return c
}

// Outset grows the rectangle by p on all four sides.
func (r Rect) Outset(p float64) Rect {
	return Rect{
		Left:   r.Left - p,
		Top:    r.Top - p,
		Width:  r.Width + 2*p,
		Height: r.Height + 2*p,
	}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Point) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// TranslateToFrame re-expresses r relative to the given frame origin.
func (r Rect) TranslateToFrame(origin Point) Rect {
	return r.Translate(Point{-origin.X, -origin.Y})
}

// Contains reports whether o lies entirely inside r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// OnBoundary reports whether p lies on the rectangle's outline, within eps.
func (r Rect) OnBoundary(p Point, eps float64) bool {
	inX := p.X >= r.Left-eps && p.X <= r.Right()+eps
	inY := p.Y >= r.Top-eps && p.Y <= r.Bottom()+eps
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-r.Left) <= eps || math.Abs(p.X-r.Right()) <= eps ||
		math.Abs(p.Y-r.Top) <= eps || math.Abs(p.Y-r.Bottom()) <= eps
}

// Union returns the smallest rectangle covering a and b, outset by padding
// on all four sides. It is used as the frame of a connector layout.
func Union(a, b Rect, padding float64) Rect {
	left := min(a.Left, b.Left)
	top := min(a.Top, b.Top)
	right := max(a.Right(), b.Right())
	bottom := max(a.Bottom(), b.Bottom())
	return Rect{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}.Outset(padding)
}

// Bounds returns the smallest rectangle covering all of rs, or the zero
// rectangle when rs is empty.
func Bounds(rs ...Rect) Rect {
	if len(rs) == 0 {
		return Rect{}
	}
	out := rs[0]
	for _, r := range rs[1:] {
		out = Union(out, r, 0)
	}
	return out
}
