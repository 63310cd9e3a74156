// Package term draws laid-out scenes into terminal cells with tcell.
//
// The drawing is scaled to fit the screen, then zoomed and panned by
// [Options]. Cells are assumed to be twice as tall as they are wide.
//
//	screen, _ := tcell.NewScreen()
//	screen.Init()
//	term.Draw(screen, laid, term.Options{Scene: s})
//	screen.Show()
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

// Options controls the preview.
type Options struct {
	// Scene supplies region outlines. Nil draws connectors only.
	Scene *scene.Scene

	// Selected highlights the connector with this ID.
	Selected string

	// Zoom multiplies the fit-to-screen scale. Zero means 1.
	Zoom float64

	// PanX and PanY shift the drawing by whole cells.
	PanX, PanY int
}

var (
	styleRegion   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Viewport maps scene frame coordinates to cells.
type Viewport struct {
	Bounds geom.Rect
	ScaleX float64
	ScaleY float64
	PanX   int
	PanY   int
}

// Cell returns the cell for p.
func (v Viewport) Cell(p geom.Point) (int, int) {
	x := int(math.Round((p.X-v.Bounds.Left)*v.ScaleX)) + v.PanX
	y := int(math.Round((p.Y-v.Bounds.Top)*v.ScaleY)) + v.PanY
	return x, y
}

// Fit returns the viewport that fits laid (and the scene's regions) into a
// w by h cell screen.
func Fit(laid []scene.Laid, opts Options, w, h int) Viewport {
	rects := make([]geom.Rect, 0, len(laid))
	for _, l := range laid {
		rects = append(rects, l.Result.Frame)
	}
	for _, r := range regions(opts.Scene) {
		rects = append(rects, r.Rect)
	}
	b := geom.Bounds(rects...)

	s := 1.0
	if b.Width > 0 && b.Height > 0 && w > 1 && h > 1 {
		s = math.Min(float64(w-1)/b.Width, 2*float64(h-1)/b.Height)
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	s *= zoom
	return Viewport{Bounds: b, ScaleX: s, ScaleY: s / 2, PanX: opts.PanX, PanY: opts.PanY}
}

// Draw clears screen and draws regions, curves and markers. It does not
// call Show.
func Draw(screen tcell.Screen, laid []scene.Laid, opts Options) Viewport {
	screen.Clear()
	w, h := screen.Size()
	v := Fit(laid, opts, w, h)

	for _, r := range regions(opts.Scene) {
		drawBox(screen, v, r.Rect, r.Name)
	}
	for _, l := range laid {
		style := connectorStyle(l)
		if l.Connector.ID == opts.Selected {
			style = styleSelected
		}
		drawCurve(screen, v, l.Result.Absolute(), style)
		drawMarkers(screen, v, l, style)
	}
	return v
}

type frameRegion struct {
	Name string
	Rect geom.Rect
}

func regions(s *scene.Scene) []frameRegion {
	if s == nil {
		return nil
	}
	out := make([]frameRegion, len(s.Regions))
	for i, r := range s.Regions {
		out[i] = frameRegion{Name: r.Name, Rect: r.Rect.TranslateToFrame(s.Origin)}
	}
	return out
}

func connectorStyle(l scene.Laid) tcell.Style {
	c := tcell.GetColor(l.Connector.Style.LineColor)
	if c == tcell.ColorDefault || c == tcell.ColorBlack {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(c)
}

func drawBox(screen tcell.Screen, v Viewport, r geom.Rect, name string) {
	x0, y0 := v.Cell(r.TopLeft())
	if r.IsEmpty() {
		// Zero-area regions are anchors, not boxes.
		screen.SetContent(x0, y0, '◇', nil, styleRegion)
		for i, c := range []rune(name) {
			screen.SetContent(x0+1+i, y0, c, nil, styleLabel)
		}
		return
	}
	x1, y1 := v.Cell(geom.Pt(r.Right(), r.Bottom()))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for x := x0 + 1; x < x1; x++ {
		screen.SetContent(x, y0, '─', nil, styleRegion)
		screen.SetContent(x, y1, '─', nil, styleRegion)
	}
	for y := y0 + 1; y < y1; y++ {
		screen.SetContent(x0, y, '│', nil, styleRegion)
		screen.SetContent(x1, y, '│', nil, styleRegion)
	}
	screen.SetContent(x0, y0, '┌', nil, styleRegion)
	screen.SetContent(x1, y0, '┐', nil, styleRegion)
	screen.SetContent(x0, y1, '└', nil, styleRegion)
	screen.SetContent(x1, y1, '┘', nil, styleRegion)

	x := x0 + 1
	for _, r := range name {
		if x >= x1 {
			break
		}
		screen.SetContent(x, y0, r, nil, styleLabel)
		x++
	}
}

// drawCurve plots the curve densely enough that consecutive samples land in
// adjacent cells, picking a line character from the local slope.
func drawCurve(screen tcell.Screen, v Viewport, c curve.Cubic, style tcell.Style) {
	n := int(c.Length()*math.Max(v.ScaleX, v.ScaleY)*2) + 2
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := v.Cell(c.Eval(t))
		d := c.Derivative(t)
		screen.SetContent(x, y, slopeRune(d.X*v.ScaleX, d.Y*v.ScaleY), nil, style)
	}
}

func slopeRune(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '·'
	}
	a := math.Atan2(dy, dx)
	switch sector(a, 4) {
	case 0:
		return '─'
	case 1:
		return '╲'
	case 2:
		return '│'
	default:
		return '╱'
	}
}

// sector splits the circle into 2n sectors centred on multiples of π/n and
// folds opposite sectors together when n is 4.
func sector(a float64, n int) int {
	step := math.Pi / float64(n)
	s := int(math.Floor((a+step/2)/step)) % (2 * n)
	if s < 0 {
		s += 2 * n
	}
	return s % n
}

var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrowRune returns the arrow closest to an angle in screen coordinates.
func arrowRune(a float64) rune {
	step := math.Pi / 4
	s := int(math.Floor((a+step/2)/step)) % 8
	if s < 0 {
		s += 8
	}
	return arrows[s]
}

func drawMarkers(screen tcell.Screen, v Viewport, l scene.Laid, style tcell.Style) {
	g, m, fp, res := l.Connector.Glyphs, l.Markers, l.Footprints, l.Result
	if g.End != "" {
		x, y := v.Cell(res.ToFrame(m.End.Center(fp.End)))
		screen.SetContent(x, y, arrowRune(m.End.Rotation), nil, style)
	}
	if g.Start != "" {
		x, y := v.Cell(res.ToFrame(m.Start.Center(fp.Start)))
		screen.SetContent(x, y, []rune(g.Start)[0], nil, style)
	}
	if g.Mid != "" {
		x, y := v.Cell(res.ToFrame(m.Mid.Center(fp.Mid)))
		for i, r := range []rune(g.Mid) {
			screen.SetContent(x+i, y, r, nil, style)
		}
	}
}
