package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

// supersample is the oversampling factor applied before downscaling.
const supersample = 2

// arrowGlyphs are drawn as filled triangles; Go Regular has no glyph for them.
var arrowGlyphs = map[string]bool{"➤": true, "▶": true, "►": true, "→": true, ">": true}

// RenderPNG rasterises laid. The curve is flattened and stroked with a
// vector rasterizer at twice the output resolution, then downscaled with
// Catmull-Rom filtering.
func RenderPNG(laid []scene.Laid, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c := r.canvas(laid)
	k := r.scale * supersample
	w := max(int(math.Ceil(c.Width*r.scale)), 1)
	h := max(int(math.Ceil(c.Height*r.scale)), 1)

	large := image.NewRGBA(image.Rect(0, 0, w*supersample, h*supersample))
	draw.Draw(large, large.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)

	rc := &rasterContext{img: large, origin: c.TopLeft(), k: k}
	for _, rect := range r.frameRegions() {
		rc.strokeRect(rect, 1, colornames.Darkgray)
	}
	for _, l := range laid {
		if err := r.rasterConnector(rc, l); err != nil {
			return nil, err
		}
	}

	final := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterContext maps scene frame coordinates to supersampled pixels.
type rasterContext struct {
	img    *image.RGBA
	origin geom.Point
	k      float64
	faces  map[float64]font.Face
}

func (rc *rasterContext) px(p geom.Point) (float32, float32) {
	return float32((p.X - rc.origin.X) * rc.k), float32((p.Y - rc.origin.Y) * rc.k)
}

func (r *renderer) rasterConnector(rc *rasterContext, l scene.Laid) error {
	style := l.Connector.Style
	col := parseColor(style.LineColor)
	abs := l.Result.Absolute()
	pts := abs.Flatten(curve.Samples)
	if r.style == StyleDashed {
		dash, gap := dashPattern(style.LineWidth)
		for _, seg := range dashes(pts, dash, gap) {
			rc.strokePolyline(seg, style.LineWidth, col)
		}
	} else {
		rc.strokePolyline(pts, style.LineWidth, col)
	}

	for _, m := range markers(l) {
		if arrowGlyphs[m.glyph] {
			rc.fillArrow(m, col)
			continue
		}
		if err := rc.drawText(m, style.FontSize, col); err != nil {
			return err
		}
	}
	return nil
}

// strokePolyline fills one quad per segment. Every quad has the same
// winding so overlaps at joints do not cancel.
func (rc *rasterContext) strokePolyline(pts []geom.Point, width float64, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	z := vector.NewRasterizer(rc.img.Bounds().Dx(), rc.img.Bounds().Dy())
	half := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		n := geom.Pt(-d.Y/l*half, d.X/l*half)
		rc.polygon(z, a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
	}
	z.Draw(rc.img, rc.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (rc *rasterContext) strokeRect(r geom.Rect, width float64, c color.Color) {
	tl, br := r.TopLeft(), geom.Pt(r.Right(), r.Bottom())
	tr, bl := geom.Pt(r.Right(), r.Top), geom.Pt(r.Left, r.Bottom())
	rc.strokePolyline([]geom.Point{tl, tr, br, bl, tl}, width, c)
}

func (rc *rasterContext) polygon(z *vector.Rasterizer, pts ...geom.Point) {
	x, y := rc.px(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y := rc.px(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// fillArrow draws a triangle filling the marker footprint, pointing along
// the marker rotation.
func (rc *rasterContext) fillArrow(m marker, c color.Color) {
	hw, hh := m.size.W/2, m.size.H/2
	sin, cos := math.Sincos(m.rotation)
	rot := func(x, y float64) geom.Point {
		return geom.Pt(m.center.X+x*cos-y*sin, m.center.Y+x*sin+y*cos)
	}
	z := vector.NewRasterizer(rc.img.Bounds().Dx(), rc.img.Bounds().Dy())
	rc.polygon(z, rot(hw, 0), rot(-hw, hh), rot(-hw, -hh))
	z.Draw(rc.img, rc.img.Bounds(), image.NewUniform(c), image.Point{})
}

// drawText draws an unrotated glyph string centred on the marker.
func (rc *rasterContext) drawText(m marker, fontSize float64, c color.Color) error {
	face, err := rc.face(fontSize * rc.k)
	if err != nil {
		return err
	}
	x, y := rc.px(m.center)
	width := font.MeasureString(face, m.glyph)
	metrics := face.Metrics()
	d := &font.Drawer{
		Dst:  rc.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x*64) - width/2,
			Y: fixed.Int26_6(y*64) + (metrics.Ascent-metrics.Descent)/2,
		},
	}
	d.DrawString(m.glyph)
	return nil
}

func (rc *rasterContext) face(size float64) (font.Face, error) {
	if f, ok := rc.faces[size]; ok {
		return f, nil
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	if rc.faces == nil {
		rc.faces = make(map[float64]font.Face)
	}
	rc.faces[size] = f
	return f, nil
}

// dashes splits a polyline into dash runs of the given lengths.
func dashes(pts []geom.Point, dash, gap float64) [][]geom.Point {
	var out [][]geom.Point
	var cur []geom.Point
	on, left := true, dash
	if len(pts) > 0 {
		cur = []geom.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a).Len()
		pos := 0.0
		for seg-pos > left {
			pos += left
			p := a.Add(b.Sub(a).Scale(pos / seg))
			if on {
				out = append(out, append(cur, p))
				cur = nil
				left = gap
			} else {
				cur = []geom.Point{p}
				left = dash
			}
			on = !on
		}
		left -= seg - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
