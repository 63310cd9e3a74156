package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/render"
	"github.com/matzehuels/connline/pkg/scene"
)

const regionStyle = "fill:none;stroke:#9e9e9e;stroke-width:1;stroke-dasharray:2,2"

// RenderSVG draws every laid connector into one SVG document. Each
// connector is a group translated to its frame holding the curve and its
// marker glyphs.
func RenderSVG(laid []scene.Laid, opts ...Option) []byte {
	r := newRenderer(opts...)
	c := r.canvas(laid)
	w, h := int(math.Ceil(c.Width)), int(math.Ceil(c.Height))

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	canvas.Gtransform(translate(geom.Pt(-c.Left, -c.Top)))

	if len(r.regions) > 0 {
		canvas.Group(`class="regions"`)
		for i, rect := range r.frameRegions() {
			canvas.Path(rectPath(rect), fmt.Sprintf(`data-name="%s"`, render.EscapeXML(r.regions[i].Name)), regionStyle)
		}
		canvas.Gend()
	}

	for _, l := range laid {
		r.renderConnector(canvas, l)
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r *renderer) renderConnector(canvas *svg.SVG, l scene.Laid) {
	res := l.Result
	canvas.Group(
		fmt.Sprintf(`id="connector-%s"`, render.EscapeXML(l.Connector.ID)),
		`class="connector"`,
		fmt.Sprintf(`transform="%s"`, translate(res.Frame.TopLeft())),
	)
	canvas.Path(res.Path(), r.strokeStyle(l.Connector.Style))

	origin := res.Frame.TopLeft()
	for _, m := range markers(l) {
		local := m.center.Sub(origin)
		canvas.Group(
			fmt.Sprintf(`transform="%s rotate(%.2f)"`, translate(local), m.rotation*180/math.Pi),
			fmt.Sprintf(`data-rotation="%.2frad"`, m.rotation),
		)
		canvas.Text(0, 0, m.glyph, textStyle(l.Connector.Style))
		canvas.Gend()
	}
	canvas.Gend()
}

func (r *renderer) strokeStyle(s scene.Style) string {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", s.LineColor, curve.FormatCoord(s.LineWidth))
	if r.style == StyleDashed {
		dash, gap := dashPattern(s.LineWidth)
		style += fmt.Sprintf(";stroke-dasharray:%s,%s", curve.FormatCoord(dash), curve.FormatCoord(gap))
	}
	return style
}

func textStyle(s scene.Style) string {
	return fmt.Sprintf("font-size:%spx;fill:%s;text-anchor:middle;dominant-baseline:central",
		curve.FormatCoord(s.FontSize), s.LineColor)
}

func translate(p geom.Point) string {
	return fmt.Sprintf("translate(%s %s)", curve.FormatCoord(p.X), curve.FormatCoord(p.Y))
}

func rectPath(r geom.Rect) string {
	f := curve.FormatCoord
	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s H %s V %s H %s Z",
		f(r.Left), f(r.Top), f(r.Right()), f(r.Bottom()), f(r.Left))
	return b.String()
}
