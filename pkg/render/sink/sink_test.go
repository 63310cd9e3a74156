package sink

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

const testScene = `{
  "regions": [
    {"name": "#a", "rect": [0, 0, 20, 10]},
    {"name": "#b", "rect": [100, 0, 20, 10]}
  ],
  "connectors": [
    {"id": "a-b", "from": "#a", "to": "#b"},
    {"id": "down", "from": "#a", "to": [10, 80], "mid_glyph": "ok", "line_color": "#336699", "line_width": 2}
  ]
}`

func layoutScene(t *testing.T) (*scene.Scene, []scene.Laid) {
	t.Helper()
	s, err := scene.Decode([]byte(testScene), scene.FormatJSON, "test.json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	laid, err := s.Layout(s.Engine(nil))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return s, laid
}

func wellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed: %v\n%s", err, doc)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	s, laid := layoutScene(t)

	out := RenderSVG(laid)
	wellFormed(t, out)
	svg := string(out)

	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("got %d paths, want 2", n)
	}
	for _, want := range []string{
		`id="connector-a-b"`,
		`id="connector-down"`,
		laid[0].Result.Path(),
		`data-rotation="0.00rad"`,
		"stroke:#336699",
		"stroke-width:2",
		">ok</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "stroke-dasharray:6") {
		t.Error("plain style should not dash")
	}
	if strings.Contains(svg, `class="regions"`) {
		t.Error("regions drawn without WithRegions")
	}

	out = RenderSVG(laid, WithStyle(StyleDashed), WithRegions(s))
	wellFormed(t, out)
	svg = string(out)
	if n := strings.Count(svg, "<path"); n != 4 {
		t.Errorf("got %d paths with regions, want 4", n)
	}
	if !strings.Contains(svg, "stroke-dasharray:6,4") || !strings.Contains(svg, "stroke-dasharray:12,8") {
		t.Error("dashed style should scale the dash pattern with line width")
	}
	if !strings.Contains(svg, `data-name="#b"`) {
		t.Error("region outline missing")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	out := RenderSVG(nil, WithMargin(5))
	wellFormed(t, out)
	if !strings.Contains(string(out), `viewBox="0 0 10 10"`) {
		t.Errorf("empty canvas should be the margin only:\n%s", out)
	}
}

func TestCanvasCoversMarkers(t *testing.T) {
	_, laid := layoutScene(t)
	r := newRenderer(WithMargin(0))
	c := r.canvas(laid)
	for _, l := range laid {
		if !c.Contains(l.Result.Frame) {
			t.Errorf("canvas %+v misses frame %+v", c, l.Result.Frame)
		}
		for _, m := range markers(l) {
			if m.center.X < c.Left || m.center.X > c.Right() || m.center.Y < c.Top || m.center.Y > c.Bottom() {
				t.Errorf("marker %q at %v outside canvas", m.glyph, m.center)
			}
		}
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	_, laid := layoutScene(t)
	data, err := RenderJSON(laid)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	if !bytes.Contains(data, []byte(`"path": "M `)) {
		t.Error("JSON should carry the path string")
	}
	back, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !reflect.DeepEqual(back, laid) {
		t.Errorf("round trip changed layout:\n got %+v\nwant %+v", back, laid)
	}
}

func TestRenderPNG(t *testing.T) {
	s, laid := layoutScene(t)
	data, err := RenderPNG(laid, WithScale(1), WithRegions(s), WithStyle(StyleDashed))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	rend := newRenderer(WithRegions(s))
	c := rend.canvas(laid)
	if got := img.Bounds().Dx(); got < int(c.Width) || got > int(c.Width)+1 {
		t.Errorf("width = %d, canvas %v", got, c.Width)
	}

	// Something other than the white background was drawn.
	dark := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("PNG is blank")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want [4]uint8
	}{
		{"black", [4]uint8{0, 0, 0, 255}},
		{"Red", [4]uint8{255, 0, 0, 255}},
		{"#336699", [4]uint8{0x33, 0x66, 0x99, 255}},
		{"#fff", [4]uint8{255, 255, 255, 255}},
		{"#ff000000", [4]uint8{0, 0, 0, 0}},
		{"nonsense", [4]uint8{0, 0, 0, 255}},
		{"#12", [4]uint8{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := parseColor(tt.in)
			if got := [4]uint8{c.R, c.G, c.B, c.A}; got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDashes(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(32, 0)}
	got := dashes(line, 8, 4)
	want := [][]geom.Point{
		{geom.Pt(0, 0), geom.Pt(8, 0)},
		{geom.Pt(12, 0), geom.Pt(20, 0)},
		{geom.Pt(24, 0), geom.Pt(32, 0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dashes() = %v, want %v", got, want)
	}
}
