package overview

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/connline/pkg/scene"
)

func laidScene(t *testing.T) (*scene.Scene, []scene.Laid) {
	t.Helper()
	src := `{
	  "origin": [10, 0],
	  "regions": [
	    {"name": "#a", "rect": [10, 0, 20, 10]},
	    {"name": "#b", "rect": [110, 0, 20, 10]}
	  ],
	  "connectors": [
	    {"id": "a-b", "from": "#a", "to": "#b"},
	    {"id": "free", "from": "#b", "to": [50, 80]}
	  ]
	}`
	s, err := scene.Decode([]byte(src), scene.FormatJSON, "o.json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	laid, err := s.Layout(s.Engine(nil))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return s, laid
}

func TestToDOT_Basic(t *testing.T) {
	s, laid := laidScene(t)
	dot := ToDOT(s, laid, Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		"inputscale=72",
		`"#a" [pos="10,-5!"`,
		`"#b" [pos="110,-5!"`,
		`"#a" -> "#b" [label="a-b"]`,
		`"free.to" [shape=point`,
		`"#b" -> "free.to"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"a-b.from"`) {
		t.Error("region endpoints should not get their own nodes")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	s, laid := laidScene(t)
	dot := ToDOT(s, laid, Options{Detailed: true})
	if !strings.Contains(dot, `label="a-b (right→left)"`) {
		t.Errorf("ToDOT() detailed output missing sides:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox should be unchanged, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	s, laid := laidScene(t)
	out, err := RenderSVG(context.Background(), ToDOT(s, laid, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	// Graphviz escapes "-" in text as "&#45;".
	if !strings.Contains(string(out), "<svg") || !strings.Contains(string(out), ">a&#45;b</text>") {
		t.Errorf("unexpected overview SVG:\n%s", out)
	}
}

var labelX = regexp.MustCompile(`<text[^>]* x="([-0-9.]+)"[^>]*>(?:#|&#35;)([ab])</text>`)

func TestRenderSVGKeepsSceneScale(t *testing.T) {
	s, laid := laidScene(t)
	out, err := RenderSVG(context.Background(), ToDOT(s, laid, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}

	xs := map[string]float64{}
	for _, m := range labelX.FindAllStringSubmatch(string(out), -1) {
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("bad x %q: %v", m[1], err)
		}
		xs[m[2]] = x
	}
	if len(xs) != 2 {
		t.Fatalf("found region labels %v in:\n%s", xs, out)
	}
	// Region centres are 100 units apart in the scene.
	if d := xs["b"] - xs["a"]; math.Abs(d-100) > 1 {
		t.Errorf("region label spacing = %v, want 100", d)
	}
}
