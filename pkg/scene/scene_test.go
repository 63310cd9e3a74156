package scene

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/target"
)

func TestLoadFormatsAgree(t *testing.T) {
	var scenes []*Scene
	for _, name := range []string{"flow.toml", "flow.hcl", "flow.json"} {
		s, err := Load(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		scenes = append(scenes, s)
	}
	for i, s := range scenes[1:] {
		if !reflect.DeepEqual(s, scenes[0]) {
			t.Errorf("scene %d differs from TOML:\n got %+v\nwant %+v", i+1, s, scenes[0])
		}
	}

	s := scenes[0]
	if len(s.Regions) != 2 || len(s.Connectors) != 2 {
		t.Fatalf("unexpected scene shape: %+v", s)
	}
	c := s.Connectors[1]
	if c.To != target.AtPoint(50, 80) {
		t.Errorf("to = %+v", c.To)
	}
	if c.Options.FromDirection != geom.Bottom || c.Options.Padding != 20 {
		t.Errorf("options = %+v", c.Options)
	}
	if c.Glyphs != (Glyphs{End: DefaultEndGlyph, Mid: "ok"}) {
		t.Errorf("glyphs = %+v", c.Glyphs)
	}
	if c.Style.LineColor != "#336699" || c.Style.LineWidth != 2 {
		t.Errorf("style = %+v", c.Style)
	}
}

func TestDecodeDefaults(t *testing.T) {
	s, err := Decode([]byte(`[[connector]]`), FormatTOML, "min.toml")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	c := s.Connectors[0]
	want := NewConnector("c1")
	if !reflect.DeepEqual(c, want) {
		t.Errorf("connector = %+v, want %+v", c, want)
	}
	if c.From != target.AtPoint(0, 0) || c.To != target.AtPoint(100, 100) {
		t.Errorf("default targets = %v -> %v", c.From, c.To)
	}
}

func TestDecodeHCLTargets(t *testing.T) {
	src := `
connector "obj" {
  from = { left = 1, top = 2, width = 3, height = 4 }
  to   = "30, 40"
  end_glyph = ""
}
`
	s, err := Decode([]byte(src), FormatHCL, "t.hcl")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	c := s.Connectors[0]
	if c.From != target.InRect(geom.Rect{Left: 1, Top: 2, Width: 3, Height: 4}) {
		t.Errorf("from = %+v", c.From)
	}
	if c.To != target.AtPoint(30, 40) {
		t.Errorf("to = %+v", c.To)
	}
	if c.Glyphs.End != "" {
		t.Errorf("explicit empty end glyph became %q", c.Glyphs.End)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
	}{
		{"toml bad target", FormatTOML, "[[connector]]\nfrom = [1, 2, 3]"},
		{"json bad target", FormatJSON, `{"connectors":[{"from": true}]}`},
		{"hcl bad target", FormatHCL, "connector \"x\" {\n  from = true\n}"},
		{"json unknown field", FormatJSON, `{"connectors":[], "colour": 1}`},
		{"duplicate ids", FormatJSON, `{"connectors":[{"id":"a"},{"id":"a"}]}`},
		{"bad id", FormatJSON, `{"connectors":[{"id":"a b"}]}`},
		{"bad color", FormatJSON, `{"connectors":[{"line_color":"url(#x)"}]}`},
		{"bad region rect", FormatJSON, `{"regions":[{"name":"#a","rect":[1,2]}],"connectors":[]}`},
		{"negative region", FormatJSON, `{"regions":[{"name":"#a","rect":[0,0,-1,1]}],"connectors":[]}`},
		{"hcl syntax", FormatHCL, "connector {"},
		{"unknown format", Format("yaml"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src), tt.format, "x")
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !errors.IsValidation(err) {
				t.Errorf("Decode() error = %v, want an INVALID_* code", err)
			}
		})
	}
}

func TestLoadMissingAndExtension(t *testing.T) {
	if _, err := Load("testdata/nope.toml"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.yaml) error = %v", err)
	}
}

func TestRefsAndEngine(t *testing.T) {
	s := &Scene{
		Origin:  geom.Pt(100, 100),
		Regions: []Region{{Name: "#local", Rect: geom.Rect{Left: 100, Top: 100, Width: 10, Height: 10}}},
		Connectors: []Connector{
			{ID: "1", From: target.Ref("#local"), To: target.Ref("#remote")},
			{ID: "2", From: target.Ref("#remote"), To: target.Ref("#other")},
		},
	}
	if got := s.Refs(); !slices.Equal(got, []string{"#remote", "#other"}) {
		t.Errorf("Refs() = %v", got)
	}

	remote := regions.Table{
		"#remote": {Left: 300, Top: 100, Width: 10, Height: 10},
		"#local":  {Left: 9999},
	}
	rect, err := s.Engine(remote).Resolver.Resolve(target.Ref("#local"))
	if err != nil || rect != (geom.Rect{Width: 10, Height: 10}) {
		t.Errorf("scene region should win and be frame-relative, got %+v, %v", rect, err)
	}
}

func TestLayout(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "flow.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	laid, err := s.Layout(s.Engine(nil))
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(laid) != 2 {
		t.Fatalf("Layout() returned %d connectors", len(laid))
	}

	ab := laid[0]
	if ab.Result.FromDirection != geom.Right || ab.Result.ToDirection != geom.Left {
		t.Errorf("a-b directions = %v/%v", ab.Result.FromDirection, ab.Result.ToDirection)
	}
	if ab.Footprints.End.IsZero() || !ab.Footprints.Start.IsZero() {
		t.Errorf("footprints = %+v", ab.Footprints)
	}
	if got := ab.Markers.End.Center(ab.Footprints.End).Sub(ab.Result.ToAnchor); got.Len() > 1e-9 {
		t.Errorf("end marker centre off anchor by %v", got)
	}

	if laid[1].Result.FromDirection != geom.Bottom {
		t.Errorf("override ignored: %v", laid[1].Result.FromDirection)
	}

	b := Bounds(laid)
	for _, l := range laid {
		if !b.Contains(l.Result.Frame) {
			t.Errorf("Bounds() %+v does not contain %+v", b, l.Result.Frame)
		}
	}
}
