package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/connline/pkg/cache"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/scene"
)

const testScene = `{
  "origin": [0, 0],
  "regions": [{"name": "#a", "rect": [0, 0, 20, 10]}],
  "connectors": [
    {"id": "a-remote", "from": "#a", "to": "#remote"},
    {"id": "free", "from": [0, 50], "to": [120, 90], "mid_glyph": "x"}
  ]
}`

func loadScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Decode([]byte(testScene), scene.FormatJSON, "test.json")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return s
}

// countingStore records how many refs were requested from the store.
type countingStore struct {
	mu    sync.Mutex
	table regions.Table
	asked []string
}

func (c *countingStore) Fetch(ctx context.Context, refs []string) (map[string]geom.Rect, error) {
	c.mu.Lock()
	c.asked = append(c.asked, refs...)
	c.mu.Unlock()
	return c.table.Fetch(ctx, refs)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"overview", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"plain", false},
		{"dashed", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestExtensionAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, ctype string
	}{
		{FormatSVG, "svg", "image/svg+xml"},
		{FormatOverview, "overview.svg", "image/svg+xml"},
		{FormatPNG, "png", "image/png"},
		{FormatJSON, "json", "application/json"},
		{FormatDOT, "dot", "text/vnd.graphviz"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := Extension(tt.format); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
			if got := ContentType(tt.format); got != tt.ctype {
				t.Errorf("ContentType() = %q, want %q", got, tt.ctype)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.RegionAttempts != DefaultRegionAttempts {
		t.Errorf("RegionAttempts = %d", opts.RegionAttempts)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.Scale != DefaultScale {
		t.Errorf("Style/Scale = %q/%v", opts.Style, opts.Scale)
	}
	if opts.Margin == nil || *opts.Margin != DefaultMargin {
		t.Errorf("Margin = %v", opts.Margin)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}

	// A second call leaves explicit changes alone.
	opts.Style = "bogus"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error = %v", err)
	}
}

func TestOptionsZeroMarginKept(t *testing.T) {
	zero := 0.0
	opts := Options{Margin: &zero}
	opts.SetRenderDefaults()
	if *opts.Margin != 0 {
		t.Errorf("explicit zero margin replaced by %v", *opts.Margin)
	}
	if got := opts.ArtifactKeyOpts(FormatSVG).Margin; got != 0 {
		t.Errorf("ArtifactKeyOpts().Margin = %v", got)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "wobbly"}, errors.ErrCodeInvalidStyle},
		{"negative margin", Options{Margin: &neg}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutStraight(t *testing.T) {
	s := loadScene(t)
	laid, err := Layout(s, nil, Options{Straight: true})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	for _, l := range laid {
		if c := l.Result.Curve; c.C1 != c.P0 || c.C2 != c.P1 {
			t.Errorf("%s: curve %+v is not straight", l.Connector.ID, l.Result.Curve)
		}
	}
	if s.Connectors[0].Options.Straight {
		t.Error("Layout() modified the caller's scene")
	}
}

func TestSceneHashStable(t *testing.T) {
	a, err := SceneHash(loadScene(t))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := SceneHash(loadScene(t))
	if a != b || len(a) != 64 {
		t.Errorf("SceneHash() = %q / %q", a, b)
	}
	if regionsHash(nil) != "" {
		t.Error("empty table should hash to empty string")
	}
	t1 := regions.Table{"#x": {Width: 1}, "#y": {Width: 2}}
	t2 := regions.Table{"#y": {Width: 2}, "#x": {Width: 1}}
	if regionsHash(t1) != regionsHash(t2) {
		t.Error("regionsHash depends on insertion order")
	}
}

func TestFetchRegions(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := &countingStore{table: regions.Table{"#remote": {Left: 200, Top: 0, Width: 40, Height: 10}}}
	r := NewRunner(c, nil, nil).WithRegions("test", store)
	s := loadScene(t)

	got, err := r.FetchRegions(ctx, s, Options{})
	if err != nil {
		t.Fatalf("FetchRegions() error = %v", err)
	}
	if got["#remote"] != store.table["#remote"] {
		t.Errorf("FetchRegions() = %v", got)
	}
	if len(store.asked) != 1 {
		t.Fatalf("store asked for %v", store.asked)
	}

	// Second fetch is served from the cache.
	got, err = r.FetchRegions(ctx, s, Options{})
	if err != nil || got["#remote"] != store.table["#remote"] {
		t.Fatalf("cached FetchRegions() = %v, %v", got, err)
	}
	if len(store.asked) != 1 {
		t.Errorf("store asked again: %v", store.asked)
	}

	// Refresh bypasses it.
	if _, err := r.FetchRegions(ctx, s, Options{Refresh: true}); err != nil {
		t.Fatal(err)
	}
	if len(store.asked) != 2 {
		t.Errorf("refresh did not reach the store: %v", store.asked)
	}
}

func TestFetchRegionsWithoutStore(t *testing.T) {
	got, err := NewRunner(nil, nil, nil).FetchRegions(context.Background(), loadScene(t), Options{})
	if err != nil || len(got) != 0 {
		t.Errorf("FetchRegions() = %v, %v", got, err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{table: regions.Table{"#remote": {Left: 200, Top: 0, Width: 40, Height: 10}}}
	r := NewRunner(cache.NewNullCache(), nil, nil).WithRegions("test", store)

	res, err := r.Execute(ctx, loadScene(t), Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Stats.Connectors != 2 || res.Stats.RegionsWanted != 1 || res.Stats.RegionsFound != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("NullCache reported hits: %+v", res.CacheInfo)
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("Artifacts = %d formats", len(res.Artifacts))
	}
	if !bytes.HasPrefix(bytes.TrimSpace(res.Artifacts[FormatSVG]), []byte("<?xml")) {
		t.Errorf("svg artifact starts with %q", res.Artifacts[FormatSVG][:20])
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), `"#remote"`) {
		t.Error("dot artifact misses the fetched region")
	}

	// The remote region sits to the right of #a, so the connector leaves
	// through the right edge.
	if d := res.Layout[0].Result.FromDirection; d != geom.Right {
		t.Errorf("from direction = %v, want right", d)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Formats: []string{FormatSVG, FormatPNG}}
	first, err := r.Execute(ctx, loadScene(t), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, loadScene(t), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if second.Layout[1].Result.Curve != first.Layout[1].Result.Curve {
		t.Errorf("cached curve %+v, want %+v", second.Layout[1].Result.Curve, first.Layout[1].Result.Curve)
	}

	// A different option is a different layout key.
	third, err := r.Execute(ctx, loadScene(t), Options{Formats: []string{FormatSVG}, Straight: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("straight layout reused the curved one")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), loadScene(t), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v", err)
	}
}
