package connector

import (
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/target"
)

const tol = 1e-9

func TestDirectionForAngleBoundaries(t *testing.T) {
	tests := []struct {
		angle    float64
		from, to geom.Direction
	}{
		{0, geom.Right, geom.Left},
		{math.Pi / 4, geom.Top, geom.Bottom},
		{math.Pi / 2, geom.Top, geom.Bottom},
		{3 * math.Pi / 4, geom.Left, geom.Right},
		{math.Pi, geom.Left, geom.Right},
		{5 * math.Pi / 4, geom.Bottom, geom.Top},
		{3 * math.Pi / 2, geom.Bottom, geom.Top},
		{7 * math.Pi / 4, geom.Right, geom.Left},
		{2*math.Pi - 1e-9, geom.Right, geom.Left},
	}
	for _, tt := range tests {
		from, to := DirectionForAngle(tt.angle)
		if from != tt.from || to != tt.to {
			t.Errorf("DirectionForAngle(%v) = %v/%v, want %v/%v", tt.angle, from, to, tt.from, tt.to)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	origin := geom.Rect{}
	tests := []struct {
		name string
		to   geom.Rect
		want float64
	}{
		{"right", geom.Rect{Left: 10}, 0},
		{"above", geom.Rect{Top: -10}, math.Pi / 2},
		{"left", geom.Rect{Left: -10}, math.Pi},
		{"below", geom.Rect{Top: 10}, 3 * math.Pi / 2},
		{"coincident", geom.Rect{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(origin, tt.to); math.Abs(got-tt.want) > tol {
				t.Errorf("AngleBetween() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArbitrateOpposite(t *testing.T) {
	a := geom.Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	for i := 0; i < 360; i += 7 {
		rad := float64(i) * math.Pi / 180
		b := a.Translate(geom.Pt(100*math.Cos(rad), -100*math.Sin(rad)))
		from, to := Arbitrate(a, b, geom.Auto, geom.Auto)
		if to != from.Opposite() {
			t.Errorf("angle %d°: to=%v is not opposite of from=%v", i, to, from)
		}
	}
}

func TestScenarioHorizontalRects(t *testing.T) {
	from := target.InRect(geom.Rect{Left: 0, Top: 0, Width: 10, Height: 10})
	to := target.InRect(geom.Rect{Left: 100, Top: 0, Width: 10, Height: 10})
	res, err := Engine{}.Layout(from, to, Options{Padding: 20})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if res.FromDirection != geom.Right || res.ToDirection != geom.Left {
		t.Errorf("directions = %v/%v, want right/left", res.FromDirection, res.ToDirection)
	}
	if got := res.ToFrame(res.FromAnchor); got != geom.Pt(10, 5) {
		t.Errorf("from anchor = %v, want (10,5)", got)
	}
	if got := res.ToFrame(res.ToAnchor); got != geom.Pt(100, 5) {
		t.Errorf("to anchor = %v, want (100,5)", got)
	}
	if want := (geom.Rect{Left: -20, Top: -20, Width: 150, Height: 50}); res.Frame != want {
		t.Errorf("frame = %+v, want %+v", res.Frame, want)
	}
	if want := "M 30 25 C 50 25 100 25 120 25"; res.Path() != want {
		t.Errorf("Path() = %q, want %q", res.Path(), want)
	}
	if res.StartTangentAngle != 0 || math.Abs(res.EndTangentAngle) > tol {
		t.Errorf("tangents = %v/%v, want 0/0", res.StartTangentAngle, res.EndTangentAngle)
	}
}

func TestScenarioVerticalPoints(t *testing.T) {
	res, err := Engine{}.Layout(target.AtPoint(0, 0), target.AtPoint(0, 100), Options{Padding: 0})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if res.FromDirection != geom.Bottom || res.ToDirection != geom.Top {
		t.Errorf("directions = %v/%v, want bottom/top", res.FromDirection, res.ToDirection)
	}
	if math.Abs(res.StartTangentAngle-math.Pi/2) > tol {
		t.Errorf("start tangent = %v, want π/2 (downward on screen)", res.StartTangentAngle)
	}
}

func TestScenarioCoincidentPoints(t *testing.T) {
	res, err := Engine{}.Layout(target.AtPoint(5, 5), target.AtPoint(5, 5), Options{Padding: 20})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if res.FromDirection != geom.Right || res.ToDirection != geom.Left {
		t.Errorf("directions = %v/%v, want right/left", res.FromDirection, res.ToDirection)
	}
	if want := (geom.Rect{Left: -15, Top: -15, Width: 40, Height: 40}); res.Frame != want {
		t.Errorf("frame = %+v, want %+v", res.Frame, want)
	}
	for _, v := range []float64{res.StartTangentAngle, res.EndTangentAngle, res.Curve.C1.X, res.Curve.C2.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value in result: %+v", res)
		}
	}
	m := PlaceMarkers(res, geom.Size{W: 10, H: 10}, geom.Size{W: 10, H: 10}, geom.Size{})
	if math.IsNaN(m.Start.Rotation) || math.IsNaN(m.End.Rotation) {
		t.Errorf("marker rotations are NaN: %+v", m)
	}
}

func TestScenarioMissingRegion(t *testing.T) {
	lookup := target.LookupFunc(func(string) (geom.Rect, bool) { return geom.Rect{}, false })
	res, err := Layout(target.Ref("#missing"), target.AtPoint(50, 0), lookup, DefaultOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if got := res.ToFrame(res.FromAnchor); got != (geom.Point{}) {
		t.Errorf("from anchor = %v, want origin", got)
	}
	if res.FromDirection != geom.Right {
		t.Errorf("from direction = %v, want right", res.FromDirection)
	}
}

func TestScenarioFromOverride(t *testing.T) {
	from := target.InRect(geom.Rect{Width: 10, Height: 10})
	to := target.InRect(geom.Rect{Left: 100, Width: 10, Height: 10})
	opts := OptionsFromMap(map[string]any{"fromDirection": "Top", "padding": 20})
	res, err := Engine{}.Layout(from, to, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if res.FromDirection != geom.Top || res.ToDirection != geom.Left {
		t.Errorf("directions = %v/%v, want top/left", res.FromDirection, res.ToDirection)
	}
	if got := res.ToFrame(res.FromAnchor); got != geom.Pt(5, 0) {
		t.Errorf("from anchor = %v, want (5,0)", got)
	}
	if got := res.ToFrame(res.Curve.C1); got != geom.Pt(5, -20) {
		t.Errorf("from control = %v, want (5,-20)", got)
	}
}

func TestInvalidTargetSpec(t *testing.T) {
	_, err := Engine{}.Layout(target.Spec{}, target.AtPoint(1, 1), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeInvalidTargetSpec) {
		t.Errorf("Layout() error = %v, want INVALID_TARGET_SPEC", err)
	}
	_, err = Engine{}.Layout(target.AtPoint(1, 1), target.InRect(geom.Rect{Width: -4}), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeInvalidTargetSpec) {
		t.Errorf("Layout() error = %v, want INVALID_TARGET_SPEC", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Options
	}{
		{"empty", nil, Options{Padding: DefaultPadding}},
		{"negative padding", map[string]any{"padding": -5.0}, Options{Padding: 0}},
		{"bad padding type", map[string]any{"padding": "wide"}, Options{Padding: DefaultPadding}},
		{"bad direction", map[string]any{"to_direction": "diagonal"}, Options{Padding: DefaultPadding}},
		{"straight", map[string]any{"straight": true, "padding": int64(3)}, Options{Padding: 3, Straight: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OptionsFromMap(tt.in); got != tt.want {
				t.Errorf("OptionsFromMap() = %+v, want %+v", got, tt.want)
			}
		})
	}

	a, b := DefaultOptions(), DefaultOptions()
	a.Padding = 99
	if b.Padding != DefaultPadding {
		t.Error("DefaultOptions shares state between calls")
	}
}

func TestNegativePaddingClamps(t *testing.T) {
	a := geom.Rect{Width: 10, Height: 10}
	b := geom.Rect{Left: 50, Width: 10, Height: 10}
	neg := LayoutRects(a, b, Options{Padding: -10})
	zero := LayoutRects(a, b, Options{Padding: 0})
	if neg != zero {
		t.Errorf("negative padding result %+v differs from zero padding %+v", neg, zero)
	}
}

func TestStraight(t *testing.T) {
	res := LayoutRects(geom.Rect{Width: 10, Height: 10}, geom.Rect{Left: 100, Top: 100, Width: 10, Height: 10}, Options{Padding: 20, Straight: true})
	if res.Curve.C1 != res.Curve.P0 || res.Curve.C2 != res.Curve.P1 {
		t.Errorf("straight controls not on anchors: %+v", res.Curve)
	}
	chord := res.ToAnchor.Sub(res.FromAnchor).Angle()
	if math.Abs(res.StartTangentAngle-chord) > tol || math.Abs(res.EndTangentAngle-chord) > tol {
		t.Errorf("tangents %v/%v, want chord angle %v", res.StartTangentAngle, res.EndTangentAngle, chord)
	}
}

func TestAnchorsOnBoundary(t *testing.T) {
	rects := []geom.Rect{
		{Left: 0, Top: 0, Width: 10, Height: 10},
		{Left: 200, Top: 30, Width: 40, Height: 5},
		{Left: -50, Top: 300, Width: 0, Height: 0},
		{Left: 20, Top: -120, Width: 15, Height: 60},
	}
	for _, a := range rects {
		for _, b := range rects {
			for _, fd := range []geom.Direction{geom.Auto, geom.Top, geom.Left} {
				res := LayoutRects(a, b, Options{Padding: 12, FromDirection: fd})
				fromLocal := a.TranslateToFrame(res.Frame.TopLeft())
				toLocal := b.TranslateToFrame(res.Frame.TopLeft())
				if !fromLocal.OnBoundary(res.FromAnchor, tol) {
					t.Errorf("%v->%v: from anchor %v not on %+v", a, b, res.FromAnchor, fromLocal)
				}
				if !toLocal.OnBoundary(res.ToAnchor, tol) {
					t.Errorf("%v->%v: to anchor %v not on %+v", a, b, res.ToAnchor, toLocal)
				}
			}
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	e := NewEngine(target.LookupFunc(func(string) (geom.Rect, bool) {
		return geom.Rect{Left: 30, Top: 70, Width: 12, Height: 8}, true
	}), target.FixedOrigin{X: 5, Y: 5})
	from, to := target.Ref("#a"), target.AtPoint(-40, 12)

	first, err := e.Layout(from, to, DefaultOptions())
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := e.Layout(from, to, DefaultOptions())
			if got != first {
				t.Errorf("Layout() not deterministic: %+v vs %+v", got, first)
			}
		}()
	}
	wg.Wait()
}

func TestPlaceMarkers(t *testing.T) {
	res := LayoutRects(geom.Rect{Width: 10, Height: 10}, geom.Rect{Left: 100, Width: 10, Height: 10}, Options{Padding: 20})
	size := geom.Size{W: 10, H: 8}
	m := PlaceMarkers(res, size, size, geom.Size{W: 4, H: 4})

	if got := m.Start.Center(size); got != res.FromAnchor {
		t.Errorf("start centre = %v, want %v", got, res.FromAnchor)
	}
	if got := m.End.Center(size); got != res.ToAnchor {
		t.Errorf("end centre = %v, want %v", got, res.ToAnchor)
	}
	if math.Abs(m.Start.Rotation) > 1e-6 || math.Abs(m.End.Rotation) > 1e-6 {
		t.Errorf("rotations = %v/%v, want 0/0 for a horizontal connector", m.Start.Rotation, m.End.Rotation)
	}
	wantMid := geom.Midpoint(res.FromAnchor, res.ToAnchor).Sub(geom.Pt(2, 2))
	if m.Mid.Position != wantMid || m.Mid.Rotation != 0 {
		t.Errorf("mid = %+v, want position %v", m.Mid, wantMid)
	}
}

func TestPlaceMarkersTracksTangent(t *testing.T) {
	// Downward connector: both markers should point down the screen (π/2),
	// matching the closed-form tangents within sampling tolerance.
	res := LayoutRects(geom.Rect{Width: 10, Height: 10}, geom.Rect{Top: 200, Width: 10, Height: 10}, Options{Padding: 30})
	m := PlaceMarkers(res, geom.Size{W: 6, H: 6}, geom.Size{W: 6, H: 6}, geom.Size{})
	for name, got := range map[string]float64{"start": m.Start.Rotation, "end": m.End.Rotation} {
		if math.Abs(got-math.Pi/2) > 0.05 {
			t.Errorf("%s rotation = %v, want ≈π/2", name, got)
		}
	}
	if math.Abs(m.Start.Rotation-res.StartTangentAngle) > 0.05 {
		t.Errorf("sampled start %v disagrees with closed form %v", m.Start.Rotation, res.StartTangentAngle)
	}
}

func TestPlaceMarkersZeroFootprint(t *testing.T) {
	res := LayoutRects(geom.Rect{}, geom.Rect{Left: 30, Top: 40}, DefaultOptions())
	m := PlaceMarkers(res, geom.Size{}, geom.Size{}, geom.Size{})
	if m.Start.Position != res.FromAnchor || m.End.Position != res.ToAnchor {
		t.Errorf("zero footprints should sit on anchors: %+v", m)
	}
	if m.Start.Rotation != 0 || m.End.Rotation != 0 {
		t.Errorf("zero footprints should not rotate: %+v", m)
	}
}
