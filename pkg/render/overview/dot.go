package overview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
	"github.com/matzehuels/connline/pkg/target"
)

// Options configures overview generation.
type Options struct {
	// Detailed adds the chosen sides to edge labels.
	Detailed bool
}

// ToDOT converts a laid-out scene to Graphviz DOT. laid must come from
// s.Layout so endpoints can be placed at their anchors.
func ToDOT(s *scene.Scene, laid []scene.Laid, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10];\n")
	buf.WriteString("  edge [fontsize=9];\n")
	buf.WriteString("\n")

	for _, r := range s.Regions {
		rect := r.Rect.TranslateToFrame(s.Origin)
		fmt.Fprintf(&buf, "  %q [pos=%q, width=%s, height=%s, fixedsize=true];\n",
			r.Name, pos(rect.Center()), inches(rect.Width), inches(rect.Height))
	}

	buf.WriteString("\n")
	for _, l := range laid {
		id := l.Connector.ID
		from := endpoint(&buf, id+".from", l.Connector.From, l.Result.ToFrame(l.Result.FromAnchor))
		to := endpoint(&buf, id+".to", l.Connector.To, l.Result.ToFrame(l.Result.ToAnchor))
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", from, to, edgeLabel(l, opts))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// endpoint returns the node name for a connector end, declaring a dot node
// for explicit targets.
func endpoint(buf *bytes.Buffer, name string, spec target.Spec, at geom.Point) string {
	if spec.Kind == target.KindRegion {
		return spec.Region
	}
	fmt.Fprintf(buf, "  %q [shape=point, width=0.08, label=\"\", pos=%q];\n", name, pos(at))
	return name
}

func edgeLabel(l scene.Laid, opts Options) string {
	if !opts.Detailed {
		return l.Connector.ID
	}
	return fmt.Sprintf("%s (%s→%s)", l.Connector.ID, l.Result.FromDirection, l.Result.ToDirection)
}

// pos formats a pinned neato position in points; inputscale=72 in the graph
// header makes Graphviz read it in the same units as the scene. Graphviz's y
// axis points up, so y is negated.
func pos(p geom.Point) string {
	return curve.FormatCoord(p.X) + "," + curve.FormatCoord(-p.Y) + "!"
}

func inches(v float64) string {
	return strconv.FormatFloat(max(v, 1)/72, 'f', 3, 64)
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with one whose
// width and height match the viewBox in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
