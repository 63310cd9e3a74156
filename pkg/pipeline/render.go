package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/connline/pkg/render/overview"
	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, s *scene.Scene, laid []scene.Laid, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, laid, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s *scene.Scene, laid []scene.Laid, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(laid, opts.sinkOptions(s)...), nil
	case FormatPNG:
		return sink.RenderPNG(laid, opts.sinkOptions(s)...)
	case FormatPDF:
		return sink.RenderPDF(ctx, laid, opts.sinkOptions(s)...)
	case FormatJSON:
		return sink.RenderJSON(laid)
	case FormatDOT:
		return []byte(overview.ToDOT(s, laid, overview.Options{Detailed: opts.Detailed})), nil
	case FormatOverview:
		return overview.RenderSVG(ctx, overview.ToDOT(s, laid, overview.Options{Detailed: opts.Detailed}))
	}
	return nil, ValidateFormat(format)
}
