package sink

import (
	"context"

	"github.com/matzehuels/connline/pkg/render"
	"github.com/matzehuels/connline/pkg/scene"
)

// RenderPDF renders the SVG form of laid and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, laid []scene.Laid, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(laid, opts...))
}
