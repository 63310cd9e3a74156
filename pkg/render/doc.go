// Package render turns laid-out connectors into visual output.
//
// # Overview
//
// The layout engine produces geometry only. This package and its
// subpackages give that geometry a look:
//
//   - Glyph footprints for marker text ([GlyphSize])
//   - Format conversion from SVG to PDF ([ToPDF])
//   - SVG, PNG, PDF and JSON writers (in [sink] subpackage)
//   - A Graphviz topology overview of a scene (in [overview] subpackage)
//   - A terminal preview drawn into tcell cells (in [term] subpackage)
//
// # Glyphs
//
// Marker glyphs are short strings such as "➤". Their footprint is estimated
// from the rune count and font size so markers can be centred on anchors
// without a font engine:
//
//	size := render.GlyphSize("➤", 12)
//	m := connector.PlaceMarkers(res, geom.Size{}, size, geom.Size{})
//
// # Format Conversion
//
// [ToPDF] converts any SVG using the external rsvg-convert tool (from
// librsvg).
//
//	svg := sink.RenderSVG(laid)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [sink]: github.com/matzehuels/connline/pkg/render/sink
// [overview]: github.com/matzehuels/connline/pkg/render/overview
// [term]: github.com/matzehuels/connline/pkg/render/term
package render
