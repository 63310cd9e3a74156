// Package sink writes laid-out scenes to output formats.
//
// # Overview
//
// A "sink" transforms the result of [scene.Scene.Layout] into bytes:
//
//   - SVG: one group per connector, drawn with svgo
//   - PNG: rasterised natively with golang.org/x/image
//   - PDF: the SVG converted by rsvg-convert
//   - JSON: the layout geometry itself
//
// All raster and vector sinks share one canvas: the union of every
// connector frame and marker footprint (and region outlines when
// requested), grown by a margin.
//
// # Usage
//
//	laid, err := s.Layout(s.Engine(nil))
//	svg, err := sink.RenderSVG(laid,
//	    sink.WithStyle(sink.StyleDashed),
//	    sink.WithRegions(s),
//	)
//
// # Options
//
//   - [WithStyle]: stroke style, [StylePlain] or [StyleDashed]
//   - [WithRegions]: outline the scene's regions behind the connectors
//   - [WithMargin]: whitespace around the drawing
//   - [WithScale]: pixels per unit for PNG output
//
// [scene.Scene.Layout]: github.com/matzehuels/connline/pkg/scene
package sink
