// Package connector lays out a curved connector between two regions of a
// plane.
//
// A layout runs four stages in one synchronous call:
//
//  1. Resolve both endpoints to rectangles ([target.Resolver]).
//  2. Pick the side each rectangle is left or entered from, from the angle
//     between their centres ([Arbitrate]).
//  3. Build the padded frame, the edge-midpoint anchors and a cubic Bézier
//     whose control points sit one padding away along each edge's outward
//     normal ([Build]).
//  4. Optionally, place start, end and middle markers along the curve
//     ([PlaceMarkers]).
//
// # Frames
//
// [Result.Frame] is the union of both rectangles grown by the padding, in the
// caller's coordinates. The curve, anchors and marker placements are relative
// to the frame's top-left corner, which is what a renderer positioning one
// canvas per connector needs. Use [Result.Absolute] or [Result.ToFrame] to get
// back to caller coordinates.
//
// # Errors
//
// Layout only fails for target specs that cannot describe a point, a
// rectangle or a region. Unknown regions, bad directions and negative padding
// all fall back to defaults.
//
// # Usage
//
//	table := regions.Table{"#a": {Left: 0, Top: 0, Width: 10, Height: 10}}
//	res, err := connector.Layout(target.Ref("#a"), target.AtPoint(100, 5), table, connector.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Path())
package connector
