// Package scene bundles a frame origin, named regions and connectors so many
// connectors can be laid out and rendered together.
//
// # File Formats
//
// Scenes are written in TOML, HCL or JSON; [Load] picks the syntax from the
// file extension. The TOML form:
//
//	origin = [0, 0]
//
//	[[region]]
//	name = "#a"
//	rect = [0, 0, 10, 10]
//
//	[[connector]]
//	id = "a-b"
//	from = "#a"
//	to = [100, 5]
//	padding = 20
//	from_direction = "top"
//	end_glyph = "➤"
//
// Targets accept "x, y" strings, region names, [x, y], [left, top, width,
// height], {x, y} and {left, top, width, height}. A connector without from
// or to uses [0, 0] and [100, 100]; without end_glyph it gets an arrow.
//
// # Layout
//
// Region rectangles are absolute and are shifted into the frame by origin.
// References to regions the scene does not define are listed by
// [Scene.Refs] so a remote store can supply them before layout:
//
//	s, err := scene.Load("flow.toml")
//	remote, err := regions.Prefetch(ctx, store, s.Refs(), regions.PrefetchOptions{})
//	laid, err := s.Layout(s.Engine(remote))
package scene
