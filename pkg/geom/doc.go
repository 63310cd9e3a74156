// Package geom provides the plane geometry value types shared by the
// connector engine: points, sizes, axis-aligned rectangles and the four
// cardinal directions a connector can leave or enter a rectangle from.
//
// # Coordinates
//
// All values use screen-space conventions: x grows to the right and y grows
// downward. A [Rect] is described by its top-left corner plus a non-negative
// width and height. Zero-size rectangles are valid and represent point
// targets.
//
// All types are small values. Operations never mutate their receiver and
// return fresh values, so they are safe to share between goroutines.
//
// # Frames
//
// Coordinates are always relative to some frame origin. [Rect.TranslateToFrame]
// re-expresses a rectangle relative to another origin, and [Union] computes
// the padded frame that encloses two rectangles.
package geom
