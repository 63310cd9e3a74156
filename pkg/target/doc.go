// Package target resolves connector endpoint specifications into rectangles.
//
// An endpoint is described by a [Spec]: an explicit point, an explicit
// rectangle, or the name of a region whose geometry lives somewhere else
// (a host document, a database, a scene file). Region geometry is obtained
// through the [Lookup] interface and re-expressed relative to the frame
// origin reported by an [OriginProvider].
//
// # Input forms
//
// Specs usually arrive as loosely typed data. [FromValue] converts decoder
// output once, at the boundary:
//
//	target.FromValue("#sidebar")              // region reference
//	target.FromValue("120, 40")               // point
//	target.FromValue([]any{120.0, 40.0})      // point
//	target.FromValue([]any{0.0, 0.0, 10.0, 10.0}) // rect
//
// Unsupported shapes are rejected with errors.ErrCodeInvalidTargetSpec, which is
// the only error the layout engine ever reports.
//
// # Resolution
//
// [Resolver.Resolve] never fails for a well-formed spec: unknown regions
// resolve to the zero rectangle so a layout can still be produced.
package target
