package connector

import (
	"fmt"

	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/target"
)

// Engine lays out connectors. The zero Engine resolves every region
// reference to the zero rectangle in a frame at (0, 0).
//
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	Resolver target.Resolver
}

// NewEngine returns an Engine resolving regions through regions, with the
// frame origin reported by origin. Either may be nil.
func NewEngine(regions target.Lookup, origin target.OriginProvider) Engine {
	return Engine{Resolver: target.Resolver{Regions: regions, Origin: origin}}
}

// Layout resolves both targets, arbitrates directions and builds the curve.
// The only error is errors.ErrCodeInvalidTargetSpec for a malformed target.
func (e Engine) Layout(from, to target.Spec, opts Options) (Result, error) {
	fromRect, err := e.Resolver.Resolve(from)
	if err != nil {
		return Result{}, fmt.Errorf("resolve from target: %w", err)
	}
	toRect, err := e.Resolver.Resolve(to)
	if err != nil {
		return Result{}, fmt.Errorf("resolve to target: %w", err)
	}
	return LayoutRects(fromRect, toRect, opts), nil
}

// LayoutRects lays out a connector between two already-resolved rectangles.
func LayoutRects(from, to geom.Rect, opts Options) Result {
	opts = opts.normalized()
	fromDir, toDir := Arbitrate(from, to, opts.FromDirection, opts.ToDirection)
	return build(from, to, fromDir, toDir, opts.Padding, opts.Straight)
}

// Layout is shorthand for Engine{}.Layout with regions resolved by regions.
func Layout(from, to target.Spec, regions target.Lookup, opts Options) (Result, error) {
	return NewEngine(regions, nil).Layout(from, to, opts)
}
