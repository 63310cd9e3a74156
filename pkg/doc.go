// Package pkg provides the libraries behind connline, a layout engine for
// connector curves between points, rectangles and named regions.
//
// # Overview
//
// Given two targets, connline chooses which sides of their rectangles to
// attach to, builds a cubic Bézier between the anchors in a padded local
// frame, and places start, end and middle markers along the curve. The pkg
// directory is organized into four areas:
//
//  1. Geometry - [geom], [target], [curve] and [connector] (the engine)
//  2. Scenes - [scene] bundles regions and connectors read from TOML, HCL or JSON
//  3. Infrastructure - [regions], [cache], [observability] and [errors]
//  4. Delivery - [pipeline], [render], [server] and [httputil]
//
// # Architecture
//
// The typical data flow:
//
//	scene file (.toml, .hcl, .json)
//	         ↓
//	    [scene] package (decode + validate)
//	         ↓
//	    [regions] package (fetch names the scene does not define)
//	         ↓
//	    [connector] package (resolve, arbitrate, build path, place markers)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON/DOT)
//
// [pipeline] runs these stages with caching so the CLI and the HTTP server
// behave the same.
//
// # Quick Start
//
// Lay out one connector without a scene:
//
//	import (
//	    "github.com/matzehuels/connline/pkg/connector"
//	    "github.com/matzehuels/connline/pkg/geom"
//	    "github.com/matzehuels/connline/pkg/target"
//	)
//
//	engine := connector.NewEngine(nil, nil)
//	from := target.InRect(geom.Rect{Width: 40, Height: 20})
//	res, err := engine.Layout(from, target.Parse("200, 80"), connector.DefaultOptions())
//	fmt.Println(res.Path())
//
// Render a scene file:
//
//	s, _ := scene.Load("flow.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, s, pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("flow.svg", result.Artifacts["svg"], 0o644)
//
// # Errors
//
// Only malformed targets fail a layout; they carry
// [errors.ErrCodeInvalidTargetSpec]. Unknown regions, bad option values and
// degenerate geometry fall back to defaults.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/connector/... # Specific package
//	go test -run Example        # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/geom
// [target]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/target
// [curve]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/curve
// [connector]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/connector
// [scene]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/scene
// [regions]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/regions
// [cache]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/errors
// [errors.ErrCodeInvalidTargetSpec]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/errors#ErrCodeInvalidTargetSpec
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/server
// [httputil]: https://pkg.go.dev/github.com/matzehuels/connline/pkg/httputil
package pkg
