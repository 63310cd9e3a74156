// Package overview renders the topology of a scene with Graphviz.
//
// # Overview
//
// Where [sink] draws every curve exactly, an overview shows which regions
// are connected to which. Regions become boxes pinned at their laid-out
// positions, explicit point or rectangle endpoints become small dots, and
// every connector becomes an edge labelled with its ID. The neato engine
// honours the pinned positions, so the overview keeps the scene's shape.
//
// # Usage
//
//	dot := overview.ToDOT(s, laid, overview.Options{Detailed: true})
//	svg, err := overview.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: edge labels include the chosen sides, e.g. "a-b (right→left)"
//
// [sink]: github.com/matzehuels/connline/pkg/render/sink
package overview
