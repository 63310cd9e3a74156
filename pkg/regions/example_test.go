package regions_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/regions"
	"github.com/matzehuels/connline/pkg/target"
)

func ExamplePrefetch() {
	// Any Store works; a Table is the simplest one.
	store := regions.Table{
		"#menu":    {Left: 0, Top: 0, Width: 100, Height: 30},
		"#content": {Left: 0, Top: 200, Width: 100, Height: 300},
	}

	table, err := regions.Prefetch(context.Background(), store, []string{"#menu", "#content", "#footer"}, regions.PrefetchOptions{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Resolved:", table.Refs())

	engine := connector.NewEngine(table, target.FixedOrigin(geom.Point{}))
	res, _ := engine.Layout(target.Ref("#menu"), target.Ref("#content"), connector.DefaultOptions())
	fmt.Println("Directions:", res.FromDirection, res.ToDirection)
	// Output:
	// Resolved: [#content #menu]
	// Directions: bottom top
}
