package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

func ExampleRenderSVG() {
	s, _ := scene.Decode([]byte(`{"connectors": [{"id": "x", "from": [0, 0], "to": [100, 0]}]}`), scene.FormatJSON, "x.json")
	laid, _ := s.Layout(s.Engine(nil))

	svg := string(sink.RenderSVG(laid))
	fmt.Println(strings.Contains(svg, `id="connector-x"`))
	fmt.Println(strings.Count(svg, "<text"))
	// Output:
	// true
	// 1
}
