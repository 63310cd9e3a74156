package sink

import (
	"encoding/json"

	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

// Document is the JSON form of a laid-out scene.
type Document struct {
	Bounds     geom.Rect   `json:"bounds"`
	Connectors []Connector `json:"connectors"`
}

// Connector is one laid connector plus its SVG path data.
type Connector struct {
	scene.Laid
	Path string `json:"path"`
}

// NewDocument builds the serialisable form of laid.
func NewDocument(laid []scene.Laid) Document {
	doc := Document{
		Bounds:     scene.Bounds(laid),
		Connectors: make([]Connector, len(laid)),
	}
	for i, l := range laid {
		doc.Connectors[i] = Connector{Laid: l, Path: l.Result.Path()}
	}
	return doc
}

// RenderJSON writes laid as an indented JSON document.
func RenderJSON(laid []scene.Laid) ([]byte, error) {
	return json.MarshalIndent(NewDocument(laid), "", "  ")
}

// ReadJSON decodes a document written by RenderJSON back into laid
// connectors.
func ReadJSON(data []byte) ([]scene.Laid, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	laid := make([]scene.Laid, len(doc.Connectors))
	for i, c := range doc.Connectors {
		laid[i] = c.Laid
	}
	return laid, nil
}
