package connector

import (
	"github.com/matzehuels/connline/pkg/geom"
)

// Placement locates a marker's footprint. Position is the footprint's
// top-left corner in the frame of the Result; Rotation is in radians,
// clockwise on screen, about the footprint's centre.
type Placement struct {
	Position geom.Point `json:"position"`
	Rotation float64    `json:"rotation"`
}

// Center returns the centre of a footprint of size s at this placement.
func (p Placement) Center(s geom.Size) geom.Point { return p.Position.Add(s.Half()) }

// Markers holds the placements for the start, end and middle markers.
type Markers struct {
	Start Placement `json:"start"`
	End   Placement `json:"end"`
	Mid   Placement `json:"mid"`
}

// PlaceMarkers positions the three markers of a laid-out connector.
//
// Start and end markers are centred on their anchors and rotated to follow
// the curve: the rotation is the angle of the chord between the anchor and
// the point half a marker width further along the curve (measured by arc
// length). The end marker's chord runs toward the anchor so an arrowhead
// points into the destination. The middle marker is centred halfway between
// the anchors and is not rotated.
func PlaceMarkers(r Result, start, end, mid geom.Size) Markers {
	c := r.Curve
	var m Markers

	m.Start.Position = r.FromAnchor.Sub(start.Half())
	if !start.IsZero() {
		m.Start.Rotation = c.PointAtLength(start.W / 2).Sub(c.PointAtLength(0)).Angle()
	}

	m.End.Position = r.ToAnchor.Sub(end.Half())
	if !end.IsZero() {
		l := c.Length()
		m.End.Rotation = c.PointAtLength(l).Sub(c.PointAtLength(l - end.W/2)).Angle()
	}

	m.Mid.Position = geom.Midpoint(r.FromAnchor, r.ToAnchor).Sub(mid.Half())
	return m
}
