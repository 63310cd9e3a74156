package geom

import "strings"

// Direction names the side of a rectangle a connector leaves or enters from.
// The zero value, Auto, means "not specified" and lets the arbiter decide.
type Direction uint8

const (
	Auto Direction = iota
	Top
	Bottom
	Left
	Right
)

var directionNames = [...]string{
	Auto:   "auto",
	Top:    "top",
	Bottom: "bottom",
	Left:   "left",
	Right:  "right",
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "auto"
}

// IsSet reports whether d is one of the four cardinal directions.
func (d Direction) IsSet() bool { return d >= Top && d <= Right }

// Opposite returns the cardinal opposite of d. Auto maps to Auto.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return Auto
}

// Normal returns the unit outward normal of the edge facing d.
func (d Direction) Normal() Point {
	switch d {
	case Top:
		return Point{0, -1}
	case Bottom:
		return Point{0, 1}
	case Left:
		return Point{-1, 0}
	case Right:
		return Point{1, 0}
	}
	return Point{}
}

// ParseDirection converts a direction name into a Direction.
// Matching is case-insensitive and ignores surrounding space.
// Anything that is not one of the four names yields Auto.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top
	case "bottom":
		return Bottom
	case "left":
		return Left
	case "right":
		return Right
	}
	return Auto
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// Auto rather than failing.
func (d *Direction) UnmarshalText(b []byte) error {
	*d = ParseDirection(string(b))
	return nil
}
