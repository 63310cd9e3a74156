package render

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"

	"github.com/matzehuels/connline/pkg/geom"
)

const (
	DefaultFontSize = 12.0

	fontCharWidth  = 0.55
	fontLineHeight = 1.0
)

// GlyphSize estimates the footprint of marker text at the given font size.
// Empty text has no footprint. A non-positive fontSize uses DefaultFontSize.
func GlyphSize(text string, fontSize float64) geom.Size {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return geom.Size{}
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return geom.Size{
		W: float64(n) * fontSize * fontCharWidth,
		H: fontSize * fontLineHeight,
	}
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
