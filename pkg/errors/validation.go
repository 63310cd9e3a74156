package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// connectorIDRegex matches connector identifiers: a letter or digit followed
// by letters, digits, dots, dashes, underscores or colons.
var connectorIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateConnectorID validates a connector identifier used in scenes, cache
// keys and SVG element ids.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No whitespace, quotes or markup characters
func ValidateConnectorID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "connector id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "connector id too long (max 128 characters)")
	}
	if !connectorIDRegex.MatchString(id) {
		return New(ErrCodeInvalidScene, "invalid connector id: %q", id)
	}
	return nil
}

// ValidateRegionRef validates a named region reference. References are opaque
// to the engine, so only control characters and excessive length are rejected.
func ValidateRegionRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return New(ErrCodeInvalidScene, "region reference cannot be empty")
	}
	if len(ref) > 256 {
		return New(ErrCodeInvalidScene, "region reference too long (max 256 characters)")
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "region reference contains invalid control characters")
		}
	}
	return nil
}

var (
	hexColorRegex   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColorRegex = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// ValidateColor validates a stroke or fill colour. Hex colours (#rgb, #rgba,
// #rrggbb, #rrggbbaa) and plain named colours are accepted.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidStyle, "color cannot be empty")
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidStyle, "invalid color: %q", color)
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It accepts http(s) URLs and the redis:// and mongodb:// store schemes.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, scheme := range []string{"http://", "https://", "redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use http(s), redis or mongodb scheme")
}
