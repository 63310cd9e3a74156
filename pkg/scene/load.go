package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/connline/pkg/errors"
)

// Format identifies a scene file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
)

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported scene file extension %q (want .toml, .hcl or .json)", filepath.Ext(path))
}

// Load reads and decodes the scene at path, choosing the syntax by extension.
func Load(path string) (*Scene, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "scene file %s", path)
		}
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Decode(data, format, filepath.Base(path))
}

// Decode parses scene source in the given format. The name is used in
// diagnostics only.
func Decode(data []byte, format Format, name string) (*Scene, error) {
	var (
		f   *fileScene
		err error
	)
	switch format {
	case FormatTOML:
		f, err = decodeTOML(data)
	case FormatJSON:
		f, err = decodeJSON(data)
	case FormatHCL:
		f, err = decodeHCL(data, name)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return f.build()
}

func decodeTOML(data []byte) (*fileScene, error) {
	var f fileScene
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, wrapDecode(err, "toml")
	}
	return &f, nil
}

func decodeJSON(data []byte) (*fileScene, error) {
	var f fileScene
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, wrapDecode(err, "json")
	}
	return &f, nil
}

// wrapDecode keeps target errors as they are and tags everything else as a
// malformed scene.
func wrapDecode(err error, syntax string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s scene", syntax)
}
