package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the document format from a file extension. Unknown
// extensions default to YAML, which also accepts JSON input.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte, format Format) (Catalog, error) {
	var cat Catalog
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cat); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cat); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Load reads a catalog from disk.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw, FormatFromPath(path))
}

// LoadFS reads a catalog from an fs.FS, used for embedded catalogs.
func LoadFS(fsys fs.FS, name string) (Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(raw, FormatFromPath(name))
}

// MustParse is Parse that panics, intended for init-time wiring of bundled
// catalogs.
func MustParse(raw []byte, format Format) Catalog {
	cat, err := Parse(raw, format)
	if err != nil {
		panic(err)
	}
	return cat
}
