package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/splitgrid/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the supported document encodings.
var Formats = []Format{FormatJSON, FormatTOML}

// ParseFormat converts a format name such as "toml" into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported format %q (use json or toml)", name)
}

// FormatFromPath picks the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateExtension(path, ".json", ".toml"); err != nil {
		return "", err
	}
	return ParseFormat(filepath.Ext(path))
}
