package schema

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a schema file encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// ParseFormat converts a configuration string into a Format. The empty
// string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unknown schema format %q (must be auto, yaml, toml, or hcl)", s)
	}
}

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("cannot detect schema format of %q: unsupported extension %q", path, filepath.Ext(path))
	}
}

func resolveFormat(path string, format Format) (Format, error) {
	if format == "" || format == FormatAuto {
		return DetectFormat(path)
	}
	return ParseFormat(string(format))
}
