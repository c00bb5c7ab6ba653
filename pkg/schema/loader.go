package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sieve-hq/sieve/pkg/classifier"
)

// Schema is a loaded and validated option schema.
type Schema struct {
	// Path is the file the schema was read from, or the name passed to Parse.
	Path string

	// Format is the encoding the schema was decoded from.
	Format Format

	// Options holds the validated options in file order.
	Options []classifier.Option
}

// document is the common shape of YAML and TOML schema files.
type document struct {
	Options []classifier.OptionSpec `yaml:"options" toml:"options"`
}

// Load reads and validates the schema at path. With FormatAuto the format
// is taken from the file extension.
func Load(path string, format Format) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data, path, format)
}

// Parse decodes and validates schema data. name is used for format
// detection and error messages.
func Parse(data []byte, name string, format Format) (*Schema, error) {
	resolved, err := resolveFormat(name, format)
	if err != nil {
		return nil, err
	}

	loadErr := &LoadError{Path: name}

	var specs []classifier.OptionSpec
	switch resolved {
	case FormatYAML:
		specs, err = decodeYAML(data)
	case FormatTOML:
		specs, err = decodeTOML(data, loadErr)
	case FormatHCL:
		specs, err = decodeHCL(data, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	opts := buildOptions(specs, loadErr)
	if loadErr.HasErrors() {
		return nil, loadErr
	}

	slog.Default().With("component", "schema").Debug("schema loaded",
		"path", name,
		"format", string(resolved),
		"options", len(opts),
	)

	return &Schema{Path: name, Format: resolved, Options: opts}, nil
}

// buildOptions validates each spec, recording every problem in loadErr.
func buildOptions(specs []classifier.OptionSpec, loadErr *LoadError) []classifier.Option {
	opts := make([]classifier.Option, 0, len(specs))
	for i, spec := range specs {
		opt, err := classifier.NewOption(spec)
		if err != nil {
			var optErr *classifier.OptionError
			if errors.As(err, &optErr) {
				for _, p := range optErr.Problems {
					loadErr.Add(fmt.Sprintf("options[%d].%s", i, p.Field), p.Message)
				}
				continue
			}
			loadErr.Add(fmt.Sprintf("options[%d]", i), err.Error())
			continue
		}
		opts = append(opts, opt)
	}
	return opts
}

func decodeYAML(data []byte) ([]classifier.OptionSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return doc.Options, nil
}

// decodeTOML reports keys the document does not define as field errors.
func decodeTOML(data []byte, loadErr *LoadError) ([]classifier.OptionSpec, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	for _, key := range md.Undecoded() {
		loadErr.Add(key.String(), "unknown key")
	}
	return doc.Options, nil
}
