package decl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a declaration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension. JSON is read as YAML.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported declaration file extension %q", filepath.Ext(path))
	}
}

// LoadFile loads and parses a declaration file from the given path.
func LoadFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes data in the given format into a File.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse declaration TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported declaration format %q", format)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Marshal serializes a File in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported declaration format %q", format)
	}
}

// WriteFile writes f to path in the format implied by its extension.
func WriteFile(f *File, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("failed to marshal declarations: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}
