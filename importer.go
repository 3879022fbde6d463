package mindpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a serialization of the nested tree shape.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a Format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeNested parses a nested tree.
func DecodeNested(data []byte, f Format) (NestedNode, error) {
	var root NestedNode
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &root)
	case FormatJSON:
		err = json.Unmarshal(data, &root)
	default:
		return root, fmt.Errorf("decode tree: unknown format %q", f)
	}
	if err != nil {
		return root, fmt.Errorf("decode tree: %w", err)
	}
	return root, nil
}

// EncodeNested serializes a nested tree.
func EncodeNested(root NestedNode, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(root)
	case FormatJSON:
		return json.MarshalIndent(root, "", "  ")
	}
	return nil, fmt.Errorf("encode tree: unknown format %q", f)
}

// LoadTree decodes data and flattens it into a validated FlatTree.
func LoadTree(data []byte, f Format) (FlatTree, error) {
	root, err := DecodeNested(data, f)
	if err != nil {
		return FlatTree{}, err
	}
	t := Flatten(root)
	if err := t.Validate(); err != nil {
		return FlatTree{}, fmt.Errorf("load tree: %w", err)
	}
	return t, nil
}

// LoadTreeFile reads a tree from a JSON or YAML file.
func LoadTreeFile(path string) (FlatTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FlatTree{}, fmt.Errorf("load tree: %w", err)
	}
	return LoadTree(data, FormatFromPath(path))
}

// SaveTreeFile writes t to path in the format implied by its extension.
func SaveTreeFile(path string, t FlatTree) error {
	root, err := t.Nest()
	if err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	data, err := EncodeNested(root, FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
