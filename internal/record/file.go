package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a record list. Values may be omitted, in
// which case they start as a copy of Defaults.
type File struct {
	Defaults []Record `yaml:"defaults" json:"defaults"`
	Values   []Record `yaml:"values" json:"values"`
}

// Load reads a record file from path. Files ending in .json are decoded as
// JSON, everything else as YAML.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read records: %w", err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a record file. ext selects the format (".json" or YAML).
func Parse(data []byte, ext string) (File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse records: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse records: %w", err)
		}
	}

	if f.Defaults == nil {
		f.Defaults = []Record{}
	}
	if f.Values == nil {
		f.Values = CloneAll(f.Defaults)
	}
	return f, nil
}

// Marshal encodes f as YAML.
func Marshal(f File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	return data, nil
}
