package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Blocks []BlockDefinition `yaml:"blocks"`
}

// Parse decodes a YAML block list:
//
//	blocks:
//	  - {id: 0, name: air, transparent: true}
//	  - {id: 1, name: stone, solid: true}
func Parse(raw []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	if len(f.Blocks) == 0 {
		return nil, fmt.Errorf("registry: no blocks defined")
	}
	r, err := New(f.Blocks...)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	return r, nil
}

// Load reads a registry file from disk.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
