package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk format for additional source tables. Adding a
// new authority source means adding a table entry here, not code.
//
//	sources:
//	  - source: EXAMPLE
//	    subjects: ["http://example.org/auth/{id}"]
//	    entries:
//	      - predicate: http://schema.org/name
//	        field: name
//	        cardinality: one
//	        kind: lang_string
type schemaFile struct {
	Sources []*Schema `yaml:"sources"`
}

// LoadFile reads additional schemas from a YAML file.
func LoadFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	for _, s := range f.Sources {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("schema file %s: %w", path, err)
		}
	}
	return f.Sources, nil
}

// BuiltinWithFile returns the built-in registry extended (or overridden)
// by the schemas in path. An empty path returns the plain built-ins.
func BuiltinWithFile(path string) (*Registry, error) {
	if path == "" {
		return Builtin(), nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	merged := Builtin()
	for _, s := range extra {
		merged.schemas[s.Source] = s
	}
	return merged, nil
}
