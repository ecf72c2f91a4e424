// Package schema holds the per-source tables that map predicate IRIs to
// semantic field names. Vocabulary variance between authorities lives
// entirely in these tables; extraction logic never branches on source.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
)

// Cardinality declares how many values a field may carry.
type Cardinality string

const (
	One  Cardinality = "one"
	Many Cardinality = "many"
)

// ValueKind declares the expected shape of a field's values.
type ValueKind string

const (
	KindString     ValueKind = "string"      // plain text, language tag discarded
	KindLangString ValueKind = "lang_string" // text, language tag preserved
	KindDate       ValueKind = "date"        // partial or full date
	KindIRI        ValueKind = "iri"         // IRI object, kept as external identifier
)

// Transform names an optional per-entry value rewrite applied after
// normalization.
type Transform string

const (
	TransformNone Transform = ""
	// TransformFlipComma turns "Last, First" labels into "First Last",
	// the form most authority files use for personal names.
	TransformFlipComma Transform = "flip_comma"
)

// Entry maps one predicate to a semantic field.
type Entry struct {
	Predicate   string      `yaml:"predicate"`
	Field       string      `yaml:"field"`
	Cardinality Cardinality `yaml:"cardinality"`
	Kind        ValueKind   `yaml:"kind"`
	Transform   Transform   `yaml:"transform,omitempty"`
}

// Schema is the complete table for one source type. Immutable after
// registration; shared read-only across all requests for that source.
type Schema struct {
	Source model.SourceType `yaml:"source"`

	// Subjects are URL templates (with {id}) for the record's root
	// resource. Several templates cover http/https and trailing-fragment
	// variation between mirrors of the same authority.
	Subjects []string `yaml:"subjects"`

	Entries []Entry `yaml:"entries"`
}

// SubjectsFor expands the subject templates for one external identifier.
func (s *Schema) SubjectsFor(externalID string) []string {
	out := make([]string, 0, len(s.Subjects))
	for _, tpl := range s.Subjects {
		out = append(out, strings.ReplaceAll(tpl, "{id}", externalID))
	}
	return out
}

// Validate checks structural soundness of the table.
func (s *Schema) Validate() error {
	if s.Source == "" {
		return fmt.Errorf("schema has no source type")
	}
	if len(s.Subjects) == 0 {
		return fmt.Errorf("schema %s: no subject templates", s.Source)
	}
	if len(s.Entries) == 0 {
		return fmt.Errorf("schema %s: no entries", s.Source)
	}
	for i, e := range s.Entries {
		if e.Predicate == "" || e.Field == "" {
			return fmt.Errorf("schema %s entry %d: predicate and field are required", s.Source, i)
		}
		switch e.Cardinality {
		case One, Many:
		default:
			return fmt.Errorf("schema %s field %s: invalid cardinality %q", s.Source, e.Field, e.Cardinality)
		}
		switch e.Kind {
		case KindString, KindLangString, KindDate, KindIRI:
		default:
			return fmt.Errorf("schema %s field %s: invalid kind %q", s.Source, e.Field, e.Kind)
		}
		switch e.Transform {
		case TransformNone, TransformFlipComma:
		default:
			return fmt.Errorf("schema %s field %s: unknown transform %q", s.Source, e.Field, e.Transform)
		}
	}
	return nil
}

// Registry is the process-wide source table set. Read-only after
// construction, so concurrent lookups need no locking.
type Registry struct {
	schemas map[model.SourceType]*Schema
}

// NewRegistry builds a registry from the given schemas, validating each.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[model.SourceType]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.schemas[s.Source]; dup {
			return nil, fmt.Errorf("duplicate schema for source %s", s.Source)
		}
		r.schemas[s.Source] = s
	}
	return r, nil
}

// Lookup returns the schema for a source type. Unregistered sources fail
// with an unknown_source error before any fetch is attempted.
func (r *Registry) Lookup(source model.SourceType) (*Schema, error) {
	s, ok := r.schemas[source]
	if !ok {
		return nil, model.Errf(model.KindUnknownSource, "unknown source type %q", source)
	}
	return s, nil
}

// Sources lists registered source types in stable order.
func (r *Registry) Sources() []model.SourceType {
	out := make([]model.SourceType, 0, len(r.schemas))
	for s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
