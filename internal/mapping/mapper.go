package mapping

import (
	"fmt"
	"time"

	"github.com/ppiankov/authlink/internal/extract"
	"github.com/ppiankov/authlink/internal/model"
)

// Mapper turns normalized fields into candidate statements. It is pure:
// the retrieval timestamp is supplied by the caller, never sampled here.
type Mapper struct{}

// New returns a Mapper.
func New() *Mapper {
	return &Mapper{}
}

type statementKey struct {
	property string
	value    model.CanonicalValue
}

// Map produces the ordered statement list for one extraction result.
// Every statement carries a provenance reference naming the source
// authority, the external identifier and the retrieval timestamp.
func (m *Mapper) Map(res *extract.Result, ref model.AuthorityReference, retrievedAt time.Time) ([]model.CandidateStatement, []string) {
	provenance := model.Reference{
		SourceType:  ref.SourceType,
		ExternalID:  ref.ExternalID,
		RetrievedAt: retrievedAt,
	}

	var statements []model.CandidateStatement
	var warnings []string
	seen := make(map[statementKey]bool)

	add := func(property string, value model.CanonicalValue, qualifiers map[string]model.CanonicalValue) {
		key := statementKey{property, value}
		if seen[key] {
			return
		}
		seen[key] = true
		statements = append(statements, model.CandidateStatement{
			PropertyID: property,
			Value:      value,
			Qualifiers: qualifiers,
			Reference:  provenance,
		})
	}

	// The record's own identifier always comes first, so the proposal can
	// be matched back to its source even without reconciliation.
	if property, ok := PropertyForSource(ref.SourceType); ok {
		add(property, model.NewExternalID(fixIDValue(property, ref.ExternalID)), nil)
	}

	for _, name := range res.Order {
		field := res.Fields[name]
		switch name {
		case "same_as":
			m.mapSameAs(field, add)
		case "gender":
			m.mapVocabulary(field, PropGender, ItemForGender, add, &warnings)
		case "instance_of":
			m.mapVocabulary(field, PropInstanceOf, ItemForType, add, &warnings)
		default:
			property, ok := PropertyForField(name)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("field %s has no property mapping; skipped", name))
				continue
			}
			for _, v := range field.Values {
				add(property, v, textQualifiers(v))
			}
		}
	}
	return statements, warnings
}

// mapSameAs expands sameAs links into per-authority identifier statements.
// Unrecognized URLs degrade to a described-at-URL statement rather than
// being dropped; knowledge-base self-links are never emitted.
func (m *Mapper) mapSameAs(field *extract.Field, add func(string, model.CanonicalValue, map[string]model.CanonicalValue)) {
	for _, v := range field.Values {
		iri := rawValue(v)
		if SkipIRI(iri) {
			continue
		}
		if property, id, ok := FromIRI(iri); ok {
			add(property, model.NewExternalID(id), nil)
			continue
		}
		add(PropDescribedAtURL, model.NewExternalID(iri), nil)
	}
}

// mapVocabulary emits item statements for values the vocabulary knows and
// warnings for the rest.
func (m *Mapper) mapVocabulary(field *extract.Field, property string, lookup func(string) (string, bool), add func(string, model.CanonicalValue, map[string]model.CanonicalValue), warnings *[]string) {
	for _, v := range field.Values {
		raw := rawValue(v)
		if item, ok := lookup(raw); ok {
			add(property, model.NewExternalID(item), nil)
		} else {
			*warnings = append(*warnings, fmt.Sprintf("field %s: no %s mapping for %q; skipped", field.Name, property, raw))
		}
	}
}

// rawValue flattens a canonical value to the string the vocabularies key
// on: literal text or IRI.
func rawValue(v model.CanonicalValue) string {
	if v.Type == model.ValueExternalID {
		return v.ID
	}
	return v.Text
}

// textQualifiers attaches a language-of-name qualifier to tagged text;
// undetermined-language text gets none.
func textQualifiers(v model.CanonicalValue) map[string]model.CanonicalValue {
	if v.Type != model.ValueText || v.Language == model.LangUndetermined || v.Language == "" {
		return nil
	}
	return map[string]model.CanonicalValue{
		PropLanguageOfName: model.NewText(v.Language, ""),
	}
}
