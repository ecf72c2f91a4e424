// Package mapping converts normalized fields into candidate statements
// against the canonical property vocabulary. The field-to-property table
// is keyed by semantic field name, not by source: the same field from two
// different authorities always lands on the same property. This is the
// mechanism that unifies heterogeneous vocabularies into one output.
package mapping

import "github.com/ppiankov/authlink/internal/model"

// Canonical property identifiers (Wikidata-compatible).
const (
	PropName           = "P2561" // name
	PropAlias          = "P4970" // alternative name
	PropGivenName      = "P735"  // given name
	PropFamilyName     = "P734"  // family name
	PropBirthDate      = "P569"  // date of birth
	PropDeathDate      = "P570"  // date of death
	PropGender         = "P21"   // sex or gender
	PropCountry        = "P27"   // country of citizenship
	PropOccupation     = "P106"  // occupation
	PropInstanceOf     = "P31"   // instance of
	PropDescribedAtURL = "P973"  // described at URL
	PropLanguageOfName = "P407"  // language of work or name (qualifier)
)

// fieldProperties maps semantic field names to properties. Fields absent
// here are reported as mapping gaps, never invented. The same_as field is
// not listed: its values expand into per-authority identifier statements
// instead of a single property.
var fieldProperties = map[string]string{
	"name":        PropName,
	"alias":       PropAlias,
	"given_name":  PropGivenName,
	"family_name": PropFamilyName,
	"birth_date":  PropBirthDate,
	"death_date":  PropDeathDate,
	"gender":      PropGender,
	"country":     PropCountry,
	"occupation":  PropOccupation,
	"instance_of": PropInstanceOf,
}

// PropertyForField looks up the canonical property for a field name.
func PropertyForField(field string) (string, bool) {
	p, ok := fieldProperties[field]
	return p, ok
}

// sourceProperties maps each built-in source type to the property holding
// its own identifier. Every conversion proposes this statement so the
// record can be found again.
var sourceProperties = map[model.SourceType]string{
	model.SourceVIAF:  "P214",
	model.SourceGND:   "P227",
	model.SourceISNI:  "P213",
	model.SourceLOC:   "P244",
	model.SourceBNF:   "P268",
	model.SourceIdRef: "P269",
}

// PropertyForSource looks up the identifier property for a source type.
// Custom sources registered only through a schema file have no identifier
// property and get no own-id statement.
func PropertyForSource(source model.SourceType) (string, bool) {
	p, ok := sourceProperties[source]
	return p, ok
}
