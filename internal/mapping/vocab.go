package mapping

// Value vocabularies: fixed translations from source-vocabulary literals
// and IRIs to knowledge-base items. Unknown values are reported as
// warnings by the mapper; a meaning is never guessed.

// genderItems maps the gender encodings the supported authorities use.
// GND serves IRIs, VIAF and IdRef serve plain literals, BNE Spanish ones.
var genderItems = map[string]string{
	"male":   "Q6581097",
	"female": "Q6581072",
	"https://d-nb.info/standards/vocab/gnd/gender#male":   "Q6581097",
	"https://d-nb.info/standards/vocab/gnd/gender#female": "Q6581072",
	"Masculino": "Q6581097",
	"Femenino":  "Q6581072",
}

// ItemForGender resolves a raw gender value to an item.
func ItemForGender(raw string) (string, bool) {
	item, ok := genderItems[raw]
	return item, ok
}

// typeItems maps rdf:type IRIs that denote a human being.
var typeItems = map[string]string{
	"http://schema.org/Person":         "Q5",
	"http://xmlns.com/foaf/0.1/Person": "Q5",
	"https://id.kb.se/vocab/Person":    "Q5",
	"https://d-nb.info/standards/elementset/gnd#DifferentiatedPerson": "Q5",
	"http://www.loc.gov/mads/rdf/v1#PersonalName":                     "Q5",
	"http://rdaregistry.info/Elements/c/C10004":                       "Q5",
}

// ItemForType resolves an rdf:type IRI to an item.
func ItemForType(iri string) (string, bool) {
	item, ok := typeItems[iri]
	return item, ok
}
