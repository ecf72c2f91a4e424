package schema

import "github.com/ppiankov/authlink/internal/model"

// Shared vocabulary IRIs that several authorities use.
const (
	rdfType        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	rdfsLabel      = "http://www.w3.org/2000/01/rdf-schema#label"
	owlSameAs      = "http://www.w3.org/2002/07/owl#sameAs"
	skosExactMatch = "http://www.w3.org/2004/02/skos/core#exactMatch"
)

// Builtin returns the registry with the built-in source tables. The
// predicate lists come from what each authority actually serves, not from
// any shared profile; overlap between them is coincidental.
func Builtin() *Registry {
	r, err := NewRegistry(viafSchema(), gndSchema(), isniSchema(), locSchema(), bnfSchema(), idrefSchema())
	if err != nil {
		// Built-in tables are validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return r
}

func viafSchema() *Schema {
	return &Schema{
		Source: model.SourceVIAF,
		Subjects: []string{
			"http://viaf.org/viaf/{id}",
			"https://viaf.org/viaf/{id}",
		},
		Entries: []Entry{
			{Predicate: "http://schema.org/name", Field: "name", Cardinality: One, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: "http://schema.org/alternateName", Field: "alias", Cardinality: Many, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: "http://schema.org/givenName", Field: "given_name", Cardinality: Many, Kind: KindLangString},
			{Predicate: "http://schema.org/familyName", Field: "family_name", Cardinality: Many, Kind: KindLangString},
			{Predicate: "http://schema.org/birthDate", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: "http://schema.org/deathDate", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: "http://schema.org/gender", Field: "gender", Cardinality: One, Kind: KindString},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: owlSameAs, Field: "same_as", Cardinality: Many, Kind: KindIRI},
			{Predicate: "http://schema.org/sameAs", Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}

func gndSchema() *Schema {
	const gnd = "https://d-nb.info/standards/elementset/gnd#"
	return &Schema{
		Source: model.SourceGND,
		Subjects: []string{
			"https://d-nb.info/gnd/{id}",
			"http://d-nb.info/gnd/{id}",
		},
		Entries: []Entry{
			{Predicate: gnd + "preferredNameForThePerson", Field: "name", Cardinality: One, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: gnd + "variantNameForThePerson", Field: "alias", Cardinality: Many, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: gnd + "dateOfBirth", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: gnd + "dateOfDeath", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: gnd + "gender", Field: "gender", Cardinality: One, Kind: KindIRI},
			{Predicate: gnd + "geographicAreaCode", Field: "country", Cardinality: Many, Kind: KindIRI},
			{Predicate: gnd + "professionOrOccupation", Field: "occupation", Cardinality: Many, Kind: KindIRI},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: owlSameAs, Field: "same_as", Cardinality: Many, Kind: KindIRI},
			{Predicate: skosExactMatch, Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}

func isniSchema() *Schema {
	return &Schema{
		Source: model.SourceISNI,
		Subjects: []string{
			"http://isni.org/isni/{id}",
			"https://isni.org/isni/{id}",
		},
		Entries: []Entry{
			{Predicate: "http://schema.org/name", Field: "name", Cardinality: One, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: rdfsLabel, Field: "alias", Cardinality: Many, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: "http://schema.org/birthDate", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: "http://schema.org/deathDate", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: owlSameAs, Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}

func locSchema() *Schema {
	const mads = "http://www.loc.gov/mads/rdf/v1#"
	return &Schema{
		Source: model.SourceLOC,
		Subjects: []string{
			"http://id.loc.gov/authorities/names/{id}",
			"https://id.loc.gov/authorities/names/{id}",
		},
		Entries: []Entry{
			{Predicate: mads + "authoritativeLabel", Field: "name", Cardinality: One, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: rdfsLabel, Field: "alias", Cardinality: Many, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: skosExactMatch, Field: "same_as", Cardinality: Many, Kind: KindIRI},
			{Predicate: mads + "hasCloseExternalAuthority", Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}

func bnfSchema() *Schema {
	const (
		skos   = "http://www.w3.org/2004/02/skos/core#"
		rdagr2 = "http://rdvocab.info/ElementsGr2/"
		bio    = "http://vocab.org/bio/0.1/"
	)
	return &Schema{
		Source: model.SourceBNF,
		Subjects: []string{
			"http://data.bnf.fr/ark:/12148/cb{id}#about",
			"https://data.bnf.fr/ark:/12148/cb{id}#about",
		},
		Entries: []Entry{
			{Predicate: skos + "prefLabel", Field: "name", Cardinality: One, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: skos + "altLabel", Field: "alias", Cardinality: Many, Kind: KindLangString, Transform: TransformFlipComma},
			{Predicate: rdagr2 + "dateOfBirth", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: rdagr2 + "dateOfDeath", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: bio + "birth", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: bio + "death", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: owlSameAs, Field: "same_as", Cardinality: Many, Kind: KindIRI},
			{Predicate: skosExactMatch, Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}

func idrefSchema() *Schema {
	const foaf = "http://xmlns.com/foaf/0.1/"
	return &Schema{
		Source: model.SourceIdRef,
		Subjects: []string{
			"http://www.idref.fr/{id}/id",
			"https://www.idref.fr/{id}/id",
		},
		Entries: []Entry{
			{Predicate: foaf + "name", Field: "name", Cardinality: One, Kind: KindLangString},
			{Predicate: foaf + "familyName", Field: "family_name", Cardinality: Many, Kind: KindLangString},
			{Predicate: foaf + "givenName", Field: "given_name", Cardinality: Many, Kind: KindLangString},
			{Predicate: foaf + "gender", Field: "gender", Cardinality: One, Kind: KindString},
			{Predicate: "http://purl.org/vocab/bio/0.1/birth", Field: "birth_date", Cardinality: One, Kind: KindDate},
			{Predicate: "http://purl.org/vocab/bio/0.1/death", Field: "death_date", Cardinality: One, Kind: KindDate},
			{Predicate: "http://dbpedia.org/ontology/citizenship", Field: "country", Cardinality: Many, Kind: KindIRI},
			{Predicate: rdfType, Field: "instance_of", Cardinality: Many, Kind: KindIRI},
			{Predicate: owlSameAs, Field: "same_as", Cardinality: Many, Kind: KindIRI},
		},
	}
}
