package mapping

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/authlink/internal/extract"
	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/schema"
)

var testRetrieved = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func makeResult(fields ...*extract.Field) *extract.Result {
	res := &extract.Result{Fields: make(map[string]*extract.Field)}
	for _, f := range fields {
		res.Fields[f.Name] = f
		res.Order = append(res.Order, f.Name)
	}
	return res
}

func TestMap_OwnIdentifierFirst(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "113230702"}
	statements, warnings := New().Map(makeResult(), ref, testRetrieved)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(statements) != 1 {
		t.Fatalf("expected only the own-id statement, got %d", len(statements))
	}
	s := statements[0]
	if s.PropertyID != "P214" || s.Value.ID != "113230702" {
		t.Errorf("unexpected own-id statement: %+v", s)
	}
	if s.Reference.SourceType != model.SourceVIAF || !s.Reference.RetrievedAt.Equal(testRetrieved) {
		t.Errorf("provenance missing: %+v", s.Reference)
	}
}

func TestPropertyForSource_Builtins(t *testing.T) {
	tests := []struct {
		source model.SourceType
		want   string
	}{
		{model.SourceVIAF, "P214"},
		{model.SourceGND, "P227"},
		{model.SourceISNI, "P213"},
		{model.SourceLOC, "P244"},
		{model.SourceBNF, "P268"},
		{model.SourceIdRef, "P269"},
	}
	for _, tt := range tests {
		got, ok := PropertyForSource(tt.source)
		if !ok {
			t.Errorf("no identifier property for %s", tt.source)
			continue
		}
		if got != tt.want {
			t.Errorf("PropertyForSource(%s) = %s, want %s", tt.source, got, tt.want)
		}
	}
	if _, ok := PropertyForSource("CUSTOM"); ok {
		t.Error("schema-file-only sources have no identifier property")
	}
}

func TestMap_TextFieldWithQualifier(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"}
	res := makeResult(&extract.Field{
		Name:   "name",
		Kind:   schema.KindLangString,
		Values: []model.CanonicalValue{model.NewText("Jane Doe", "en")},
	})
	statements, _ := New().Map(res, ref, testRetrieved)
	if len(statements) != 2 {
		t.Fatalf("expected own-id plus name, got %d", len(statements))
	}
	name := statements[1]
	if name.PropertyID != PropName {
		t.Errorf("unexpected property: %s", name.PropertyID)
	}
	q, ok := name.Qualifiers[PropLanguageOfName]
	if !ok || q.Text != "en" {
		t.Errorf("expected language qualifier, got %+v", name.Qualifiers)
	}
}

func TestMap_UndeterminedLanguageNoQualifier(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"}
	res := makeResult(&extract.Field{
		Name:   "name",
		Kind:   schema.KindLangString,
		Values: []model.CanonicalValue{model.NewText("Jane Doe", "")},
	})
	statements, _ := New().Map(res, ref, testRetrieved)
	if len(statements[1].Qualifiers) != 0 {
		t.Errorf("und text should carry no qualifier: %+v", statements[1].Qualifiers)
	}
}

func TestMap_SameAs(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceGND, ExternalID: "118540238"}
	res := makeResult(&extract.Field{
		Name: "same_as",
		Kind: schema.KindIRI,
		Values: []model.CanonicalValue{
			model.NewExternalID("http://viaf.org/viaf/54146999"),
			model.NewExternalID("https://www.wikidata.org/entity/Q5879"),
			model.NewExternalID("https://example.org/goethe"),
		},
	})
	statements, warnings := New().Map(res, ref, testRetrieved)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	// own GND id, recognized VIAF link, fallback described-at; the
	// knowledge-base self-link is dropped entirely.
	if len(statements) != 3 {
		t.Fatalf("expected 3 statements, got %d: %+v", len(statements), statements)
	}
	if statements[0].PropertyID != "P227" || statements[0].Value.ID != "118540238" {
		t.Errorf("own id wrong: %+v", statements[0])
	}
	if statements[1].PropertyID != "P214" || statements[1].Value.ID != "54146999" {
		t.Errorf("viaf link wrong: %+v", statements[1])
	}
	if statements[2].PropertyID != PropDescribedAtURL || statements[2].Value.ID != "https://example.org/goethe" {
		t.Errorf("fallback wrong: %+v", statements[2])
	}
}

func TestMap_GenderVocabulary(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"}
	res := makeResult(&extract.Field{
		Name: "gender",
		Kind: schema.KindString,
		Values: []model.CanonicalValue{
			model.NewText("female", ""),
		},
	})
	statements, warnings := New().Map(res, ref, testRetrieved)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	gender := statements[1]
	if gender.PropertyID != PropGender || gender.Value.ID != "Q6581072" {
		t.Errorf("unexpected gender statement: %+v", gender)
	}
}

func TestMap_UnknownVocabularyValueWarns(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"}
	res := makeResult(&extract.Field{
		Name:   "gender",
		Kind:   schema.KindString,
		Values: []model.CanonicalValue{model.NewText("unbekannt", "")},
	})
	statements, warnings := New().Map(res, ref, testRetrieved)
	if len(statements) != 1 {
		t.Fatalf("unknown vocabulary value must not produce a statement: %+v", statements)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no P21 mapping") {
		t.Errorf("expected vocabulary warning, got %v", warnings)
	}
}

func TestMap_UnmappedFieldWarns(t *testing.T) {
	ref := model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"}
	res := makeResult(&extract.Field{
		Name:   "shoe_size",
		Kind:   schema.KindString,
		Values: []model.CanonicalValue{model.NewText("42", "")},
	})
	statements, warnings := New().Map(res, ref, testRetrieved)
	if len(statements) != 1 {
		t.Fatalf("unmapped field must not produce statements: %+v", statements)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no property mapping") {
		t.Errorf("expected mapping-gap warning, got %v", warnings)
	}
}

func TestMap_Dedup(t *testing.T) {
	// The own ISNI id and a sameAs link to the same ISNI collapse into one
	// statement.
	ref := model.AuthorityReference{SourceType: model.SourceISNI, ExternalID: "0000000121371463"}
	res := makeResult(&extract.Field{
		Name:   "same_as",
		Kind:   schema.KindIRI,
		Values: []model.CanonicalValue{model.NewExternalID("http://isni.org/isni/0000000121371463")},
	})
	statements, _ := New().Map(res, ref, testRetrieved)
	if len(statements) != 1 {
		t.Fatalf("expected deduplicated statement list, got %+v", statements)
	}
}

func TestCandidateStatement_Matches(t *testing.T) {
	s := model.CandidateStatement{PropertyID: "P214", Value: model.NewExternalID("1")}
	if !s.Matches("P214", model.NewExternalID("1")) {
		t.Error("expected match")
	}
	if s.Matches("P227", model.NewExternalID("1")) {
		t.Error("property must participate in matching")
	}
}
