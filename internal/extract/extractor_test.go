package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/rdf"
	"github.com/ppiankov/authlink/internal/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Source:   "TEST",
		Subjects: []string{"http://test.example/{id}", "https://test.example/{id}"},
		Entries: []schema.Entry{
			{Predicate: "http://schema.org/name", Field: "name", Cardinality: schema.One, Kind: schema.KindLangString, Transform: schema.TransformFlipComma},
			{Predicate: "http://schema.org/alternateName", Field: "alias", Cardinality: schema.Many, Kind: schema.KindLangString},
			{Predicate: "http://schema.org/birthDate", Field: "birth_date", Cardinality: schema.One, Kind: schema.KindDate},
			{Predicate: "http://www.w3.org/2002/07/owl#sameAs", Field: "same_as", Cardinality: schema.Many, Kind: schema.KindIRI},
		},
	}
}

func TestExtract_Basic(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/name", Object: rdf.Literal("Doe, Jane", "en", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/birthDate", Object: rdf.Literal("1950-05", "", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://www.w3.org/2002/07/owl#sameAs", Object: rdf.IRI("http://viaf.org/viaf/123")})

	res := New().Extract(g, testSchema(), "42")
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	name := res.Fields["name"]
	if name == nil || len(name.Values) != 1 {
		t.Fatalf("name field missing: %+v", res.Fields)
	}
	if name.Values[0].Text != "Jane Doe" {
		t.Errorf("flip_comma not applied: %q", name.Values[0].Text)
	}
	if name.Values[0].Language != "en" {
		t.Errorf("language lost: %q", name.Values[0].Language)
	}

	birth := res.Fields["birth_date"]
	if birth == nil || len(birth.Values) != 1 || birth.Values[0].Precision != model.PrecisionMonth {
		t.Fatalf("birth_date field wrong: %+v", birth)
	}

	if res.Fields["alias"] != nil {
		t.Error("absent predicate should produce no field")
	}

	wantOrder := []string{"name", "birth_date", "same_as"}
	if len(res.Order) != len(wantOrder) {
		t.Fatalf("unexpected order: %v", res.Order)
	}
	for i, f := range wantOrder {
		if res.Order[i] != f {
			t.Errorf("order[%d] = %s, want %s", i, res.Order[i], f)
		}
	}
}

func TestExtract_CardinalityOneConflict(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/birthDate", Object: rdf.Literal("1950", "", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/birthDate", Object: rdf.Literal("1951", "", "")})

	res := New().Extract(g, testSchema(), "42")
	birth := res.Fields["birth_date"]
	if len(birth.Values) != 1 || birth.Values[0].Year != 1950 {
		t.Fatalf("first value should win: %+v", birth.Values)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "duplicate value") {
		t.Errorf("expected conflict warning, got %v", res.Warnings)
	}
}

func TestExtract_CardinalityOneIdenticalRepeat(t *testing.T) {
	// The same record served under http and https subjects repeats every
	// value; identical repeats are not conflicts.
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/name", Object: rdf.Literal("Doe, Jane", "en", "")})
	g.Add(rdf.Triple{Subject: "https://test.example/42", Predicate: "http://schema.org/name", Object: rdf.Literal("Doe, Jane", "en", "")})

	res := New().Extract(g, testSchema(), "42")
	if len(res.Warnings) != 0 {
		t.Errorf("identical repeat should not warn: %v", res.Warnings)
	}
	if len(res.Fields["name"].Values) != 1 {
		t.Errorf("expected a single kept value: %+v", res.Fields["name"].Values)
	}
}

func TestExtract_CardinalityManyDedup(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/alternateName", Object: rdf.Literal("J. Doe", "", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/alternateName", Object: rdf.Literal("J. Doe", "", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/alternateName", Object: rdf.Literal("Jane D.", "", "")})

	res := New().Extract(g, testSchema(), "42")
	alias := res.Fields["alias"]
	if len(alias.Values) != 2 {
		t.Fatalf("expected 2 distinct values, got %+v", alias.Values)
	}
	if alias.Values[0].Text != "J. Doe" || alias.Values[1].Text != "Jane D." {
		t.Errorf("order not preserved: %+v", alias.Values)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("exact duplicates under many should not warn: %v", res.Warnings)
	}
}

func TestExtract_BadValueWarns(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/birthDate", Object: rdf.Literal("circa 1950", "", "")})
	g.Add(rdf.Triple{Subject: "http://test.example/42", Predicate: "http://schema.org/name", Object: rdf.Literal("Doe, Jane", "", "")})

	res := New().Extract(g, testSchema(), "42")
	if res.Fields["birth_date"] != nil {
		t.Error("unparseable value should not create the field")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "dropped value") {
		t.Errorf("expected drop warning, got %v", res.Warnings)
	}
	if res.Fields["name"] == nil {
		t.Error("other fields should survive a dropped value")
	}
}

func TestFlipComma(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Doe, Jane", "Jane Doe"},
		{"Jane Doe", "Jane Doe"},
		{"One, Two, Three", "One, Two, Three"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := flipComma(tt.in); got != tt.want {
			t.Errorf("flipComma(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
