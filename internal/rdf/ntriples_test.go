package rdf

import (
	"strings"
	"testing"
)

func TestNTriples_Basic(t *testing.T) {
	doc := `# comment
<http://example.org/a> <http://schema.org/name> "Doe, Jane"@en .
<http://example.org/a> <http://www.w3.org/2002/07/owl#sameAs> <http://example.org/b> .

<http://example.org/a> <http://schema.org/birthDate> "1950-05-17"^^<http://www.w3.org/2001/XMLSchema#date> .
`
	g, err := (&ntriplesParser{}).Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 triples, got %d", g.Len())
	}

	names := g.Objects("http://example.org/a", "http://schema.org/name")
	if len(names) != 1 || names[0].Value != "Doe, Jane" || names[0].Language != "en" {
		t.Errorf("unexpected name objects: %+v", names)
	}

	same := g.Objects("http://example.org/a", "http://www.w3.org/2002/07/owl#sameAs")
	if len(same) != 1 || !same[0].IsIRI() || same[0].Value != "http://example.org/b" {
		t.Errorf("unexpected sameAs objects: %+v", same)
	}

	dates := g.Objects("http://example.org/a", "http://schema.org/birthDate")
	if len(dates) != 1 || dates[0].Datatype != "http://www.w3.org/2001/XMLSchema#date" {
		t.Errorf("unexpected date objects: %+v", dates)
	}
}

func TestNTriples_Escapes(t *testing.T) {
	doc := `<http://example.org/a> <http://schema.org/name> "say \"hi\"\né" .` + "\n"
	g, err := (&ntriplesParser{}).Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	objs := g.Objects("http://example.org/a", "http://schema.org/name")
	if len(objs) != 1 || objs[0].Value != "say \"hi\"\né" {
		t.Errorf("unexpected value: %q", objs[0].Value)
	}
}

func TestNTriples_LanguageTagBeforeDot(t *testing.T) {
	// The terminating dot may follow the tag with no whitespace between.
	doc := `<http://example.org/a> <http://schema.org/name> "Doe, Jane"@en-GB.` + "\n"
	g, err := (&ntriplesParser{}).Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	objs := g.Objects("http://example.org/a", "http://schema.org/name")
	if len(objs) != 1 || objs[0].Value != "Doe, Jane" || objs[0].Language != "en-GB" {
		t.Errorf("unexpected objects: %+v", objs)
	}
}

func TestNTriples_BlankNodes(t *testing.T) {
	doc := `_:b1 <http://schema.org/name> "Jane" .` + "\n"
	g, err := (&ntriplesParser{}).Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	objs := g.Objects("_:b1", "http://schema.org/name")
	if len(objs) != 1 {
		t.Errorf("blank node subject lost: %+v", objs)
	}
}

func TestNTriples_Errors(t *testing.T) {
	bad := []string{
		`<http://a> <http://p> "x"`,                 // missing dot
		`<http://a> "not-a-predicate" <http://b> .`, // literal predicate
		`<http://a> <http://p> "unterminated .`,
		`<http://a> <http://p> "x"@ .`, // empty language tag
		`junk line`,
	}
	for _, doc := range bad {
		if _, err := (&ntriplesParser{}).Parse(strings.NewReader(doc + "\n")); err == nil {
			t.Errorf("expected error for %q", doc)
		}
		if _, err := (&ntriplesParser{}).Parse(strings.NewReader(doc + "\n")); err != nil && !strings.Contains(err.Error(), "line 1") {
			t.Errorf("expected line number in error, got %v", err)
		}
	}
}

func TestGraph_ObjectsOrder(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{"s", "p", Literal("first", "", "")})
	g.Add(Triple{"s", "p", Literal("second", "", "")})
	objs := g.Objects("s", "p")
	if len(objs) != 2 || objs[0].Value != "first" || objs[1].Value != "second" {
		t.Errorf("insertion order not preserved: %+v", objs)
	}
}

func TestRegistry_Parse(t *testing.T) {
	r := NewRegistry()
	g, err := r.Parse(FormatNTriples, []byte(`<http://a> <http://p> "x" .`+"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 triple, got %d", g.Len())
	}

	if _, err := r.Parse(Format("turtle"), nil); err == nil {
		t.Error("expected error for unregistered format")
	}
}
