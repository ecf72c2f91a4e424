// Package rdf turns serialized graph documents into an in-memory triple
// store. It knows nothing about authority semantics; it only preserves
// triples and their first-seen order.
package rdf

// TermKind distinguishes IRI objects from literal objects.
type TermKind int

const (
	TermIRI TermKind = iota
	TermLiteral
)

// Object is the object position of a triple: an IRI, or a literal with an
// optional language tag or datatype IRI.
type Object struct {
	Kind     TermKind
	Value    string
	Language string // only for literals
	Datatype string // only for literals
}

// IRI builds an IRI object.
func IRI(value string) Object {
	return Object{Kind: TermIRI, Value: value}
}

// Literal builds a literal object.
func Literal(value, language, datatype string) Object {
	return Object{Kind: TermLiteral, Value: value, Language: language, Datatype: datatype}
}

// IsIRI reports whether the object is an IRI.
func (o Object) IsIRI() bool { return o.Kind == TermIRI }

// Triple is one (subject, predicate, object) edge.
type Triple struct {
	Subject   string
	Predicate string
	Object    Object
}

type spKey struct {
	s, p string
}

// Graph is an unordered set of triples with a (subject, predicate) index
// built at insertion time, so extraction never has to scan linearly.
// Insertion order is preserved per index slot to keep results
// deterministic across runs on the same input.
type Graph struct {
	triples []Triple
	index   map[spKey][]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[spKey][]int)}
}

// Add appends a triple and indexes it.
func (g *Graph) Add(t Triple) {
	key := spKey{t.Subject, t.Predicate}
	g.index[key] = append(g.index[key], len(g.triples))
	g.triples = append(g.triples, t)
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Objects returns the objects of all (subject, predicate, *) triples in
// first-seen order.
func (g *Graph) Objects(subject, predicate string) []Object {
	idxs := g.index[spKey{subject, predicate}]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Object, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.triples[i].Object)
	}
	return out
}

// Triples returns all triples in insertion order. The slice is shared;
// callers must not mutate it.
func (g *Graph) Triples() []Triple { return g.triples }
