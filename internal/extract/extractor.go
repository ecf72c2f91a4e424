// Package extract walks a parsed graph with the active source's schema
// and produces normalized fields keyed by semantic name. Authority
// records are sparse and messy: absent predicates are normal, duplicate
// values and unparsable literals degrade to warnings, never to failures.
package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/normalize"
	"github.com/ppiankov/authlink/internal/rdf"
	"github.com/ppiankov/authlink/internal/schema"
)

// Field is one extracted field with its normalized values in first-seen
// triple order.
type Field struct {
	Name   string
	Kind   schema.ValueKind
	Values []model.CanonicalValue
}

// Result is the extraction output: fields by name, plus the order in
// which fields first appeared so downstream output stays deterministic.
type Result struct {
	Fields   map[string]*Field
	Order    []string
	Warnings []string
}

// Extractor pulls normalized fields out of a graph. Stateless; safe for
// concurrent use.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract walks the schema entries in declared order and collects
// normalized values for each field. The graph is not retained.
func (e *Extractor) Extract(g *rdf.Graph, sc *schema.Schema, externalID string) *Result {
	res := &Result{Fields: make(map[string]*Field)}
	subjects := sc.SubjectsFor(externalID)

	for _, entry := range sc.Entries {
		for _, subject := range subjects {
			for _, obj := range g.Objects(subject, entry.Predicate) {
				e.addValue(res, entry, obj)
			}
		}
	}
	return res
}

func (e *Extractor) addValue(res *Result, entry schema.Entry, obj rdf.Object) {
	value, err := normalize.Value(obj, entry.Kind)
	if err != nil {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("field %s: dropped value: %v", entry.Field, err))
		return
	}
	if entry.Transform == schema.TransformFlipComma && value.Type == model.ValueText {
		value.Text = flipComma(value.Text)
	}

	f := res.Fields[entry.Field]
	if f == nil {
		f = &Field{Name: entry.Field, Kind: entry.Kind}
		res.Fields[entry.Field] = f
		res.Order = append(res.Order, entry.Field)
	}

	if entry.Cardinality == schema.One && len(f.Values) > 0 {
		// First value is authoritative; later ones are recorded but never
		// silently promoted.
		if !f.Values[0].Equal(value) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("field %s: duplicate value %s ignored (kept %s)", entry.Field, value, f.Values[0]))
		}
		return
	}

	// Exact repeats of an already-kept value add nothing; distinct values
	// under cardinality many are all kept as independent values.
	for _, existing := range f.Values {
		if existing.Equal(value) {
			return
		}
	}
	f.Values = append(f.Values, value)
}

// flipComma rewrites "Last, First" as "First Last". Labels with more or
// fewer than two comma-separated parts pass through unchanged.
func flipComma(s string) string {
	parts := strings.Split(s, ", ")
	if len(parts) != 2 {
		return s
	}
	return parts[1] + " " + parts[0]
}
