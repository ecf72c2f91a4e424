// Package normalize converts raw graph objects into canonical scalar
// values. It is pure and per-value: a failure here never aborts a
// conversion, the extractor turns it into a warning instead.
package normalize

import (
	"fmt"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/rdf"
	"github.com/ppiankov/authlink/internal/schema"
)

// Value coerces one graph object to the expected kind.
func Value(obj rdf.Object, kind schema.ValueKind) (model.CanonicalValue, error) {
	switch kind {
	case schema.KindString:
		if obj.IsIRI() {
			return model.CanonicalValue{}, fmt.Errorf("expected literal, got IRI %s", obj.Value)
		}
		// Plain strings discard the tag; identifiers and vocabulary
		// literals are not language-bearing text.
		return model.NewText(obj.Value, ""), nil

	case schema.KindLangString:
		if obj.IsIRI() {
			return model.CanonicalValue{}, fmt.Errorf("expected literal, got IRI %s", obj.Value)
		}
		return model.NewText(obj.Value, obj.Language), nil

	case schema.KindDate:
		if obj.IsIRI() {
			return model.CanonicalValue{}, fmt.Errorf("expected date literal, got IRI %s", obj.Value)
		}
		return Date(obj.Value)

	case schema.KindIRI:
		if !obj.IsIRI() {
			return model.CanonicalValue{}, fmt.Errorf("expected IRI, got literal %q", obj.Value)
		}
		if strings.HasPrefix(obj.Value, "_:") {
			return model.CanonicalValue{}, fmt.Errorf("blank node %s cannot be an external identifier", obj.Value)
		}
		return model.NewExternalID(obj.Value), nil

	default:
		return model.CanonicalValue{}, fmt.Errorf("unknown value kind %q", kind)
	}
}
