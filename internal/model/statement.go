package model

import "time"

// Reference records the provenance of a candidate statement: which
// authority record it came from and when that record was retrieved.
type Reference struct {
	SourceType  SourceType `json:"source_type"`
	ExternalID  string     `json:"external_id"`
	RetrievedAt time.Time  `json:"retrieved_at"`
}

// CandidateStatement is a proposed (property, value) fact with provenance.
// Statements are immutable once built; the reconciler only filters them.
type CandidateStatement struct {
	PropertyID string                    `json:"property_id"`
	Value      CanonicalValue            `json:"value"`
	Qualifiers map[string]CanonicalValue `json:"qualifiers,omitempty"`
	Reference  Reference                 `json:"reference"`
}

// Matches reports whether the statement proposes the given property/value
// pair. Qualifiers and references are deliberately ignored: a statement is
// a duplicate of an existing one as soon as property and value coincide.
func (s CandidateStatement) Matches(propertyID string, value CanonicalValue) bool {
	return s.PropertyID == propertyID && s.Value.Equal(value)
}
