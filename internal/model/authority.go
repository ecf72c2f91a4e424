package model

import (
	"fmt"
	"strings"
)

// SourceType identifies an external naming authority.
type SourceType string

const (
	SourceVIAF  SourceType = "VIAF"  // Virtual International Authority File
	SourceGND   SourceType = "GND"   // Deutsche Nationalbibliothek
	SourceISNI  SourceType = "ISNI"  // International Standard Name Identifier
	SourceLOC   SourceType = "LOC"   // Library of Congress name authorities
	SourceBNF   SourceType = "BNF"   // Bibliothèque nationale de France
	SourceIdRef SourceType = "IDREF" // IdRef (SUDOC)
)

// AuthorityReference identifies one record to convert.
// Created at request entry, immutable for the request's duration.
type AuthorityReference struct {
	SourceType SourceType `json:"source_type"`
	ExternalID string     `json:"external_id"`
}

// String renders the reference in SOURCE:id form.
func (r AuthorityReference) String() string {
	return string(r.SourceType) + ":" + r.ExternalID
}

// ParseAuthorityReference parses a SOURCE:id string such as "VIAF:113230702".
func ParseAuthorityReference(s string) (AuthorityReference, error) {
	source, id, ok := strings.Cut(s, ":")
	if !ok || source == "" || id == "" {
		return AuthorityReference{}, fmt.Errorf("invalid authority reference %q (want SOURCE:id)", s)
	}
	return AuthorityReference{
		SourceType: SourceType(strings.ToUpper(strings.TrimSpace(source))),
		ExternalID: strings.TrimSpace(id),
	}, nil
}
