package rdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format names a supported graph serialization.
type Format string

const (
	FormatRDFXML   Format = "rdfxml"
	FormatNTriples Format = "ntriples"
)

// ParseFormat normalizes a format string from config or CLI input.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rdfxml", "rdf/xml", "rdf+xml", "xml":
		return FormatRDFXML, nil
	case "ntriples", "n-triples", "nt":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("unsupported graph format %q", s)
	}
}

// Parser turns one serialization into a Graph. Parsers are pure: no
// network or file access, raw bytes in, triples out.
type Parser interface {
	Format() Format
	Parse(r io.Reader) (*Graph, error)
}

// Registry maps declared formats to parsers. New serializations register
// here without changing downstream stages.
type Registry struct {
	parsers map[Format]Parser
}

// NewRegistry returns a registry with the built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[Format]Parser)}
	r.Register(&rdfxmlParser{})
	r.Register(&ntriplesParser{})
	return r
}

// Register adds or replaces the parser for its format.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Format()] = p
}

// Parse decodes data using the parser registered for format.
func (r *Registry) Parse(format Format, data []byte) (*Graph, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format %q", format)
	}
	g, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return g, nil
}
