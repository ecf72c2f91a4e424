package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ntriplesParser decodes the line-based N-Triples serialization. It exists
// to prove the parser seam: downstream stages never know which
// serialization produced the graph.
type ntriplesParser struct{}

func (*ntriplesParser) Format() Format { return FormatNTriples }

func (*ntriplesParser) Parse(r io.Reader) (*Graph, error) {
	g := NewGraph()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := parseTripleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		g.Add(t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseTripleLine(line string) (Triple, error) {
	rest := line

	subject, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("subject: %w", err)
	}
	if subject.Kind != TermIRI {
		return Triple{}, fmt.Errorf("subject must be an IRI or blank node")
	}

	predicate, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("predicate: %w", err)
	}
	if predicate.Kind != TermIRI || strings.HasPrefix(predicate.Value, "_:") {
		return Triple{}, fmt.Errorf("predicate must be an IRI")
	}

	object, rest, err := parseTerm(rest)
	if err != nil {
		return Triple{}, fmt.Errorf("object: %w", err)
	}

	if strings.TrimSpace(rest) != "." {
		return Triple{}, fmt.Errorf("missing terminating dot")
	}
	return Triple{Subject: subject.Value, Predicate: predicate.Value, Object: object}, nil
}

// parseTerm consumes one term from the front of s and returns the rest.
// Blank nodes come back as IRI-kind objects with a "_:" prefix.
func parseTerm(s string) (Object, string, error) {
	s = strings.TrimLeft(s, " \t")
	switch {
	case strings.HasPrefix(s, "<"):
		end := strings.Index(s, ">")
		if end < 0 {
			return Object{}, "", fmt.Errorf("unterminated IRI")
		}
		return IRI(s[1:end]), s[end+1:], nil

	case strings.HasPrefix(s, "_:"):
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			end = len(s)
		}
		return IRI(s[:end]), s[end:], nil

	case strings.HasPrefix(s, `"`):
		value, rest, err := parseQuoted(s)
		if err != nil {
			return Object{}, "", err
		}
		switch {
		case strings.HasPrefix(rest, "@"):
			end := 1
			for end < len(rest) && isLangTagByte(rest[end]) {
				end++
			}
			if end == 1 {
				return Object{}, "", fmt.Errorf("empty language tag")
			}
			return Literal(value, rest[1:end], ""), rest[end:], nil
		case strings.HasPrefix(rest, "^^<"):
			end := strings.Index(rest, ">")
			if end < 0 {
				return Object{}, "", fmt.Errorf("unterminated datatype IRI")
			}
			return Literal(value, "", rest[3:end]), rest[end+1:], nil
		default:
			return Literal(value, "", ""), rest, nil
		}

	default:
		return Object{}, "", fmt.Errorf("unrecognized term at %q", truncate(s, 20))
	}
}

// parseQuoted consumes a double-quoted literal with N-Triples escapes.
func parseQuoted(s string) (string, string, error) {
	var b strings.Builder
	i := 1 // past opening quote
	for i < len(s) {
		c := s[i]
		switch c {
		case '"':
			return b.String(), s[i+1:], nil
		case '\\':
			if i+1 >= len(s) {
				return "", "", fmt.Errorf("dangling escape")
			}
			i++
			switch s[i] {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(s[i])
			case 'u', 'U':
				size := 4
				if s[i] == 'U' {
					size = 8
				}
				if i+size >= len(s) {
					return "", "", fmt.Errorf("truncated unicode escape")
				}
				code, err := strconv.ParseUint(s[i+1:i+1+size], 16, 32)
				if err != nil {
					return "", "", fmt.Errorf("invalid unicode escape: %w", err)
				}
				b.WriteRune(rune(code))
				i += size
			default:
				return "", "", fmt.Errorf("unknown escape \\%c", s[i])
			}
		default:
			b.WriteByte(c)
		}
		i++
	}
	return "", "", fmt.Errorf("unterminated literal")
}

// isLangTagByte reports whether c may appear in a language tag. The tag
// ends at the first other byte, which need not be whitespace: "x"@en. is
// a complete statement.
func isLangTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
