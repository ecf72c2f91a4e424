package mapping

import (
	"regexp"
	"strings"
)

// idPattern recognizes one authority's record URLs and extracts the bare
// identifier for the matching property.
type idPattern struct {
	re       *regexp.Regexp
	template string
	property string
}

// idPatterns covers the URL shapes that show up in sameAs/exactMatch
// links between authority files. Patterns must cover the whole URL, hence
// the ^$ anchors.
var idPatterns = []idPattern{
	{regexp.MustCompile(`^https?://viaf\.org/viaf/(\d+)$`), "$1", "P214"},
	{regexp.MustCompile(`^https?://(?:www\.)?isni\.org/isni/(\d{15}[\dX])$`), "$1", "P213"},
	{regexp.MustCompile(`^https?://isni-url\.oclc\.nl/isni/(\d{15}[\dX])$`), "$1", "P213"},
	{regexp.MustCompile(`^https?://d-nb\.info/gnd/(1[012]?\d{7}[0-9X]|[47]\d{6}-\d|[1-9]\d{0,7}-[0-9X]|3\d{7}[0-9X])$`), "$1", "P227"},
	{regexp.MustCompile(`^https?://id\.loc\.gov/authorities/names/(gf|n|nb|nr|no|ns|sh|sj)([4-9][0-9]|00|20[0-2][0-9])([0-9]{6})$`), "$1$2$3", "P244"},
	{regexp.MustCompile(`^https?://id\.loc\.gov/rwo/agents/(gf|n|nb|nr|no|ns|sh|sj)([4-9][0-9]|00|20[0-2][0-9])([0-9]{6})(?:\.html)?$`), "$1$2$3", "P244"},
	{regexp.MustCompile(`^https?://data\.bnf\.fr/ark:/12148/cb(\d{8,9}[0-9bcdfghjkmnpqrstvwxz]).*$`), "$1", "P268"},
	{regexp.MustCompile(`^https?://data\.bnf\.fr/(\d{8,9}).*$`), "$1", "P268"},
	{regexp.MustCompile(`^https?://www\.idref\.fr/(\d{8}[\dX]).*$`), "$1", "P269"},
	{regexp.MustCompile(`^https?://libris\.kb\.se/resource/auth/([1-9]\d{4,5})$`), "$1", "P906"},
	{regexp.MustCompile(`^https?://data\.bibsys\.no/data/notrbib/authorityentry/x([1-9]\d*)$`), "$1", "P1015"},
	{regexp.MustCompile(`^https?://authority\.bibsys\.no/authority/rest/authorities/html/([1-9]\d*)$`), "$1", "P1015"},
	{regexp.MustCompile(`^https?://sws\.geonames\.org/([1-9][0-9]{0,8}).*$`), "$1", "P1566"},
}

// skipPatterns lists URL shapes that must never be proposed as external
// references, starting with the knowledge base itself.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://www\.wikidata\.org/.*$`),
}

// FromIRI matches a URL against the known authority patterns and returns
// the identifier property and cleaned-up value.
func FromIRI(iri string) (property, id string, ok bool) {
	for _, p := range idPatterns {
		m := p.re.FindStringSubmatchIndex(iri)
		if m == nil {
			continue
		}
		id := string(p.re.ExpandString(nil, p.template, iri, m))
		return p.property, fixIDValue(p.property, id), true
	}
	return "", "", false
}

// SkipIRI reports whether a URL must not be emitted at all.
func SkipIRI(iri string) bool {
	for _, re := range skipPatterns {
		if re.MatchString(iri) {
			return true
		}
	}
	return false
}

// fixIDValue applies per-property identifier quirks: some authorities
// decorate their own identifiers in ways the canonical property rejects.
func fixIDValue(property, id string) string {
	switch property {
	case "P213": // ISNI is stored without separators
		return strings.ReplaceAll(id, " ", "")
	case "P244", "P1207": // stray '+' in LOC and NUKAT exports
		return strings.ReplaceAll(id, "+", "")
	default:
		return id
	}
}
