package model

import "fmt"

// ValueType tags the variant held by a CanonicalValue.
type ValueType string

const (
	ValueText       ValueType = "text"        // Text with a language tag
	ValueDate       ValueType = "date"        // Date with explicit precision
	ValueExternalID ValueType = "external_id" // Identifier in an external system
)

// LangUndetermined marks text whose language was not declared by the source.
// Untagged literals always get this marker; a language is never guessed.
const LangUndetermined = "und"

// DatePrecision is the finest unit for which a date value is known.
// The numeric values follow the Wikibase time precision scale.
type DatePrecision int

const (
	PrecisionYear  DatePrecision = 9
	PrecisionMonth DatePrecision = 10
	PrecisionDay   DatePrecision = 11
)

func (p DatePrecision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	default:
		return "unknown"
	}
}

// CanonicalValue is a normalized scalar: text, a partial date, or an
// external identifier. The Type tag selects which fields are meaningful.
type CanonicalValue struct {
	Type ValueType `json:"type"`

	// Text fields
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`

	// Date fields. Month and Day are zero below the recorded precision.
	Year      int           `json:"year,omitempty"`
	Month     int           `json:"month,omitempty"`
	Day       int           `json:"day,omitempty"`
	Precision DatePrecision `json:"precision,omitempty"`

	// External identifier
	ID string `json:"id,omitempty"`
}

// NewText builds a text value. An empty language becomes "und".
func NewText(text, language string) CanonicalValue {
	if language == "" {
		language = LangUndetermined
	}
	return CanonicalValue{Type: ValueText, Text: text, Language: language}
}

// NewDate builds a date value, deriving precision from which parts are set.
// A zero month yields year precision, a zero day month precision.
func NewDate(year, month, day int) CanonicalValue {
	precision := PrecisionDay
	if month == 0 {
		precision = PrecisionYear
		day = 0
	} else if day == 0 {
		precision = PrecisionMonth
	}
	return CanonicalValue{Type: ValueDate, Year: year, Month: month, Day: day, Precision: precision}
}

// NewExternalID builds an external-identifier value.
func NewExternalID(id string) CanonicalValue {
	return CanonicalValue{Type: ValueExternalID, ID: id}
}

// Equal reports whether two values are the same under the reconciliation
// rules: same variant and same payload, including language and precision.
func (v CanonicalValue) Equal(o CanonicalValue) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueText:
		return v.Text == o.Text && v.Language == o.Language
	case ValueDate:
		return v.Year == o.Year && v.Month == o.Month && v.Day == o.Day && v.Precision == o.Precision
	case ValueExternalID:
		return v.ID == o.ID
	default:
		return false
	}
}

func (v CanonicalValue) String() string {
	switch v.Type {
	case ValueText:
		return fmt.Sprintf("%q@%s", v.Text, v.Language)
	case ValueDate:
		switch v.Precision {
		case PrecisionDay:
			return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
		case PrecisionMonth:
			return fmt.Sprintf("%04d-%02d", v.Year, v.Month)
		default:
			return fmt.Sprintf("%04d", v.Year)
		}
	case ValueExternalID:
		return v.ID
	default:
		return ""
	}
}
