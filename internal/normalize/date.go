package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
)

// Date parses a date literal at whatever precision it actually carries:
// "1983" is a valid year-precision date, not an error and not January 1st.
// Accepted forms are YYYY, YYYY-MM and YYYY-MM-DD; a trailing "-00" part
// (which some authority files use for unknown months or days) truncates
// the precision instead of failing.
func Date(raw string) (model.CanonicalValue, error) {
	s := strings.TrimSpace(raw)
	// Timestamps like 1950-05-17T00:00:00Z carry no extra information here.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return model.CanonicalValue{}, fmt.Errorf("empty date")
	}

	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return model.CanonicalValue{}, fmt.Errorf("invalid date %q", raw)
	}

	year, err := datePart(parts[0], 4)
	if err != nil || year == 0 {
		return model.CanonicalValue{}, fmt.Errorf("invalid year in date %q", raw)
	}

	month := 0
	if len(parts) > 1 {
		month, err = datePart(parts[1], 2)
		if err != nil || month > 12 {
			return model.CanonicalValue{}, fmt.Errorf("invalid month in date %q", raw)
		}
	}

	day := 0
	if len(parts) > 2 && month != 0 {
		day, err = datePart(parts[2], 2)
		if err != nil || day > daysIn(year, month) {
			return model.CanonicalValue{}, fmt.Errorf("invalid day in date %q", raw)
		}
	}

	return model.NewDate(year, month, day), nil
}

// datePart parses one numeric component of up to maxLen digits. A "00"
// component parses to zero, which the caller treats as absent.
func datePart(s string, maxLen int) (int, error) {
	if s == "" || len(s) > maxLen {
		return 0, fmt.Errorf("bad component %q", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("bad component %q", s)
		}
	}
	return strconv.Atoi(s)
}

func daysIn(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 0
	}
}
