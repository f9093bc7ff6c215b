package format

import (
	"strings"
	"time"
)

// FormatDate renders t with one of the dashboard date patterns
// (dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, case-insensitive). Any other pattern
// falls back to the Brazilian default, which is also dd/mm/yyyy. Day and
// month are always zero-padded.
func FormatDate(t time.Time, pattern string) string {
	switch strings.ToLower(strings.TrimSpace(pattern)) {
	case "mm/dd/yyyy":
		return t.Format("01/02/2006")
	case "yyyy-mm-dd":
		return t.Format("2006-01-02")
	default:
		return t.Format("02/01/2006")
	}
}

// dateLayouts accepted by ParseDate, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate reads the date forms a dashboard payload is likely to carry.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
