// Package format turns localized number strings into float64 values and
// renders values back into display strings for the dashboard format codes.
package format

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Raw is a number-like value as it appears in a widget payload: either a JSON
// string ("1.234,56", "R$ 12,50") or a JSON number. Strings go through the
// localized parsing rules, numbers are taken as-is.
type Raw struct {
	text     string
	isString bool
}

// String wraps a string payload value.
func String(s string) Raw { return Raw{text: s, isString: true} }

// Number wraps a numeric payload value.
func Number(v float64) Raw {
	return Raw{text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// IsString reports whether the value was given as a string.
func (r Raw) IsString() bool { return r.isString }

// String returns the value as written in the payload.
func (r Raw) String() string { return r.text }

// UnmarshalJSON accepts strings, numbers and null. Anything else (booleans,
// objects, arrays) is kept as an unparseable string so that it coerces to 0
// instead of failing the whole payload.
func (r *Raw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Raw{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = String(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*r = Raw{text: string(data)}
	default:
		*r = String(string(data))
	}
	return nil
}

// MarshalJSON writes the value back in its original JSON kind.
func (r Raw) MarshalJSON() ([]byte, error) {
	if r.isString {
		return json.Marshal(r.text)
	}
	if r.text == "" {
		return []byte("null"), nil
	}
	return []byte(r.text), nil
}

// NormalizeLocalizedNumber rewrites a localized decimal string into the dotted
// form strconv understands. A comma is treated as the decimal separator; when
// dots are also present they are thousands separators and are removed first.
// Strings without a comma are returned trimmed but otherwise unchanged.
func NormalizeLocalizedNumber(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ",") {
		return s
	}
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	return strings.Replace(s, ",", ".", 1)
}

var nonDigits = regexp.MustCompile(`\D`)

// leading numeric prefix, the part a lenient float parser would consume
var floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseValue converts a payload value to a finite float64. Currency codes
// (brl, usd, eur) keep only the digits of a string and read the last two as
// cents, so "R$ 12,50" and "$12.50" both give 12.5. Every other code goes
// through NormalizeLocalizedNumber. Anything unparseable yields 0.
func ParseValue(raw Raw, code Code) float64 {
	if !raw.isString {
		return finite(parseLeadingFloat(raw.text))
	}
	s := strings.TrimSpace(raw.text)
	if code.isCurrency() {
		s = centsString(nonDigits.ReplaceAllString(s, ""))
	} else {
		s = NormalizeLocalizedNumber(s)
	}
	return finite(parseLeadingFloat(s))
}

// ParseString is ParseValue for a plain string.
func ParseString(s string, code Code) float64 {
	return ParseValue(String(s), code)
}

func centsString(digits string) string {
	if len(digits) > 2 {
		return digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	}
	for len(digits) < 2 {
		digits = "0" + digits
	}
	return "0." + digits
}

func parseLeadingFloat(s string) float64 {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
