package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code selects how a value is parsed and displayed.
type Code string

const (
	Int     Code = "int"
	Float   Code = "float"
	Dec     Code = "dec"
	BRL     Code = "brl"
	USD     Code = "usd"
	EUR     Code = "eur"
	BTC     Code = "btc"
	Percent Code = "percent"
	Compact Code = "compact"
	Sci     Code = "sci"
	Bytes   Code = "bytes"
)

// Codes lists every recognised format code.
var Codes = []Code{Int, Float, Dec, BRL, USD, EUR, BTC, Percent, Compact, Sci, Bytes}

// ParseCode normalizes a datadash-format attribute. An empty attribute means
// Int; unknown codes are kept and format with the two-decimal fallback.
func ParseCode(s string) Code {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Int
	}
	return Code(s)
}

// Known reports whether c is one of Codes.
func (c Code) Known() bool {
	for _, k := range Codes {
		if c == k {
			return true
		}
	}
	return false
}

func (c Code) isCurrency() bool {
	switch Code(strings.ToLower(string(c))) {
	case BRL, USD, EUR:
		return true
	}
	return false
}

// nbsp separates currency symbols from amounts the way browsers do.
const nbsp = "\u00a0"

var (
	ptBR = message.NewPrinter(language.BrazilianPortuguese)
	enUS = message.NewPrinter(language.AmericanEnglish)
	deDE = message.NewPrinter(language.German)
)

// FormatValue renders v for display and wraps it in prefix and suffix.
func FormatValue(v float64, code Code, prefix, suffix string) string {
	return prefix + formatNumber(finite(v), ParseCode(string(code))) + suffix
}

func formatNumber(v float64, code Code) string {
	switch code {
	case Int:
		// halves round up, -2.5 gives -2
		return ptBR.Sprintf("%d", int64(math.Floor(v+0.5)))
	case Float:
		return decimals(ptBR, v, 4)
	case Dec:
		return decimals(ptBR, v, 2)
	case BRL:
		return signed(v, func(a float64) string { return "R$" + nbsp + decimals(ptBR, a, 2) })
	case USD:
		return signed(v, func(a float64) string { return "$" + decimals(enUS, a, 2) })
	case EUR:
		return signed(v, func(a float64) string { return decimals(deDE, a, 2) + nbsp + "€" })
	case BTC:
		return strconv.FormatFloat(v, 'f', 8, 64) + " BTC"
	case Percent:
		return strconv.FormatFloat(v, 'f', 2, 64) + "%"
	case Compact:
		return compactShort(v)
	case Sci:
		return scientific(v)
	case Bytes:
		return formatBytes(v)
	default:
		return decimals(ptBR, v, 2)
	}
}

func decimals(p *message.Printer, v float64, places int) string {
	return p.Sprintf(fmt.Sprintf("%%.%df", places), v)
}

// signed puts the minus sign in front of the currency symbol.
func signed(v float64, render func(float64) string) string {
	if v < 0 && math.Round(v*100) != 0 {
		return "-" + render(-v)
	}
	return render(math.Abs(v))
}

var compactUnits = []string{"", "K", "M", "B", "T"}

// compactShort follows the English short compact notation: two significant
// digits below 100 of a unit, whole units above.
func compactShort(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	unit := 0
	for unit < len(compactUnits)-1 && v >= 1000 {
		v /= 1000
		unit++
	}
	r := roundCompact(v)
	if r >= 1000 && unit < len(compactUnits)-1 {
		r = roundCompact(r / 1000)
		unit++
	}
	if r == 0 {
		sign = ""
	}
	return sign + strconv.FormatFloat(r, 'f', -1, 64) + compactUnits[unit]
}

func roundCompact(x float64) float64 {
	if x == 0 {
		return 0
	}
	if x >= 100 {
		return math.Round(x)
	}
	factor := math.Pow(10, 1-math.Floor(math.Log10(x)))
	return math.Round(x*factor) / factor
}

// scientific renders two decimals of mantissa and an unpadded exponent
// ("1.23e+4").
func scientific(v float64) string {
	s := strconv.FormatFloat(v, 'e', 2, 64)
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 > len(s) {
		return s
	}
	exp := strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+2] + exp
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

func formatBytes(b float64) string {
	if b == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(math.Abs(b)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i > len(byteUnits)-1 {
		i = len(byteUnits) - 1
	}
	scaled := math.Round(b/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(scaled, 'f', -1, 64) + " " + byteUnits[i]
}
