package chart

import "strings"

// Kind is one of the widget kinds the engine can draw.
type Kind string

const (
	Bar    Kind = "bar"
	Pie    Kind = "pie"
	Line   Kind = "line"
	Donut  Kind = "donut"
	Radar  Kind = "radar"
	Gauge  Kind = "gauge"
	Number Kind = "number"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{Bar, Pie, Line, Donut, Radar, Gauge, Number}

// ParseKind maps a type attribute onto a Kind, ignoring case and spaces.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// Canvas reports whether the kind paints onto a surface. Number boxes only
// animate their text.
func (k Kind) Canvas() bool {
	return k != Number
}

func (k Kind) String() string { return string(k) }
