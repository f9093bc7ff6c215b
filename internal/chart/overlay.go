package chart

import (
	"fmt"

	"github.com/buffos/go-datadash/internal/surface"
)

// Overlay is the text a chart places around its surface: value labels,
// axis captions, a color legend, or the counter text of a number box. It is
// rebuilt on every frame, so nothing from an earlier frame survives.
type Overlay struct {
	Values []Label      `json:"values,omitempty"`
	Axis   *AxisLegend  `json:"axis,omitempty"`
	Legend []LegendItem `json:"legend,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// Label is one positioned value label. X and Y are surface coordinates;
// Style is the inline CSS placing it inside the chart container.
type Label struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Style string  `json:"style"`
}

// AxisLegend holds the captions centered under bars or line points.
type AxisLegend struct {
	Class string     `json:"class"`
	Items []AxisItem `json:"items"`
}

type AxisItem struct {
	X    float64 `json:"x"`
	Text string  `json:"text"`
}

// LegendItem is one swatch of a pie, donut or radar legend.
type LegendItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

func pointLabel(text string, x, y float64) Label {
	return Label{Text: text, X: x, Y: y, Style: fmt.Sprintf("left: %.2fpx; top: %.2fpx", x, y)}
}

// Bake draws the overlay text onto a surface that supports labels, for
// frames exported outside a page.
func (o Overlay) Bake(l surface.Labeler, height float64) {
	for _, v := range o.Values {
		l.Label(v.X, v.Y, v.Text, surface.AnchorMiddle)
	}
	if o.Axis != nil {
		for _, it := range o.Axis.Items {
			l.Label(it.X, height-8, it.Text, surface.AnchorMiddle)
		}
	}
	for i, it := range o.Legend {
		l.Label(8, 14+float64(i)*16, it.Label+": "+it.Value, surface.AnchorStart)
	}
}
