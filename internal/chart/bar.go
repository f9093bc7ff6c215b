package chart

import (
	"fmt"
	"math"

	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/surface"
)

// barScene lays out equal-width bars separated by a fixed margin, scaled so
// the largest value reaches 20px below the top edge.
type barScene struct {
	cfg    Config
	set    Settings
	w, h   float64
	points []Point
	values []float64
	max    float64
	barW   float64
}

func newBarScene(cfg Config, set Settings, w, h float64, pts []Point) *barScene {
	s := &barScene{cfg: cfg, set: set, w: w, h: h, points: pts, max: math.Inf(-1)}
	for _, p := range pts {
		v := cfg.value(p.Value)
		s.values = append(s.values, v)
		s.max = math.Max(s.max, v)
	}
	n := float64(len(pts))
	s.barW = (w - (n+1)*set.BarMargin) / n
	return s
}

// BarHeight is the settled height of a bar of value v when the largest
// value is max and the surface is h pixels tall. A zero max draws nothing.
func BarHeight(v, max, h float64) float64 {
	if max == 0 {
		return 0
	}
	return v / max * (h - 20)
}

func (s *barScene) x(i int) float64 {
	return s.set.BarMargin + float64(i)*(s.barW+s.set.BarMargin)
}

func (s *barScene) draw(sf surface.Surface, p float64) Frame {
	sf.Clear()
	hits := make(Bars, 0, len(s.points))
	ov := Overlay{Axis: &AxisLegend{Class: "chart-bar-legend"}}

	for i, pt := range s.points {
		v := s.values[i]
		height := BarHeight(v, s.max, s.h) * p
		x := s.x(i)
		y := s.h - height
		box := surface.Rect{X: x, Y: y, W: s.barW, H: height}

		base := s.set.color(s.cfg, i)
		sf.FillRect(x, y, s.barW, height, palette.Fill(s.cfg.Gradient, base, box))
		hits = append(hits, BarRecord{Box: box, Text: pt.Label + ": " + s.cfg.text(v)})

		center := x + s.barW/2
		if p == 1 {
			ov.Values = append(ov.Values, Label{
				Text:  s.cfg.text(v),
				X:     center,
				Y:     y - 8,
				Style: fmt.Sprintf("left: %.2fpx", center),
			})
		}
		ov.Axis.Items = append(ov.Axis.Items, AxisItem{X: center, Text: pt.Label})
	}
	return Frame{Progress: p, Hits: hits, Overlay: ov}
}
