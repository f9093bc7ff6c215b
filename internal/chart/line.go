package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/surface"
)

type linePoint struct {
	x, y  float64
	value float64
	label string
}

// lineScene plots one or more series on a shared scale. Points are spaced
// evenly inside the padding; every series grows up from the baseline.
type lineScene struct {
	cfg    Config
	set    Settings
	w, h   float64
	series [][]linePoint
}

func newLineScene(cfg Config, set Settings, w, h float64, series [][]Point) *lineScene {
	s := &lineScene{cfg: cfg, set: set, w: w, h: h}
	pad := set.Padding

	lo, hi := math.Inf(1), math.Inf(-1)
	values := make([][]float64, len(series))
	for i, pts := range series {
		for _, p := range pts {
			v := cfg.value(p.Value)
			values[i] = append(values[i], v)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	// one point sits on the left padding
	step := 0.0
	if n := len(series[0]); n > 1 {
		step = (w - 2*pad) / float64(n-1)
	}

	for i, pts := range series {
		row := make([]linePoint, len(pts))
		for j, p := range pts {
			v := values[i][j]
			row[j] = linePoint{
				x:     pad + float64(j)*step,
				y:     h - pad - (v-lo)/span*(h-2*pad),
				value: v,
				label: p.Label,
			}
		}
		s.series = append(s.series, row)
	}
	return s
}

func (s *lineScene) draw(sf surface.Surface, p float64) Frame {
	sf.Clear()
	pad := s.set.Padding
	base := s.h - pad
	axis := surface.Solid("#ccc")
	strokeLine(sf, pad, base, s.w-pad, base, axis, 1)
	strokeLine(sf, pad, base, pad, pad, axis, 1)

	hits := Points{Tolerance: s.set.LineTolerance}
	for si, row := range s.series {
		sf.BeginPath()
		for i, pt := range row {
			y := base - (base-pt.y)*p
			if i == 0 {
				sf.MoveTo(pt.x, y)
			} else {
				sf.LineTo(pt.x, y)
			}
			hits.Records = append(hits.Records, PointRecord{X: pt.x, Y: y, Text: s.cfg.text(pt.value)})
		}
		color := s.set.color(s.cfg, si)
		sf.Stroke(palette.Linear(s.cfg.Gradient, color, pad, 0, s.w-pad, 0), 2)
	}

	var ov Overlay
	if p == 1 {
		for _, row := range s.series {
			for _, pt := range row {
				marker(sf, pt.x, pt.y)
				ov.Values = append(ov.Values, pointLabel(s.cfg.text(pt.value), pt.x, pt.y-25))
			}
		}
	}
	ov.Axis = &AxisLegend{Class: "chart-line-legend"}
	for _, pt := range s.series[0] {
		ov.Axis.Items = append(ov.Axis.Items, AxisItem{X: pt.x, Text: pt.label})
	}
	return Frame{Progress: p, Hits: hits, Overlay: ov}
}
