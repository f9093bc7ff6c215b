package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/surface"
)

// ringScene draws pie and donut charts. Slices start at angle 0 and follow
// each other clockwise; the whole circle sweeps in with progress. Donut
// slices leave out an inner disc of 60% of the outer radius.
type ringScene struct {
	cfg    Config
	set    Settings
	cx, cy float64
	outer  float64
	inner  float64
	points []Point
	values []float64
	total  float64
}

// donutHole is the inner radius of a donut as a fraction of the outer one.
const donutHole = 0.6

func newRingScene(cfg Config, set Settings, w, h float64, pts []Point) *ringScene {
	s := &ringScene{cfg: cfg, set: set, cx: w / 2, cy: h / 2, outer: ringRadius(w, h), points: pts}
	if cfg.Kind == Donut {
		s.inner = s.outer * donutHole
	}
	for _, p := range pts {
		v := cfg.value(p.Value)
		s.values = append(s.values, v)
		s.total += v
	}
	return s
}

// SliceAngle is the settled sweep of a slice of value v. A zero total
// sweeps nothing.
func SliceAngle(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v / total * 2 * math.Pi
}

func (s *ringScene) paint(base string) surface.Paint {
	return palette.Radial(s.cfg.Gradient, base, s.cx, s.cy, s.inner, s.outer)
}

func (s *ringScene) draw(sf surface.Surface, p float64) Frame {
	sf.Clear()
	hits := make(Slices, 0, len(s.points))
	var ov Overlay

	start := 0.0
	for i, pt := range s.points {
		v := s.values[i]
		sweep := SliceAngle(v, s.total) * p
		end := start + sweep
		base := s.set.color(s.cfg, i)

		if sweep != 0 {
			sf.BeginPath()
			if s.inner > 0 {
				sf.Arc(s.cx, s.cy, s.outer, start, end, false)
				sf.Arc(s.cx, s.cy, s.inner, end, start, true)
			} else {
				sf.MoveTo(s.cx, s.cy)
				sf.Arc(s.cx, s.cy, s.outer, start, end, false)
			}
			sf.ClosePath()
			sf.Fill(s.paint(base))

			hits = append(hits, SliceRecord{
				CX: s.cx, CY: s.cy, Inner: s.inner, Outer: s.outer,
				Start: start, End: end, Text: s.cfg.text(v),
			})
		}

		if p == 1 && s.total != 0 {
			mid := start + sweep/2
			ov.Values = append(ov.Values, pointLabel(s.cfg.text(v),
				s.cx+(s.outer+15)*math.Cos(mid),
				s.cy+(s.outer+15)*math.Sin(mid)))
		}
		ov.Legend = append(ov.Legend, LegendItem{Label: pt.Label, Value: s.cfg.text(v), Color: base})
		start = end
	}
	return Frame{Progress: p, Hits: hits, Overlay: ov}
}
