package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/surface"
)

// radarFill is the translucent polygon fill used without gradients.
const radarFill = "rgba(75, 192, 192, 0.3)"

// radarScene spreads one axis per point evenly around the center and draws
// a single polygon whose vertices sit at value/max along each axis.
type radarScene struct {
	cfg    Config
	set    Settings
	cx, cy float64
	maxR   float64
	points []Point
	values []float64
	max    float64
}

func newRadarScene(cfg Config, set Settings, w, h float64, pts []Point) *radarScene {
	s := &radarScene{cfg: cfg, set: set, cx: w / 2, cy: h / 2, maxR: ringRadius(w, h), points: pts, max: math.Inf(-1)}
	for _, p := range pts {
		v := cfg.value(p.Value)
		s.values = append(s.values, v)
		s.max = math.Max(s.max, v)
	}
	return s
}

func (s *radarScene) angle(i int) float64 {
	return 2 * math.Pi / float64(len(s.points)) * float64(i)
}

func (s *radarScene) radius(i int) float64 {
	if s.max == 0 {
		return 0
	}
	return s.values[i] / s.max * s.maxR
}

func (s *radarScene) draw(sf surface.Surface, p float64) Frame {
	sf.Clear()
	grid := surface.Solid("#ccc")
	for i := range s.points {
		a := s.angle(i)
		strokeLine(sf, s.cx, s.cy, s.cx+s.maxR*math.Cos(a), s.cy+s.maxR*math.Sin(a), grid, 1)
	}

	hits := Points{Tolerance: s.set.RadarTolerance}
	sf.BeginPath()
	for i, pt := range s.points {
		a := s.angle(i)
		r := s.radius(i) * p
		x, y := s.cx+r*math.Cos(a), s.cy+r*math.Sin(a)
		if i == 0 {
			sf.MoveTo(x, y)
		} else {
			sf.LineTo(x, y)
		}
		hits.Records = append(hits.Records, PointRecord{X: x, Y: y, Text: pt.Label + ": " + s.cfg.text(s.values[i])})
	}
	sf.ClosePath()

	base := s.set.color(s.cfg, 0)
	fill := surface.Solid(radarFill)
	if s.cfg.Gradient {
		fill = palette.Linear(true, base, s.cx, s.cy-s.maxR, s.cx, s.cy+s.maxR)
	}
	sf.Fill(fill)
	sf.Stroke(surface.Solid(base), 1)

	var ov Overlay
	if p == 1 {
		for i := range s.points {
			a := s.angle(i)
			r := s.radius(i)
			marker(sf, s.cx+r*math.Cos(a), s.cy+r*math.Sin(a))
			ov.Values = append(ov.Values, pointLabel(s.cfg.text(s.values[i]),
				s.cx+(r+10)*math.Cos(a), s.cy+(r+10)*math.Sin(a)))
		}
	}
	for i, pt := range s.points {
		ov.Legend = append(ov.Legend, LegendItem{Label: pt.Label, Value: s.cfg.text(s.values[i]), Color: base})
	}
	return Frame{Progress: p, Hits: hits, Overlay: ov}
}
