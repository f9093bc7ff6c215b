package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/palette"
	"github.com/buffos/go-datadash/internal/surface"
)

const (
	gaugeStart = math.Pi
	gaugeTrack = 20.0
)

// gaugeScene draws a half circle opening downwards, min at the left end and
// max at the right, with a needle along the end of the filled sweep.
type gaugeScene struct {
	cfg    Config
	set    Settings
	w, h   float64
	cx, cy float64
	r      float64
	value  float64
	sweep  float64
}

func newGaugeScene(cfg Config, set Settings, w, h float64, in GaugeInput) *gaugeScene {
	s := &gaugeScene{
		cfg: cfg, set: set, w: w, h: h,
		cx: w / 2, cy: h * 0.8, r: math.Min(w, h) * 0.5,
		value: cfg.value(in.Value),
	}
	s.sweep = GaugeSweep(s.value, cfg.value(in.Min), cfg.value(in.Max))
	return s
}

// GaugeSweep is the settled filled sweep, 0 at min and π at max. The
// fraction is clamped to the dial; an empty range sweeps nothing.
func GaugeSweep(value, min, max float64) float64 {
	span := max - min
	if span == 0 {
		return 0
	}
	f := (value - min) / span
	return math.Max(0, math.Min(1, f)) * math.Pi
}

func (s *gaugeScene) draw(sf surface.Surface, p float64) Frame {
	sf.Clear()
	sf.BeginPath()
	sf.Arc(s.cx, s.cy, s.r, gaugeStart, 0, false)
	sf.Stroke(surface.Solid("#eee"), gaugeTrack)

	end := gaugeStart + s.sweep*p
	base := s.set.color(s.cfg, 0)
	sf.BeginPath()
	sf.Arc(s.cx, s.cy, s.r, gaugeStart, end, false)
	sf.Stroke(palette.Linear(s.cfg.Gradient, base, s.cx, s.cy-s.r, s.cx, s.cy+s.r), gaugeTrack)

	needle := s.r - 10
	strokeLine(sf, s.cx, s.cy, s.cx+needle*math.Cos(end), s.cy+needle*math.Sin(end), surface.Solid("#333"), 2)

	var ov Overlay
	if p == 1 {
		ov.Values = append(ov.Values, Label{
			Text:  s.cfg.text(s.value),
			X:     s.w / 2,
			Y:     s.h * 0.85,
			Style: "left: 50%; bottom: 15%",
		})
		tick := surface.Solid("#999")
		for i := 0; i <= 10; i++ {
			a := gaugeStart + float64(i)/10*math.Pi
			length := 5.0
			if i%5 == 0 {
				length = 10
			}
			strokeLine(sf,
				s.cx+(s.r-length)*math.Cos(a), s.cy+(s.r-length)*math.Sin(a),
				s.cx+s.r*math.Cos(a), s.cy+s.r*math.Sin(a),
				tick, 1)
		}
	}
	return Frame{Progress: p, Hits: Constant(s.cfg.text(s.value)), Overlay: ov}
}
