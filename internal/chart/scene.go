package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/surface"
)

// Frame is what one paint produced: the geometry to hit-test against and the
// overlay text. Markup carries the SVG document when the chart paints into
// an SVG surface.
type Frame struct {
	Progress float64
	Hits     HitTester
	Overlay  Overlay
	Markup   string
}

// scene is the static layout of one chart kind, computed once per render
// pass from the container size and the payload. draw paints the frame for
// one progress value.
type scene interface {
	draw(sf surface.Surface, p float64) Frame
}

// newScene lays out a chart of the configured kind.
func newScene(cfg Config, set Settings, raw []byte) (scene, error) {
	w, h := cfg.size()
	switch cfg.Kind {
	case Bar:
		pts, err := DecodePoints(Bar, raw)
		if err != nil {
			return nil, err
		}
		return newBarScene(cfg, set, w, h, pts), nil
	case Pie, Donut:
		pts, err := DecodePoints(cfg.Kind, raw)
		if err != nil {
			return nil, err
		}
		return newRingScene(cfg, set, w, h, pts), nil
	case Line:
		series, err := DecodeSeries(raw)
		if err != nil {
			return nil, err
		}
		return newLineScene(cfg, set, w, h, series), nil
	case Radar:
		pts, err := DecodePoints(Radar, raw)
		if err != nil {
			return nil, err
		}
		return newRadarScene(cfg, set, w, h, pts), nil
	case Gauge:
		in, err := DecodeGauge(raw)
		if err != nil {
			return nil, err
		}
		return newGaugeScene(cfg, set, w, h, in), nil
	case Number:
		return newNumberScene(cfg), nil
	}
	return nil, &DataError{Kind: cfg.Kind, Err: errUnknownKind}
}

// ring geometry shared by pie, donut and radar.
func ringRadius(w, h float64) float64 {
	return math.Min(w, h) / 2 * 0.8
}

// marker paints the black dot placed on settled line points and radar
// vertices.
func marker(sf surface.Surface, x, y float64) {
	sf.BeginPath()
	sf.Arc(x, y, 3, 0, 2*math.Pi, false)
	sf.Fill(surface.Solid("#000"))
}

func strokeLine(sf surface.Surface, x0, y0, x1, y1 float64, p surface.Paint, width float64) {
	sf.BeginPath()
	sf.MoveTo(x0, y0)
	sf.LineTo(x1, y1)
	sf.Stroke(p, width)
}
