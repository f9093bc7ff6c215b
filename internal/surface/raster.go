package surface

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Raster paints into a PNG image through the go-chart renderer. Gradients
// are approximated by the even blend of their stops, since the renderer only
// knows flat colors.
type Raster struct {
	w, h float64
	r    chart.Renderer
	font *truetype.Font
	p    path
	err  error
}

// NewRaster returns a transparent raster surface of the given size.
func NewRaster(w, h float64) (*Raster, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("loading default font: %w", err)
	}
	s := &Raster{font: font}
	s.Resize(w, h)
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

func (s *Raster) Size() (float64, float64) { return s.w, s.h }

func (s *Raster) Resize(w, h float64) {
	s.w, s.h = w, h
	s.Clear()
}

// Clear swaps in a fresh image; the renderer has no erase operation.
func (s *Raster) Clear() {
	r, err := chart.PNG(pixels(s.w), pixels(s.h))
	if err != nil {
		s.err = fmt.Errorf("creating %dx%d raster: %w", pixels(s.w), pixels(s.h), err)
		return
	}
	r.SetFont(s.font)
	s.r = r
	s.err = nil
	s.p.reset()
}

func (s *Raster) FillRect(x, y, w, h float64, p Paint) {
	if s.r == nil || w == 0 || h == 0 {
		return
	}
	var rect path
	rect.moveTo(x, y)
	rect.lineTo(x+w, y)
	rect.lineTo(x+w, y+h)
	rect.lineTo(x, y+h)
	rect.closePath()
	s.r.SetFillColor(s.color(p))
	s.replay(&rect)
	s.r.Fill()
}

func (s *Raster) BeginPath() { s.p.reset() }
func (s *Raster) MoveTo(x, y float64) { s.p.moveTo(x, y) }
func (s *Raster) LineTo(x, y float64) { s.p.lineTo(x, y) }
func (s *Raster) Arc(cx, cy, r, a0, a1 float64, ccw bool) { s.p.arc(cx, cy, r, a0, a1, ccw) }
func (s *Raster) ClosePath() { s.p.closePath() }

func (s *Raster) Fill(p Paint) {
	if s.r == nil || s.p.empty() {
		return
	}
	s.r.SetFillColor(s.color(p))
	s.replay(&s.p)
	s.r.Fill()
}

func (s *Raster) Stroke(p Paint, width float64) {
	if s.r == nil || s.p.empty() {
		return
	}
	if width <= 0 {
		width = 1
	}
	s.r.SetStrokeColor(s.color(p))
	s.r.SetStrokeWidth(width)
	s.replay(&s.p)
	s.r.Stroke()
}

// Label draws text vertically centered on y.
func (s *Raster) Label(x, y float64, text string, anchor Anchor) {
	if s.r == nil || text == "" {
		return
	}
	s.r.SetFontSize(defaultFontSize)
	s.r.SetFontColor(drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	box := s.r.MeasureText(text)
	left := x
	switch anchor {
	case AnchorEnd:
		left -= float64(box.Width())
	case AnchorStart:
	default:
		left -= float64(box.Width()) / 2
	}
	s.r.Text(text, pixels(left), pixels(y+float64(box.Height())/2))
}

// Encode writes the current frame as PNG.
func (s *Raster) Encode(w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	if s.r == nil {
		return fmt.Errorf("raster surface has no image")
	}
	return s.r.Save(w)
}

func (s *Raster) replay(p *path) {
	for _, seg := range p.segs {
		switch seg.kind {
		case segMove:
			s.r.MoveTo(pixels(seg.x), pixels(seg.y))
		case segLine:
			s.r.LineTo(pixels(seg.x), pixels(seg.y))
		case segArc:
			s.r.ArcTo(pixels(seg.cx), pixels(seg.cy), seg.r, seg.r, seg.start, seg.delta)
		case segClose:
			s.r.Close()
		}
	}
}

func (s *Raster) color(p Paint) drawing.Color {
	if p.Gradient != nil && len(p.Gradient.Stops) > 0 {
		return blend(p.Gradient.Stops)
	}
	return toDrawing(p.Color)
}

func blend(stops []Stop) drawing.Color {
	var r, g, b, a float64
	for _, st := range stops {
		c := toDrawing(st.Color)
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
		a += float64(c.A)
	}
	n := float64(len(stops))
	return drawing.Color{
		R: uint8(math.Round(r / n)),
		G: uint8(math.Round(g / n)),
		B: uint8(math.Round(b / n)),
		A: uint8(math.Round(a / n)),
	}
}

// toDrawing converts a CSS color with go-chart's parser, which also knows
// the basic color names. Malformed hex and unknown names paint black.
func toDrawing(color string) drawing.Color {
	color = strings.TrimSpace(color)
	if strings.HasPrefix(color, "#") {
		if _, ok := ParseColor(color); !ok {
			return drawing.ColorBlack
		}
	}
	c := drawing.ParseColor(color)
	if c.IsZero() && !strings.EqualFold(color, "transparent") && !strings.HasPrefix(color, "rgba") {
		return drawing.ColorBlack
	}
	return c
}

func pixels(v float64) int {
	return int(math.Round(v))
}
