package surface

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

const (
	defaultFontSize = 12.0
	defaultFont     = "Arial, sans-serif"
)

// SVG records a frame as SVG markup. Clear starts a new frame; Markup
// returns the document for the current one.
type SVG struct {
	w, h  float64
	body  bytes.Buffer
	defs  bytes.Buffer
	nGrad int
	p     path
}

// NewSVG returns an empty SVG surface of the given size.
func NewSVG(w, h float64) *SVG {
	return &SVG{w: w, h: h}
}

func (s *SVG) Size() (float64, float64) { return s.w, s.h }

// Resize sets the pixel size and, like a canvas, wipes the content.
func (s *SVG) Resize(w, h float64) {
	s.w, s.h = w, h
	s.Clear()
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.defs.Reset()
	s.nGrad = 0
	s.p.reset()
}

func (s *SVG) FillRect(x, y, w, h float64, p Paint) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	fmt.Fprintf(&s.body, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" />`+"\n",
		x, y, w, h, s.paint(p))
}

func (s *SVG) BeginPath() { s.p.reset() }
func (s *SVG) MoveTo(x, y float64) { s.p.moveTo(x, y) }
func (s *SVG) LineTo(x, y float64) { s.p.lineTo(x, y) }
func (s *SVG) Arc(cx, cy, r, a0, a1 float64, ccw bool) { s.p.arc(cx, cy, r, a0, a1, ccw) }
func (s *SVG) ClosePath() { s.p.closePath() }

func (s *SVG) Fill(p Paint) {
	d := s.pathData()
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s" />`+"\n", d, s.paint(p))
}

func (s *SVG) Stroke(p Paint, width float64) {
	d := s.pathData()
	if d == "" {
		return
	}
	if width <= 0 {
		width = 1
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" />`+"\n", d, s.paint(p), width)
}

// Label draws text with its baseline centered vertically on y.
func (s *SVG) Label(x, y float64, text string, anchor Anchor) {
	if text == "" {
		return
	}
	if anchor == "" {
		anchor = AnchorMiddle
	}
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="#333" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
		x, y, defaultFont, defaultFontSize, anchor, escapeXML(text))
}

// Markup returns the SVG document of the current frame.
func (s *SVG) Markup() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`,
		s.w, s.h, s.w, s.h)
	out.WriteString("\n")
	if s.defs.Len() > 0 {
		out.WriteString("  <defs>\n")
		out.Write(s.defs.Bytes())
		out.WriteString("  </defs>\n")
	}
	out.Write(s.body.Bytes())
	out.WriteString("</svg>")
	return out.String()
}

// paint returns the fill/stroke attribute value, defining a gradient when
// needed.
func (s *SVG) paint(p Paint) string {
	g := p.Gradient
	if g == nil || len(g.Stops) == 0 {
		if p.Color == "" {
			return "none"
		}
		return escapeXML(p.Color)
	}
	s.nGrad++
	id := fmt.Sprintf("grad%d", s.nGrad)
	if g.Radial {
		// canvas stops run from the inner circle to the outer one; SVG
		// stops run from the center, so offsets are remapped onto r1.
		fmt.Fprintf(&s.defs, `    <radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`+"\n",
			id, g.X1, g.Y1, g.R1)
		for _, st := range g.Stops {
			off := st.Offset
			if g.R1 > 0 {
				off = (g.R0 + st.Offset*(g.R1-g.R0)) / g.R1
			}
			writeStop(&s.defs, off, st.Color)
		}
		s.defs.WriteString("    </radialGradient>\n")
	} else {
		fmt.Fprintf(&s.defs, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`+"\n",
			id, g.X0, g.Y0, g.X1, g.Y1)
		for _, st := range g.Stops {
			writeStop(&s.defs, st.Offset, st.Color)
		}
		s.defs.WriteString("    </linearGradient>\n")
	}
	return "url(#" + id + ")"
}

func writeStop(buf *bytes.Buffer, offset float64, color string) {
	fmt.Fprintf(buf, `      <stop offset="%.4f" stop-color="%s" />`+"\n", math.Max(0, math.Min(1, offset)), escapeXML(color))
}

func (s *SVG) pathData() string {
	if s.p.empty() {
		return ""
	}
	var d strings.Builder
	drawn := false
	for _, seg := range s.p.segs {
		switch seg.kind {
		case segMove:
			fmt.Fprintf(&d, "M%.2f %.2f ", seg.x, seg.y)
		case segLine:
			fmt.Fprintf(&d, "L%.2f %.2f ", seg.x, seg.y)
			drawn = true
		case segArc:
			writeArc(&d, seg)
			drawn = true
		case segClose:
			d.WriteString("Z ")
		}
	}
	if !drawn {
		return ""
	}
	return strings.TrimSpace(d.String())
}

// writeArc emits an elliptical-arc command. SVG cannot express a full turn
// in one command, so sweeps of a full circle are split in two halves.
func writeArc(d *strings.Builder, seg segment) {
	parts := 1
	if math.Abs(seg.delta) >= fullTurn-1e-9 {
		parts = 2
	}
	step := seg.delta / float64(parts)
	for i := 1; i <= parts; i++ {
		a := seg.start + step*float64(i)
		x, y := seg.cx+seg.r*math.Cos(a), seg.cy+seg.r*math.Sin(a)
		large := 0
		if math.Abs(step) > math.Pi {
			large = 1
		}
		sweep := 0
		if step > 0 {
			sweep = 1
		}
		fmt.Fprintf(d, "A%.2f %.2f 0 %d %d %.2f %.2f ", seg.r, seg.r, large, sweep, x, y)
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
