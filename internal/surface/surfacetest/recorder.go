// Package surfacetest provides a surface that records painting calls
// instead of producing pixels, for testing chart geometry.
package surfacetest

import (
	"math"

	"github.com/buffos/go-datadash/internal/surface"
)

// OpKind names a recorded drawing operation.
type OpKind string

const (
	OpClear    OpKind = "clear"
	OpFillRect OpKind = "fillRect"
	OpFill     OpKind = "fill"
	OpStroke   OpKind = "stroke"
	OpLabel    OpKind = "label"
)

// Op is one painting call as seen by a Recorder. Bounds is the box of the
// painted rectangle or path.
type Op struct {
	Kind   OpKind
	Paint  surface.Paint
	Width  float64
	Bounds surface.Rect
	Text   string
}

// Recorder is a surface.Surface that keeps a log of what was painted since
// the last Clear.
type Recorder struct {
	w, h   float64
	Ops    []Op
	Clears int
	b      box
}

var (
	_ surface.Surface = (*Recorder)(nil)
	_ surface.Labeler = (*Recorder)(nil)
)

// NewRecorder returns a recorder of the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

func (r *Recorder) Resize(w, h float64) {
	r.w, r.h = w, h
	r.Clear()
}

func (r *Recorder) Clear() {
	r.Ops = nil
	r.Clears++
	r.b = box{}
}

func (r *Recorder) FillRect(x, y, w, h float64, p surface.Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Paint: p, Bounds: surface.Rect{X: x, Y: y, W: w, H: h}})
}

func (r *Recorder) BeginPath() { r.b = box{} }
func (r *Recorder) MoveTo(x, y float64) { r.b.add(x, y) }
func (r *Recorder) LineTo(x, y float64) { r.b.add(x, y) }
func (r *Recorder) ClosePath() {}

// Arc samples the swept circle so the bounds follow the curve.
func (r *Recorder) Arc(cx, cy, rad, a0, a1 float64, ccw bool) {
	rad = math.Max(rad, 0)
	r.b.add(cx+rad*math.Cos(a0), cy+rad*math.Sin(a0))
	delta := surface.ArcDelta(a0, a1, ccw)
	if delta == 0 || rad == 0 {
		return
	}
	const steps = 16
	for i := 1; i <= steps; i++ {
		a := a0 + delta*float64(i)/steps
		r.b.add(cx+rad*math.Cos(a), cy+rad*math.Sin(a))
	}
}

func (r *Recorder) Fill(p surface.Paint) {
	if !r.b.isSet {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: OpFill, Paint: p, Bounds: r.b.rect()})
}

func (r *Recorder) Stroke(p surface.Paint, width float64) {
	if !r.b.isSet {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Paint: p, Width: width, Bounds: r.b.rect()})
}

func (r *Recorder) Label(x, y float64, text string, anchor surface.Anchor) {
	r.Ops = append(r.Ops, Op{Kind: OpLabel, Bounds: surface.Rect{X: x, Y: y}, Text: text})
}

// Of returns the recorded operations of one kind, in painting order.
func (r *Recorder) Of(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

type box struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

func (b *box) add(x, y float64) {
	if !b.isSet {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.isSet = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b box) rect() surface.Rect {
	return surface.Rect{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}
}
