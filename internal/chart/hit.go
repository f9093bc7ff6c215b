package chart

import (
	"math"

	"github.com/buffos/go-datadash/internal/surface"
)

// HitTester maps a point in surface coordinates to the tooltip text of the
// shape under it.
type HitTester interface {
	HitTest(x, y float64) (string, bool)
}

// BarRecord is the box of one bar as last drawn.
type BarRecord struct {
	Box  surface.Rect
	Text string
}

// Bars matches the first bar whose box contains the point.
type Bars []BarRecord

func (b Bars) HitTest(x, y float64) (string, bool) {
	for _, r := range b {
		if r.Box.Contains(x, y) {
			return r.Text, true
		}
	}
	return "", false
}

// SliceRecord is one pie or donut slice as last drawn. Inner is zero for
// pie slices.
type SliceRecord struct {
	CX, CY       float64
	Inner, Outer float64
	Start, End   float64
	Text         string
}

// Slices matches by radius band first, then by the first slice whose
// angular span holds the point's angle in [0, 2π).
type Slices []SliceRecord

func (s Slices) HitTest(x, y float64) (string, bool) {
	for _, r := range s {
		dx, dy := x-r.CX, y-r.CY
		dist := math.Hypot(dx, dy)
		if dist > r.Outer || dist < r.Inner {
			continue
		}
		angle := math.Atan2(dy, dx)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		if angle >= r.Start && angle <= r.End {
			return r.Text, true
		}
	}
	return "", false
}

// PointRecord is a line point or radar vertex as last drawn.
type PointRecord struct {
	X, Y float64
	Text string
}

// Points matches the nearest point closer than Tolerance. Ties go to the
// point recorded first.
type Points struct {
	Records   []PointRecord
	Tolerance float64
}

func (p Points) HitTest(x, y float64) (string, bool) {
	best, found := p.Tolerance, -1
	for i, r := range p.Records {
		if d := math.Hypot(x-r.X, y-r.Y); d < best {
			best, found = d, i
		}
	}
	if found < 0 {
		return "", false
	}
	return p.Records[found].Text, true
}

// Constant matches everywhere with the same text.
type Constant string

func (c Constant) HitTest(float64, float64) (string, bool) {
	return string(c), true
}

// nothing never matches.
type nothing struct{}

func (nothing) HitTest(float64, float64) (string, bool) { return "", false }
