// Package surface holds the drawing targets charts paint into. A Surface
// follows the immediate-mode model of an HTML canvas: a path is built with
// MoveTo/LineTo/Arc and then filled or stroked. Coordinates are in pixels
// with the origin at the top-left corner and y growing downwards; angles are
// in radians, growing clockwise on screen.
package surface

import "math"

// Surface is a resizable, clearable drawing area.
type Surface interface {
	Size() (w, h float64)
	Resize(w, h float64)
	Clear()

	FillRect(x, y, w, h float64, p Paint)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc appends a circular arc from angle a0 to a1. When the path already
	// has a current point a straight line joins it to the arc start.
	Arc(cx, cy, r, a0, a1 float64, ccw bool)
	ClosePath()
	Fill(p Paint)
	Stroke(p Paint, width float64)
}

// Labeler is implemented by surfaces that can draw text directly. Charts do
// not need it; it is used to bake overlay labels into standalone frames.
type Labeler interface {
	Label(x, y float64, text string, anchor Anchor)
}

// Anchor is the horizontal alignment of a label around its x position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the box, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Stop is one color stop of a gradient, Offset in [0,1].
type Stop struct {
	Offset float64
	Color  string
}

// Gradient is a linear gradient from (X0,Y0) to (X1,Y1), or when Radial is
// set a radial gradient between the circles (X0,Y0,R0) and (X1,Y1,R1).
type Gradient struct {
	Radial bool
	X0, Y0 float64
	R0     float64
	X1, Y1 float64
	R1     float64
	Stops  []Stop
}

// Paint is a flat color or a gradient. Color is always set so surfaces that
// cannot render gradients have a fallback.
type Paint struct {
	Color    string
	Gradient *Gradient
}

// Solid returns a flat paint.
func Solid(color string) Paint {
	return Paint{Color: color}
}

const fullTurn = 2 * math.Pi

// ArcDelta is the signed sweep an arc from a0 to a1 covers, following the
// canvas rules: clockwise sweeps are in [0, 2π], counter-clockwise sweeps in
// [-2π, 0], and a requested span of a full turn or more draws a full circle.
func ArcDelta(a0, a1 float64, ccw bool) float64 {
	d := a1 - a0
	if !ccw {
		if d >= fullTurn {
			return fullTurn
		}
		d = math.Mod(d, fullTurn)
		if d < 0 {
			d += fullTurn
		}
		return d
	}
	if -d >= fullTurn {
		return -fullTurn
	}
	d = math.Mod(d, fullTurn)
	if d > 0 {
		d -= fullTurn
	}
	return d
}
