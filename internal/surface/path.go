package surface

import "math"

type segKind int

const (
	segMove segKind = iota
	segLine
	segArc
	segClose
)

// segment is one path command. Arcs keep their center form; X/Y hold the end
// point for every kind so the current point is always known.
type segment struct {
	kind  segKind
	x, y  float64
	cx    float64
	cy    float64
	r     float64
	start float64
	delta float64
}

// path accumulates the commands between BeginPath and Fill/Stroke. It is
// shared by the SVG and raster surfaces.
type path struct {
	segs       []segment
	hasCurrent bool
	cur        [2]float64
	sub        [2]float64
}

func (p *path) reset() {
	p.segs = p.segs[:0]
	p.hasCurrent = false
}

func (p *path) empty() bool { return len(p.segs) == 0 }

func (p *path) moveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, x: x, y: y})
	p.cur = [2]float64{x, y}
	p.sub = p.cur
	p.hasCurrent = true
}

func (p *path) lineTo(x, y float64) {
	if !p.hasCurrent {
		p.moveTo(x, y)
		return
	}
	p.segs = append(p.segs, segment{kind: segLine, x: x, y: y})
	p.cur = [2]float64{x, y}
}

func (p *path) arc(cx, cy, r, a0, a1 float64, ccw bool) {
	if r < 0 {
		r = 0
	}
	sx, sy := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	if p.hasCurrent {
		p.lineTo(sx, sy)
	} else {
		p.moveTo(sx, sy)
	}
	delta := ArcDelta(a0, a1, ccw)
	if delta == 0 || r == 0 {
		return
	}
	ex, ey := cx+r*math.Cos(a0+delta), cy+r*math.Sin(a0+delta)
	p.segs = append(p.segs, segment{kind: segArc, x: ex, y: ey, cx: cx, cy: cy, r: r, start: a0, delta: delta})
	p.cur = [2]float64{ex, ey}
}

func (p *path) closePath() {
	if !p.hasCurrent {
		return
	}
	p.segs = append(p.segs, segment{kind: segClose, x: p.sub[0], y: p.sub[1]})
	p.cur = p.sub
}
