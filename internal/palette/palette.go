// Package palette assigns series colors and derives the darker shade used as
// the far stop of gradient fills.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buffos/go-datadash/internal/surface"
)

// Default is the ten-color palette cycled by series index.
var Default = []string{
	"#1976d2", "#2e7d32", "#ff9800", "#d32f2f", "#0097a7",
	"#8e24aa", "#f4511e", "#43a047", "#e53935", "#1e88e5",
}

// Palette resolves colors for one chart.
type Palette struct {
	Colors []string
}

// New returns a palette over colors, or over Default when colors is empty.
func New(colors []string) Palette {
	if len(colors) == 0 {
		colors = Default
	}
	return Palette{Colors: colors}
}

// Index returns the palette color for a series index.
func (p Palette) Index(i int) string {
	colors := p.Colors
	if len(colors) == 0 {
		colors = Default
	}
	if i < 0 {
		i = -i
	}
	return colors[i%len(colors)]
}

// Resolve returns override when it is set, else the palette color for index.
func (p Palette) Resolve(override string, index int) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return p.Index(index)
}

// Resolve uses the default palette.
func Resolve(override string, index int) string {
	return New(nil).Resolve(override, index)
}

// Darken scales each channel of a #rgb, #rrggbb, rgb() or rgba() color by
// (100-percent)/100, flooring the result. Alpha is kept. Hex input comes back
// as rgb(); formats it does not recognise are returned unchanged.
func Darken(color string, percent float64) string {
	if !strings.HasPrefix(color, "#") && !strings.HasPrefix(color, "rgb") {
		return color
	}
	c, ok := surface.ParseColor(color)
	if !ok {
		return color
	}
	scale := func(v uint8) int { return int(float64(v) * (100 - percent) / 100) }
	r, g, b := scale(c.R), scale(c.G), scale(c.B)
	if strings.HasPrefix(color, "rgba") {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.A, 'f', -1, 64))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Fill returns the paint for a shape: a flat base color, or when gradient is
// set a linear gradient from base to its 20% darker shade along the
// diagonal of the bounding box.
func Fill(gradient bool, base string, box surface.Rect) surface.Paint {
	return Linear(gradient, base, box.X, box.Y, box.X+box.W, box.Y+box.H)
}

// Linear is Fill with explicit gradient endpoints.
func Linear(gradient bool, base string, x0, y0, x1, y1 float64) surface.Paint {
	if !gradient {
		return surface.Solid(base)
	}
	return surface.Paint{
		Color: base,
		Gradient: &surface.Gradient{
			X0: x0, Y0: y0, X1: x1, Y1: y1,
			Stops: []surface.Stop{{Offset: 0, Color: base}, {Offset: 1, Color: Darken(base, 20)}},
		},
	}
}

// Radial builds a radial gradient from base at r0 to the darker shade at r1.
func Radial(gradient bool, base string, cx, cy, r0, r1 float64) surface.Paint {
	if !gradient {
		return surface.Solid(base)
	}
	return surface.Paint{
		Color: base,
		Gradient: &surface.Gradient{
			Radial: true,
			X0:     cx,
			Y0:     cy,
			R0:     r0,
			X1:     cx,
			Y1:     cy,
			R1:     r1,
			Stops:  []surface.Stop{{Offset: 0, Color: base}, {Offset: 1, Color: Darken(base, 20)}},
		},
	}
}
