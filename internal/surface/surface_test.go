package surface

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestArcDelta(t *testing.T) {
	tests := []struct {
		name     string
		a0, a1   float64
		ccw      bool
		expected float64
	}{
		{"quarter clockwise", 0, math.Pi / 2, false, math.Pi / 2},
		{"gauge track", math.Pi, 0, false, math.Pi},
		{"empty", 1, 1, false, 0},
		{"full turn", 0, 2 * math.Pi, false, 2 * math.Pi},
		{"more than a turn", 0, 7, false, 2 * math.Pi},
		{"reversed inner arc", math.Pi, 0, true, -math.Pi},
		{"reversed full turn", 2 * math.Pi, 0, true, -2 * math.Pi},
		{"ccw wraps", 0, math.Pi / 2, true, -3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArcDelta(tt.a0, tt.a1, tt.ccw); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ArcDelta(%v, %v, %v) = %v, want %v", tt.a0, tt.a1, tt.ccw, got, tt.expected)
			}
		})
	}
}

func TestSVGShapes(t *testing.T) {
	s := NewSVG(100, 50)
	s.FillRect(10, 5, 20, 30, Solid("#f00"))

	s.BeginPath()
	s.MoveTo(50, 50)
	s.Arc(50, 50, 10, 0, math.Pi, false)
	s.ClosePath()
	s.Fill(Solid("#00f"))

	s.BeginPath()
	s.Arc(50, 50, 10, 0, 2*math.Pi, false)
	s.Stroke(Solid("#000"), 2)

	// a bare move paints nothing
	s.BeginPath()
	s.MoveTo(1, 1)
	s.Stroke(Solid("#000"), 1)

	got := s.Markup()
	wants := []string{
		`<svg width="100" height="50" viewBox="0 0 100 50" xmlns="http://www.w3.org/2000/svg">`,
		`<rect x="10.00" y="5.00" width="20.00" height="30.00" fill="#f00" />`,
		`<path d="M50.00 50.00 L60.00 50.00 A10.00 10.00 0 0 1 40.00 50.00 Z" fill="#00f" />`,
		`<path d="M60.00 50.00 A10.00 10.00 0 0 1 40.00 50.00 A10.00 10.00 0 0 1 60.00 50.00" fill="none" stroke="#000" stroke-width="2.00" />`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q\n%s", want, got)
		}
	}
	if strings.Count(got, "<path") != 2 {
		t.Errorf("expected 2 paths, got markup:\n%s", got)
	}
	if strings.Contains(got, "<defs>") {
		t.Errorf("flat paints should not define gradients")
	}
}

func TestSVGGradients(t *testing.T) {
	s := NewSVG(100, 100)
	s.FillRect(0, 0, 10, 10, Paint{Color: "#fff", Gradient: &Gradient{
		X0: 0, Y0: 0, X1: 10, Y1: 10,
		Stops: []Stop{{0, "#fff"}, {1, "rgb(204, 204, 204)"}},
	}})
	s.BeginPath()
	s.Arc(50, 50, 40, 0, 1, false)
	s.Fill(Paint{Color: "#fff", Gradient: &Gradient{
		Radial: true, X0: 50, Y0: 50, R0: 20, X1: 50, Y1: 50, R1: 40,
		Stops: []Stop{{0, "#fff"}, {1, "#000"}},
	}})

	got := s.Markup()
	wants := []string{
		`<linearGradient id="grad1" gradientUnits="userSpaceOnUse" x1="0.00" y1="0.00" x2="10.00" y2="10.00">`,
		`fill="url(#grad1)"`,
		`<radialGradient id="grad2" gradientUnits="userSpaceOnUse" cx="50.00" cy="50.00" r="40.00">`,
		`<stop offset="0.5000" stop-color="#fff" />`,
		`<stop offset="1.0000" stop-color="#000" />`,
		`fill="url(#grad2)"`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q\n%s", want, got)
		}
	}

	s.Clear()
	if strings.Contains(s.Markup(), "Gradient") {
		t.Errorf("Clear should drop gradient definitions")
	}
}

func TestSVGLabelEscapes(t *testing.T) {
	s := NewSVG(10, 10)
	s.Label(5, 5, `A & "B" <C>`, "")
	want := `text-anchor="middle" dominant-baseline="middle">A &amp; &quot;B&quot; &lt;C&gt;</text>`
	if got := s.Markup(); !strings.Contains(got, want) {
		t.Errorf("label not escaped:\n%s", got)
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	for _, p := range [][2]float64{{10, 10}, {15, 15}, {12, 14}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("%v should be inside %+v", p, r)
		}
	}
	if r.Contains(15.01, 12) || r.Contains(9.99, 12) {
		t.Errorf("points outside reported inside")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  RGBA
		ok    bool
	}{
		{"#1976d2", RGBA{0x19, 0x76, 0xd2, 1}, true},
		{"#abc", RGBA{0xaa, 0xbb, 0xcc, 1}, true},
		{"rgb(1, 2, 3)", RGBA{1, 2, 3, 1}, true},
		{"rgba(75, 192, 192, 0.3)", RGBA{75, 192, 192, 0.3}, true},
		{"transparent", RGBA{}, true},
		{"#12", RGBA{}, false},
		{"hsl(0, 0%, 0%)", RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRasterEncodesPNG(t *testing.T) {
	s, err := NewRaster(40, 20)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	s.FillRect(0, 0, 40, 20, Solid("#ff0000"))
	s.Label(20, 10, "ok", AnchorMiddle)

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("image is %dx%d, want 40x20", b.Dx(), b.Dy())
	}
	r, g, _, a := img.At(2, 2).RGBA()
	if r>>8 < 200 || g>>8 > 50 || a>>8 < 200 {
		t.Errorf("corner pixel = %d,%d,%d, want opaque red", r>>8, g>>8, a>>8)
	}
}

func TestRasterColors(t *testing.T) {
	tests := []struct {
		input string
		want  drawing.Color
	}{
		{"#1976d2", drawing.Color{R: 0x19, G: 0x76, B: 0xd2, A: 255}},
		{"#abc", drawing.Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 255}},
		{"rgb(20, 94, 168)", drawing.Color{R: 20, G: 94, B: 168, A: 255}},
		{"rgba(75, 192, 192, 0.5)", drawing.Color{R: 75, G: 192, B: 192, A: 127}},
		{"navy", drawing.ColorNavy},
		{"transparent", drawing.ColorTransparent},
		{"#12345", drawing.ColorBlack},
		{"chartreuse-ish", drawing.ColorBlack},
	}
	for _, tt := range tests {
		if got := toDrawing(tt.input); got != tt.want {
			t.Errorf("toDrawing(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	grad := blend([]Stop{{Offset: 0, Color: "#000000"}, {Offset: 1, Color: "#ffffff"}})
	if grad.R != 128 || grad.A != 255 {
		t.Errorf("blend of black and white = %+v", grad)
	}
}
