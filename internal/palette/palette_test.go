package palette

import (
	"testing"

	"github.com/buffos/go-datadash/internal/surface"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		override string
		index    int
		expected string
	}{
		{"", 0, "#1976d2"},
		{"", 3, "#d32f2f"},
		{"", 10, "#1976d2"},
		{"", 13, "#d32f2f"},
		{"   ", 1, "#2e7d32"},
		{"hotpink", 4, "hotpink"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.override, tt.index); got != tt.expected {
			t.Errorf("Resolve(%q, %d) = %q, want %q", tt.override, tt.index, got, tt.expected)
		}
	}

	custom := New([]string{"#000", "#fff"})
	if got := custom.Resolve("", 3); got != "#fff" {
		t.Errorf("custom palette index 3 = %q, want #fff", got)
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		color    string
		percent  float64
		expected string
	}{
		{"#ffffff", 20, "rgb(204, 204, 204)"},
		{"#1976d2", 20, "rgb(20, 94, 168)"},
		{"#fff", 50, "rgb(127, 127, 127)"},
		{"rgb(100, 50, 25)", 20, "rgb(80, 40, 20)"},
		{"rgba(75, 192, 192, 0.3)", 20, "rgba(60, 153, 153, 0.3)"},
		{"rgba(10, 10, 10)", 0, "rgba(10, 10, 10, 1)"},
		{"hotpink", 20, "hotpink"},
		{"#12345", 20, "#12345"},
		{"rgb(bad)", 20, "rgb(bad)"},
	}
	for _, tt := range tests {
		if got := Darken(tt.color, tt.percent); got != tt.expected {
			t.Errorf("Darken(%q, %v) = %q, want %q", tt.color, tt.percent, got, tt.expected)
		}
	}
}

func TestFill(t *testing.T) {
	box := surface.Rect{X: 10, Y: 20, W: 30, H: 40}

	flat := Fill(false, "#1976d2", box)
	if flat.Gradient != nil || flat.Color != "#1976d2" {
		t.Errorf("flat fill = %+v", flat)
	}

	grad := Fill(true, "#1976d2", box)
	g := grad.Gradient
	if g == nil {
		t.Fatal("gradient fill has no gradient")
	}
	if g.Radial || g.X0 != 10 || g.Y0 != 20 || g.X1 != 40 || g.Y1 != 60 {
		t.Errorf("gradient should span the box diagonal, got %+v", g)
	}
	if len(g.Stops) != 2 || g.Stops[0].Color != "#1976d2" || g.Stops[1].Color != "rgb(20, 94, 168)" {
		t.Errorf("stops = %+v", g.Stops)
	}

	radial := Radial(true, "#fff", 5, 5, 1, 4)
	if !radial.Gradient.Radial || radial.Gradient.R0 != 1 || radial.Gradient.R1 != 4 {
		t.Errorf("radial = %+v", radial.Gradient)
	}
}
