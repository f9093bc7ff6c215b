package surfacetest

import (
	"math"
	"testing"

	"github.com/buffos/go-datadash/internal/surface"
)

func TestRecorderBounds(t *testing.T) {
	r := NewRecorder(200, 200)
	r.BeginPath()
	r.MoveTo(100, 100)
	r.Arc(100, 100, 50, 0, math.Pi/2, false)
	r.ClosePath()
	r.Fill(surface.Solid("#123"))

	fills := r.Of(OpFill)
	if len(fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(fills))
	}
	b := fills[0].Bounds
	if math.Abs(b.X-100) > 1e-9 || math.Abs(b.Y-100) > 1e-9 || math.Abs(b.W-50) > 1e-9 || math.Abs(b.H-50) > 1e-9 {
		t.Errorf("quarter slice bounds = %+v, want {100 100 50 50}", b)
	}

	r.Clear()
	if len(r.Ops) != 0 || r.Clears != 1 {
		t.Errorf("Clear left ops=%d clears=%d", len(r.Ops), r.Clears)
	}
}

func TestRecorderSkipsEmptyPaths(t *testing.T) {
	r := NewRecorder(10, 10)
	r.BeginPath()
	r.ClosePath()
	r.Fill(surface.Solid("#000"))
	r.Stroke(surface.Solid("#000"), 1)
	if len(r.Ops) != 0 {
		t.Errorf("empty path painted %d ops", len(r.Ops))
	}
}
