package tooltip

import (
	"sync"
	"testing"
	"time"
)

func fixedSize(string) (float64, float64) { return 100, 30 }

func newTip(opts ...Option) *Tooltip {
	opts = append([]Option{
		WithMeasurer(fixedSize),
		WithViewport(Viewport{Width: 800, Height: 600}),
	}, opts...)
	t := New(opts...)
	t.Start()
	return t
}

func TestPosition(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	tests := []struct {
		name      string
		x, y      float64
		vp        Viewport
		left, top float64
	}{
		{"below right", 100, 100, vp, 115, 115},
		{"flip left", 750, 100, vp, 640, 115},
		{"flip up", 100, 580, vp, 115, 540},
		{"corner", 790, 590, vp, 680, 550},
		{"scrolled", 100, 100, Viewport{Width: 800, Height: 600, ScrollX: 20, ScrollY: 40}, 135, 155},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, top := Position(tt.x, tt.y, 100, 30, tt.vp)
			if left != tt.left || top != tt.top {
				t.Errorf("Position(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, left, top, tt.left, tt.top)
			}
		})
	}
}

func TestShowAndHide(t *testing.T) {
	tip := newTip()
	if tip.Created() {
		t.Fatal("tooltip created before first use")
	}

	tip.Show("", 10, 10)
	if tip.Created() || tip.State().Visible {
		t.Errorf("empty text must not show the tooltip")
	}

	tip.Show("B: 20", 10, 10)
	st := tip.State()
	if !tip.Created() || !st.Visible || st.Text != "B: 20" || st.Left != 25 || st.Top != 25 {
		t.Errorf("state after Show = %+v", st)
	}

	tip.Show("A: 10", 20, 20)
	if st := tip.State(); st.Text != "A: 10" || st.Left != 35 {
		t.Errorf("second Show should overwrite everything, got %+v", st)
	}

	tip.Hide()
	if tip.State().Visible {
		t.Errorf("still visible after Hide")
	}
}

func TestStoppedTooltipIgnoresShow(t *testing.T) {
	tip := New(WithMeasurer(fixedSize))
	tip.Show("x", 0, 0)
	if tip.State().Visible {
		t.Errorf("tooltip shown before Start")
	}
	tip.Start()
	tip.Show("x", 0, 0)
	tip.Stop()
	if tip.State().Visible {
		t.Errorf("Stop should hide the tooltip")
	}
	tip.Show("y", 0, 0)
	if tip.State().Visible {
		t.Errorf("tooltip shown after Stop")
	}
}

func TestOnChange(t *testing.T) {
	tip := newTip()
	var mu sync.Mutex
	var seen []State
	tip.OnChange(func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	tip.Show("one", 0, 0)
	tip.Hide()
	tip.Hide() // already hidden, no event

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || !seen[0].Visible || seen[1].Visible {
		t.Errorf("events = %+v", seen)
	}
}

type hitFunc func(x, y float64) (string, bool)

func (f hitFunc) HitTest(x, y float64) (string, bool) { return f(x, y) }

func waitHidden(tip *Tooltip, within time.Duration) bool {
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if !tip.State().Visible {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestBindingMoveAndLeave(t *testing.T) {
	tip := newTip(WithHideDelay(20 * time.Millisecond))
	b := tip.Bind(hitFunc(func(x, y float64) (string, bool) {
		if x < 50 {
			return "left half", true
		}
		return "", false
	}))

	if text, ok := b.Move(10, 10, 110, 210); !ok || text != "left half" {
		t.Fatalf("Move over a shape = %q, %v", text, ok)
	}
	if st := tip.State(); st.Left != 125 || st.Top != 225 {
		t.Errorf("tooltip should follow page coordinates, got %+v", st)
	}

	if _, ok := b.Move(60, 10, 160, 210); ok {
		t.Errorf("Move over empty space matched")
	}
	if tip.State().Visible {
		t.Errorf("no match should hide at once")
	}

	b.Move(10, 10, 110, 210)
	b.Leave()
	if !tip.State().Visible {
		t.Errorf("leave should not hide before the debounce")
	}
	if !waitHidden(tip, time.Second) {
		t.Errorf("tooltip never hid after leave")
	}
}

func TestMoveCancelsPendingHide(t *testing.T) {
	tip := newTip(WithHideDelay(30 * time.Millisecond))
	b := tip.Bind(hitFunc(func(float64, float64) (string, bool) { return "v", true }))

	b.Move(1, 1, 1, 1)
	b.Leave()
	b.Move(2, 2, 2, 2)
	time.Sleep(80 * time.Millisecond)
	if !tip.State().Visible {
		t.Errorf("re-entering should cancel the pending hide")
	}
}

func TestStaticHidesImmediately(t *testing.T) {
	tip := newTip()
	s := tip.BindStatic("Updated hourly")
	s.Enter(5, 5)
	if st := tip.State(); !st.Visible || st.Text != "Updated hourly" {
		t.Fatalf("state = %+v", st)
	}
	s.Move(300, 5)
	if tip.State().Left != 315 {
		t.Errorf("Move should reposition")
	}
	s.Leave()
	if tip.State().Visible {
		t.Errorf("static tooltips hide without delay")
	}
}
