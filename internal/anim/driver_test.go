package anim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProgressClamps(t *testing.T) {
	start := time.Unix(100, 0)
	tests := []struct {
		now      time.Time
		duration time.Duration
		expected float64
	}{
		{start.Add(-time.Second), time.Second, 0},
		{start, time.Second, 0},
		{start.Add(250 * time.Millisecond), time.Second, 0.25},
		{start.Add(3 * time.Second), time.Second, 1},
		{start, 0, 1},
	}
	for _, tt := range tests {
		if got := Progress(start, tt.now, tt.duration); got != tt.expected {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.now.Sub(start), tt.duration, got, tt.expected)
		}
	}
}

func TestVirtualRunIsMonotonicAndEndsAtOne(t *testing.T) {
	d := NewVirtual(10)
	var seen []float64
	err := d.Run(context.Background(), Token{}, time.Second, func(p float64) {
		seen = append(seen, p)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 10 {
		t.Fatalf("got %d frames, want 10: %v", len(seen), seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Errorf("progress went backwards at frame %d: %v", i, seen)
		}
		if seen[i] > 1 {
			t.Errorf("progress exceeded 1: %v", seen[i])
		}
	}
	if seen[len(seen)-1] != 1 {
		t.Errorf("last progress = %v, want exactly 1", seen[len(seen)-1])
	}
}

func TestZeroDurationPaintsOnce(t *testing.T) {
	calls := 0
	if err := NewVirtual(60).Run(context.Background(), Token{}, 0, func(p float64) {
		calls++
		if p != 1 {
			t.Errorf("progress = %v, want 1", p)
		}
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNewPassSupersedesRunningAnimation(t *testing.T) {
	var slot Slot
	tok := slot.Next()
	var seen []float64
	err := NewVirtual(10).Run(context.Background(), tok, time.Second, func(p float64) {
		seen = append(seen, p)
		if len(seen) == 3 {
			slot.Next()
		}
	})
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("err = %v, want ErrSuperseded", err)
	}
	if len(seen) != 3 {
		t.Errorf("painted %d frames after invalidation, want the loop to stop at 3", len(seen))
	}
	if tok.Valid() {
		t.Errorf("old token still valid")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewDriver(60).Run(ctx, Token{}, time.Second, func(float64) {
		t.Errorf("no frame expected after cancellation")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRealDriverCompletes(t *testing.T) {
	var last float64
	done := NewDriver(200).Start(context.Background(), Token{}, 30*time.Millisecond, func(p float64) {
		if p < last {
			t.Errorf("progress went backwards: %v after %v", p, last)
		}
		last = p
	})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("animation did not finish")
	}
	if last != 1 {
		t.Errorf("last progress = %v, want 1", last)
	}
}

func TestSteps(t *testing.T) {
	steps := NewDriver(4).Steps(time.Second)
	want := []float64{0.25, 0.5, 0.75, 1}
	if len(steps) != len(want) {
		t.Fatalf("Steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("Steps[%d] = %v, want %v", i, steps[i], want[i])
		}
	}
}

func TestTokenShort(t *testing.T) {
	var slot Slot
	if got := slot.Next().Short(); len(got) != 8 {
		t.Errorf("Short() = %q, want 8 characters", got)
	}
}
