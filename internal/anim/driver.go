// Package anim drives time-based progress ramps from 0 to 1, one callback
// per display refresh tick.
package anim

import (
	"context"
	"errors"
	"time"
)

// DefaultDuration is the ramp length used by every dashboard widget.
const DefaultDuration = 1000 * time.Millisecond

// DefaultFPS is the display refresh rate assumed when none is configured.
const DefaultFPS = 60

// ErrSuperseded is returned by Run when a newer render pass invalidated the
// token the animation was started with.
var ErrSuperseded = errors.New("animation superseded by a newer render pass")

// Driver schedules progress callbacks on a refresh clock. A real driver
// waits on a ticker; a virtual one advances its clock by one interval per
// tick without sleeping, which makes offline frame export deterministic.
type Driver struct {
	Interval time.Duration
	virtual  bool
}

// NewDriver returns a driver ticking fps times per second in real time.
func NewDriver(fps int) *Driver {
	return &Driver{Interval: frameInterval(fps)}
}

// NewVirtual returns a driver whose clock jumps one frame per tick.
func NewVirtual(fps int) *Driver {
	return &Driver{Interval: frameInterval(fps), virtual: true}
}

// Virtual reports whether the driver runs on a synthetic clock.
func (d *Driver) Virtual() bool { return d.virtual }

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Progress is the clamped fraction of duration elapsed between start and now.
func Progress(start, now time.Time, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Run calls onProgress once per tick with a non-decreasing progress until it
// has been called with exactly 1. Before every call the token is checked; an
// invalidated token stops the loop with ErrSuperseded and a cancelled
// context stops it with the context's error.
func (d *Driver) Run(ctx context.Context, tok Token, duration time.Duration, onProgress func(progress float64)) error {
	clk := d.clock()
	defer clk.stop()

	start := clk.begin()
	for {
		now, err := clk.next(ctx)
		if err != nil {
			return err
		}
		p := Progress(start, now, duration)
		if !tok.Valid() {
			return ErrSuperseded
		}
		onProgress(p)
		if p >= 1 {
			return nil
		}
	}
}

// Start runs the animation on its own goroutine. The returned channel
// receives Run's result and is then closed.
func (d *Driver) Start(ctx context.Context, tok Token, duration time.Duration, onProgress func(progress float64)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- d.Run(ctx, tok, duration, onProgress)
	}()
	return done
}

// Steps lists the progress values a virtual run of duration produces at the
// driver's interval, without painting anything. Used to size frame exports.
func (d *Driver) Steps(duration time.Duration) []float64 {
	v := &Driver{Interval: d.Interval, virtual: true}
	var steps []float64
	_ = v.Run(context.Background(), Token{}, duration, func(p float64) {
		steps = append(steps, p)
	})
	return steps
}

type frameClock interface {
	begin() time.Time
	next(ctx context.Context) (time.Time, error)
	stop()
}

func (d *Driver) clock() frameClock {
	iv := d.Interval
	if iv <= 0 {
		iv = frameInterval(DefaultFPS)
	}
	if d.virtual {
		return &virtualClock{step: iv}
	}
	return &tickerClock{ticker: time.NewTicker(iv)}
}

type tickerClock struct {
	ticker *time.Ticker
}

func (c *tickerClock) begin() time.Time { return time.Now() }

func (c *tickerClock) next(ctx context.Context) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case <-c.ticker.C:
		// the tick value drops the monotonic reading, read the clock again
		return time.Now(), nil
	}
}

func (c *tickerClock) stop() { c.ticker.Stop() }

// virtualClock starts at a fixed epoch and advances by step on every tick.
type virtualClock struct {
	at   time.Time
	step time.Duration
}

var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func (c *virtualClock) begin() time.Time {
	c.at = epoch
	return c.at
}

func (c *virtualClock) next(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	c.at = c.at.Add(c.step)
	return c.at, nil
}

func (c *virtualClock) stop() {}
