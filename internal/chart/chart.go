// Package chart lays out and animates dashboard charts. Every kind turns its
// payload into a static scene once per render pass and then paints that
// scene frame by frame while the animation ramps from 0 to 1, recording the
// painted geometry for hit-testing and the text overlay for the page.
package chart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/surface"
)

// Chart is one widget instance. It owns its surface, the geometry and
// overlay of the last painted frame, and the token slot that makes a new
// render pass supersede the previous one.
type Chart struct {
	cfg Config
	set Settings

	logger *log.Logger
	trace  *log.Logger

	slot anim.Slot

	mu      sync.Mutex
	sf      surface.Surface
	scene   scene
	frame   Frame
	onFrame func(Frame)
}

// Option customizes a Chart.
type Option func(*Chart)

// WithSettings replaces the default layout and interaction constants.
func WithSettings(s Settings) Option {
	return func(c *Chart) { c.set = s }
}

// WithLogger sets where warnings go. Defaults to the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) { c.logger = l }
}

// WithTrace sets where per-pass narration goes. Off by default.
func WithTrace(l *log.Logger) Option {
	return func(c *Chart) { c.trace = l }
}

// New returns a chart drawing into sf. Number charts may pass a nil surface.
func New(cfg Config, sf surface.Surface, opts ...Option) *Chart {
	c := &Chart{
		cfg:    cfg,
		set:    DefaultSettings(),
		logger: log.Default(),
		trace:  log.New(io.Discard, "", 0),
		sf:     sf,
		frame:  Frame{Hits: nothing{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.set.Duration < 0 {
		c.set.Duration = 0
	}
	return c
}

// Config returns the widget configuration.
func (c *Chart) Config() Config { return c.cfg }

// OnFrame registers fn to be called after every painted frame. fn runs on
// the animation goroutine, outside the chart's lock.
func (c *Chart) OnFrame(fn func(Frame)) {
	c.mu.Lock()
	c.onFrame = fn
	c.mu.Unlock()
}

// Render starts a new render pass: it invalidates any pass still animating,
// resizes and clears the surface, lays out the payload and animates it in
// with drv. A nil driver paints the settled frame at once.
//
// A payload that cannot be drawn leaves the surface cleared and returns a
// *DataError. A pass overtaken by a newer one returns anim.ErrSuperseded.
func (c *Chart) Render(ctx context.Context, drv *anim.Driver, raw []byte) error {
	if c.cfg.Kind.Canvas() && c.sf == nil {
		return errors.New("chart: no surface to draw on")
	}
	tok := c.slot.Next()

	c.mu.Lock()
	w, h := c.cfg.size()
	if c.cfg.Kind.Canvas() {
		c.sf.Resize(w, h)
	}
	c.scene = nil
	c.frame = Frame{Hits: nothing{}}
	sc, err := newScene(c.cfg, c.set, raw)
	if err == nil {
		c.scene = sc
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Printf("Warning: not drawing %s chart %q: %v", c.cfg.Kind, c.cfg.Title, err)
		return err
	}

	c.trace.Printf("render %s %q pass %s", c.cfg.Kind, c.cfg.Title, tok.Short())
	if drv == nil {
		c.paint(tok, sc, 1)
		return nil
	}
	err = drv.Run(ctx, tok, c.set.Duration, func(p float64) {
		c.paint(tok, sc, p)
	})
	if err != nil {
		c.trace.Printf("pass %s stopped: %v", tok.Short(), err)
		return err
	}
	c.trace.Printf("pass %s settled", tok.Short())
	return nil
}

// paint draws one frame unless the pass has been superseded in the
// meantime.
func (c *Chart) paint(tok anim.Token, sc scene, p float64) {
	c.mu.Lock()
	if !tok.Valid() {
		c.mu.Unlock()
		return
	}
	f := sc.draw(c.sf, p)
	if m, ok := c.sf.(interface{ Markup() string }); ok {
		f.Markup = m.Markup()
	}
	c.frame = f
	fn := c.onFrame
	c.mu.Unlock()

	if fn != nil {
		fn(f)
	}
}

// Cancel stops any pass in flight without starting a new one.
func (c *Chart) Cancel() {
	c.slot.Invalidate()
}

// HitTest returns the tooltip text for a point in surface coordinates,
// tested against the last painted frame.
func (c *Chart) HitTest(x, y float64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame.Hits.HitTest(x, y)
}

// Frame returns the last painted frame.
func (c *Chart) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Overlay returns the overlay of the last painted frame.
func (c *Chart) Overlay() Overlay {
	return c.Frame().Overlay
}

// Redraw paints the last frame again onto another surface, for exports in
// a different format. It reports false when nothing has been laid out.
func (c *Chart) Redraw(sf surface.Surface) (Frame, bool) {
	c.mu.Lock()
	sc, p := c.scene, c.frame.Progress
	c.mu.Unlock()
	if sc == nil {
		return Frame{}, false
	}
	w, h := c.cfg.size()
	sf.Resize(w, h)
	return sc.draw(sf, p), true
}

// Size is the pixel box the chart lays itself out in.
func (c *Chart) Size() (float64, float64) {
	return c.cfg.size()
}

// Render draws one chart into sf with the default settings and returns the
// geometry of its last painted frame.
func Render(ctx context.Context, drv *anim.Driver, sf surface.Surface, cfg Config, raw []byte) (HitTester, error) {
	c := New(cfg, sf)
	if err := c.Render(ctx, drv, raw); err != nil {
		return c.Frame().Hits, err
	}
	return c.Frame().Hits, nil
}
