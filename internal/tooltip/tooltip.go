// Package tooltip holds the one tooltip a page shares between all of its
// charts, and the pointer bindings that drive it.
package tooltip

import (
	"sync"
	"time"
)

// Offsets from the pointer, and the gap kept when flipping to the other
// side of it near a viewport edge.
const (
	offset = 15.0
	flip   = 10.0
)

// DefaultHideDelay debounces hiding when the pointer leaves a chart.
const DefaultHideDelay = 100 * time.Millisecond

// State is what the tooltip element currently shows. Left and Top are page
// coordinates.
type State struct {
	Visible bool    `json:"visible"`
	Text    string  `json:"text"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Viewport is the visible window the tooltip must stay inside.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	ScrollX float64 `json:"scrollX"`
	ScrollY float64 `json:"scrollY"`
}

// Measurer returns the rendered size of a tooltip showing text.
type Measurer func(text string) (w, h float64)

// EstimateSize guesses the box of a 12px label with the tooltip's padding.
func EstimateSize(text string) (float64, float64) {
	const fontSize = 12.0
	return float64(len([]rune(text)))*fontSize*0.6 + 16, fontSize*1.2 + 10
}

// Position places a box of size w×h next to the pointer at (x, y), flipping
// to the left of or above the pointer when it would overflow the viewport.
func Position(x, y, w, h float64, vp Viewport) (left, top float64) {
	left = x + vp.ScrollX + offset
	top = y + vp.ScrollY + offset
	if left+w > vp.Width {
		left = x - w - flip
	}
	if top+h > vp.Height {
		top = y - h - flip
	}
	return left, top
}

// Tooltip is the shared overlay. The element is created on first use and
// then only ever rewritten in full, so the last writer wins.
type Tooltip struct {
	mu        sync.Mutex
	running   bool
	created   bool
	state     State
	viewport  Viewport
	measure   Measurer
	hideDelay time.Duration
	listeners []func(State)

	pending *time.Timer
	gen     uint64
}

// Option customizes a Tooltip.
type Option func(*Tooltip)

// WithViewport sets the initial viewport.
func WithViewport(vp Viewport) Option {
	return func(t *Tooltip) { t.viewport = vp }
}

// WithMeasurer replaces EstimateSize.
func WithMeasurer(m Measurer) Option {
	return func(t *Tooltip) { t.measure = m }
}

// WithHideDelay sets the debounce used by bindings on pointer leave.
func WithHideDelay(d time.Duration) Option {
	return func(t *Tooltip) { t.hideDelay = d }
}

// New returns a stopped tooltip; call Start before use.
func New(opts ...Option) *Tooltip {
	t := &Tooltip{
		viewport:  Viewport{Width: 1280, Height: 800},
		measure:   EstimateSize,
		hideDelay: DefaultHideDelay,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start enables the tooltip.
func (t *Tooltip) Start() {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
}

// Stop hides the tooltip, drops any pending hide and ignores further Show
// calls until Start.
func (t *Tooltip) Stop() {
	t.Hide()
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
}

// HideDelay is the configured leave debounce.
func (t *Tooltip) HideDelay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hideDelay
}

// OnChange registers fn to receive every new state.
func (t *Tooltip) OnChange(fn func(State)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// SetViewport updates the window used for edge flipping.
func (t *Tooltip) SetViewport(vp Viewport) {
	t.mu.Lock()
	t.viewport = vp
	t.mu.Unlock()
}

// Created reports whether the element has been created yet.
func (t *Tooltip) Created() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.created
}

// State returns the current state.
func (t *Tooltip) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Show writes text into the tooltip and places it near the pointer at page
// coordinates (x, y). Empty text is ignored.
func (t *Tooltip) Show(text string, x, y float64) {
	if text == "" {
		return
	}
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.cancelLocked()
	t.created = true
	w, h := t.measure(text)
	left, top := Position(x, y, w, h, t.viewport)
	t.state = State{Visible: true, Text: text, Left: left, Top: top, Width: w, Height: h}
	t.publishLocked()
}

// Hide hides the tooltip now and drops any pending hide.
func (t *Tooltip) Hide() {
	t.mu.Lock()
	t.cancelLocked()
	t.hideLocked()
}

// HideAfter hides the tooltip after d unless it is shown again or the hide
// is cancelled first. A later call replaces an earlier pending one.
func (t *Tooltip) HideAfter(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	gen := t.gen
	t.pending = time.AfterFunc(d, func() {
		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.hideLocked()
	})
}

// CancelHide drops a pending HideAfter.
func (t *Tooltip) CancelHide() {
	t.mu.Lock()
	t.cancelLocked()
	t.mu.Unlock()
}

func (t *Tooltip) cancelLocked() {
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// hideLocked hides and publishes; it releases the lock.
func (t *Tooltip) hideLocked() {
	if !t.state.Visible {
		t.mu.Unlock()
		return
	}
	t.state.Visible = false
	t.publishLocked()
}

// publishLocked releases the lock and then notifies listeners.
func (t *Tooltip) publishLocked() {
	st := t.state
	listeners := append([]func(State){}, t.listeners...)
	t.mu.Unlock()
	for _, fn := range listeners {
		fn(st)
	}
}
