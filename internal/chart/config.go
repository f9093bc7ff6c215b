package chart

import (
	"time"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/format"
	"github.com/buffos/go-datadash/internal/palette"
)

// Config is what one widget asks for. It is fixed for a render pass.
type Config struct {
	Kind     Kind
	Title    string
	Content  string
	Prefix   string
	Suffix   string
	Format   format.Code
	Color    string
	Gradient bool

	// Width and Height are the container's pixel box.
	Width  float64
	Height float64
}

// Default container size when a box does not state one.
const (
	DefaultWidth  = 400.0
	DefaultHeight = 250.0
)

func (c Config) size() (float64, float64) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (c Config) value(r format.Raw) float64 {
	return format.ParseValue(r, c.Format)
}

func (c Config) text(v float64) string {
	return format.FormatValue(v, c.Format, c.Prefix, c.Suffix)
}

// Settings are the engine-wide layout and interaction constants.
type Settings struct {
	Duration       time.Duration
	BarMargin      float64
	Padding        float64
	LineTolerance  float64
	RadarTolerance float64
	Palette        palette.Palette
}

// DefaultSettings match the stock dashboard look.
func DefaultSettings() Settings {
	return Settings{
		Duration:       anim.DefaultDuration,
		BarMargin:      10,
		Padding:        30,
		LineTolerance:  5,
		RadarTolerance: 10,
		Palette:        palette.New(nil),
	}
}

func (s Settings) color(cfg Config, index int) string {
	return s.Palette.Resolve(cfg.Color, index)
}
