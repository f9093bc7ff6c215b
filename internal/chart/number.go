package chart

import (
	"github.com/buffos/go-datadash/internal/format"
	"github.com/buffos/go-datadash/internal/surface"
)

// numberScene counts the box text up from zero. It never touches a surface.
type numberScene struct {
	cfg   Config
	final float64
}

func newNumberScene(cfg Config) *numberScene {
	return &numberScene{cfg: cfg, final: cfg.value(format.String(cfg.Content))}
}

func (s *numberScene) draw(_ surface.Surface, p float64) Frame {
	return Frame{
		Progress: p,
		Hits:     nothing{},
		Overlay:  Overlay{Text: s.cfg.text(s.final * p)},
	}
}
