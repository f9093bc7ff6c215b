package dashboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/surface"
)

// ErrNoFrame is returned when exporting a widget that has nothing drawn.
var ErrNoFrame = errors.New("widget has no painted frame")

// OnFrame registers fn for every frame the widget paints.
func (w *Widget) OnFrame(fn func(chart.Frame)) {
	if w.chart != nil {
		w.chart.OnFrame(fn)
	}
}

// SVG redraws the last frame as a standalone SVG document with the overlay
// text baked in.
func (w *Widget) SVG() (string, error) {
	if !w.Canvas() || w.chart == nil {
		return "", ErrNoFrame
	}
	svg := surface.NewSVG(0, 0)
	f, ok := w.chart.Redraw(svg)
	if !ok {
		return "", ErrNoFrame
	}
	_, h := w.chart.Size()
	f.Overlay.Bake(svg, h)
	return svg.Markup(), nil
}

// WritePNG rasterizes the last frame, overlay included.
func (w *Widget) WritePNG(out io.Writer) error {
	if !w.Canvas() || w.chart == nil {
		return ErrNoFrame
	}
	width, height := w.chart.Size()
	r, err := surface.NewRaster(width, height)
	if err != nil {
		return fmt.Errorf("error creating raster for %s: %w", w.ID, err)
	}
	f, ok := w.chart.Redraw(r)
	if !ok {
		return ErrNoFrame
	}
	f.Overlay.Bake(r, height)
	if err := r.Encode(out); err != nil {
		return fmt.Errorf("error encoding PNG for %s: %w", w.ID, err)
	}
	return nil
}
