package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/chart"
)

// Render rebuilds the markup of every box and renders all charts with drv,
// at most the configured number at a time. A nil driver paints the settled
// frames at once.
//
// A box that cannot be drawn logs a warning, keeps an empty chart container
// and records the error on its Widget; it never fails the page. Render only
// returns an error when ctx ends first.
func (p *Page) Render(ctx context.Context, drv *anim.Driver) error {
	p.mu.Lock()
	for _, w := range p.widgets {
		p.rebuild(w)
	}
	p.stampRefresh()
	p.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, w := range p.widgets {
		if w.chart == nil {
			continue
		}
		w := w
		g.Go(func() error {
			err := w.chart.Render(gctx, drv, w.Data)
			switch {
			case err == nil:
				w.setErr(nil)
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case errors.Is(err, anim.ErrSuperseded):
				p.trace.Printf("box %s: %v", w.ID, err)
				return nil
			}
			w.setErr(err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

// rebuild replaces the inner markup of a box with the title and an empty
// chart container or content box. Title and passthrough text are attribute
// values and go in as text; only the original content stays markup. It is
// kept once, on the first initialization.
func (p *Page) rebuild(w *Widget) {
	cfg := w.Config
	var b strings.Builder
	b.WriteString(`<div class="inserted-content">`)
	fmt.Fprintf(&b, `<div class="box-title">%s</div>`, html.EscapeString(cfg.Title))
	switch {
	case w.Canvas():
		b.WriteString(`<div class="chart-container"></div>`)
	case w.Known:
		b.WriteString(`<div class="box-content"></div>`)
	default:
		fmt.Fprintf(&b, `<div class="box-content">%s</div>`, html.EscapeString(cfg.Prefix+cfg.Content+cfg.Suffix))
	}
	b.WriteString(`</div>`)

	if _, done := w.box.Attr(dataInitialized); !done {
		fmt.Fprintf(&b, `<div class="original-content">%s</div>`, w.box.AttrOr(dataInitial, ""))
		w.box.SetAttr(dataInitialized, "true")
	}
	w.box.SetHtml(b.String())

	if !w.Known && w.Type != refreshType {
		if s, ok := suggest(w.Type); ok {
			p.logger.Printf("Warning: unrecognized widget type %q in box %s (did you mean %q?)", w.Type, w.ID, s)
		} else {
			p.logger.Printf("Warning: unrecognized widget type %q in box %s", w.Type, w.ID)
		}
	}
}

// stampRefresh writes the load time into every element carrying
// datadash-refresh.
func (p *Page) stampRefresh() {
	p.refresh = p.refresh[:0]
	clock := p.now().Format(timeOfDay)
	p.doc.Find(".datadash [" + attrRefresh + "]").Each(func(_ int, el *goquery.Selection) {
		secs, err := strconv.Atoi(strings.TrimSpace(el.AttrOr(attrRefresh, "")))
		if err != nil || secs == 0 {
			secs = defaultDelay
		}
		text := el.AttrOr(attrPre, "") + clock + el.AttrOr(attrSuf, "")
		if content := el.Find(".box-content").First(); content.Length() > 0 {
			content.SetText(text)
		} else {
			el.SetText(text)
		}
		p.refresh = append(p.refresh, Refresh{Seconds: secs, Text: text})
	})
}

// sync copies the last painted frame of a widget into its box.
func (p *Page) sync(w *Widget) {
	if w.chart == nil {
		return
	}
	f := w.chart.Frame()
	if !w.Canvas() {
		w.box.Find(".box-content").First().SetText(f.Overlay.Text)
		return
	}

	container := w.box.Find(".chart-container").First()
	inserted := w.box.Find(".inserted-content").First()
	inserted.Find(".chart-legend").Remove()
	if w.Err() != nil || f.Markup == "" {
		container.SetHtml("")
		return
	}

	var b strings.Builder
	b.WriteString(f.Markup)
	for _, v := range f.Overlay.Values {
		fmt.Fprintf(&b, `<div class="chart-external-value" style="%s">%s</div>`,
			html.EscapeString(v.Style), html.EscapeString(v.Text))
	}
	if ax := f.Overlay.Axis; ax != nil {
		fmt.Fprintf(&b, `<div class="%s-container">`, ax.Class)
		for _, it := range ax.Items {
			fmt.Fprintf(&b, `<div class="%s" style="position: absolute; left: %.2fpx; transform: translateX(-50%%)">%s</div>`,
				ax.Class, it.X, html.EscapeString(it.Text))
		}
		b.WriteString(`</div>`)
	}
	container.SetHtml(b.String())

	if len(f.Overlay.Legend) > 0 {
		inserted.AppendHtml(legendHTML(f.Overlay.Legend))
	}
}

func legendHTML(items []chart.LegendItem) string {
	var b strings.Builder
	b.WriteString(`<div class="chart-legend">`)
	for _, it := range items {
		fmt.Fprintf(&b, `<div class="chart-legend-item"><span style="background-color: %s"></span><span class="chart-label">%s</span></div>`,
			html.EscapeString(it.Color), html.EscapeString(it.Label))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// syncTooltip mirrors the tooltip state onto #chartTooltip once it exists.
func (p *Page) syncTooltip() {
	if !p.tip.Created() {
		return
	}
	el := p.doc.Find("#" + tooltipID).First()
	if el.Length() == 0 {
		return
	}
	st := p.tip.State()
	display := "none"
	if st.Visible {
		display = "block"
	}
	el.SetText(st.Text)
	el.SetAttr("style", fmt.Sprintf("display: %s; left: %.2fpx; top: %.2fpx", display, st.Left, st.Top))
}
