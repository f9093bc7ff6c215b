// Package dashboard finds the widget boxes of a dashboard page, rebuilds
// their markup, renders every chart and writes the painted frames back
// into the document.
package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/surface"
	"github.com/buffos/go-datadash/internal/tooltip"
)

const (
	boxSelector  = ".datadash .box"
	tooltipID    = "chartTooltip"
	timeOfDay    = "15:04"
	defaultDelay = 10 // seconds, for a datadash-refresh that is not a number
)

// Page is one loaded dashboard document. The document is only touched
// under mu; charts render concurrently on their own surfaces.
type Page struct {
	mu  sync.Mutex
	doc *goquery.Document

	widgets []*Widget
	byID    map[string]*Widget
	statics []*StaticTarget
	refresh []Refresh

	tip *tooltip.Tooltip

	settings    chart.Settings
	width       float64
	height      float64
	concurrency int
	tipOpts     []tooltip.Option
	logger      *log.Logger
	trace       *log.Logger
	now         func() time.Time
}

// Refresh is an element showing the time of the last page load.
type Refresh struct {
	Seconds int
	Text    string
}

// Option customizes a Page.
type Option func(*Page)

func WithSettings(s chart.Settings) Option {
	return func(p *Page) { p.settings = s }
}

// WithSize sets the container size of boxes without datadash-width/height.
func WithSize(w, h float64) Option {
	return func(p *Page) { p.width, p.height = w, h }
}

// WithConcurrency bounds how many charts render at once.
func WithConcurrency(n int) Option {
	return func(p *Page) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func WithTooltip(opts ...tooltip.Option) Option {
	return func(p *Page) { p.tipOpts = append(p.tipOpts, opts...) }
}

// WithLogger sets where warnings go.
func WithLogger(l *log.Logger) Option {
	return func(p *Page) { p.logger = l }
}

// WithTrace sets where per-box narration goes.
func WithTrace(l *log.Logger) Option {
	return func(p *Page) { p.trace = l }
}

// WithClock replaces time.Now for refresh boxes.
func WithClock(now func() time.Time) Option {
	return func(p *Page) { p.now = now }
}

// Load parses a dashboard document and discovers its widgets. Markup is not
// rebuilt until Render.
func Load(r io.Reader, opts ...Option) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing dashboard HTML: %w", err)
	}
	p := &Page{
		doc:         doc,
		byID:        make(map[string]*Widget),
		settings:    chart.DefaultSettings(),
		width:       chart.DefaultWidth,
		height:      chart.DefaultHeight,
		concurrency: 4,
		logger:      log.Default(),
		trace:       log.New(io.Discard, "", 0),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tip = tooltip.New(p.tipOpts...)
	p.tip.Start()

	p.ensureTooltipHost()
	p.discover()
	p.discoverStatics()
	return p, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(b []byte, opts ...Option) (*Page, error) {
	return Load(bytes.NewReader(b), opts...)
}

func (p *Page) ensureTooltipHost() {
	if p.doc.Find("#"+tooltipID).Length() > 0 {
		return
	}
	host := p.doc.Find(".datadash").First()
	if host.Length() == 0 {
		return
	}
	host.AppendHtml(`<div id="` + tooltipID + `"></div>`)
}

func (p *Page) discover() {
	p.doc.Find(boxSelector).Each(func(i int, box *goquery.Selection) {
		if _, ok := box.Attr(dataInitial); !ok {
			inner, _ := box.Html()
			box.SetAttr(dataInitial, strings.TrimSpace(inner))
		}
		typ, cfg, known := readConfig(box, p.width, p.height)
		id := box.AttrOr(attrID, fmt.Sprintf("box-%d", i+1))
		if _, dup := p.byID[id]; dup {
			id = fmt.Sprintf("%s-%d", id, i+1)
		}
		box.SetAttr(dataWidgetID, id)

		w := &Widget{
			ID:     id,
			Index:  i,
			Type:   typ,
			Kind:   cfg.Kind,
			Known:  known,
			Config: cfg,
			Data:   []byte(box.AttrOr(attrData, "")),
			box:    box,
		}
		if known {
			chartOpts := []chart.Option{
				chart.WithSettings(p.settings),
				chart.WithLogger(p.logger),
				chart.WithTrace(p.trace),
			}
			if w.Canvas() {
				w.svg = surface.NewSVG(cfg.Width, cfg.Height)
				w.chart = chart.New(cfg, w.svg, chartOpts...)
				w.binding = p.tip.Bind(w.chart)
			} else {
				w.chart = chart.New(cfg, nil, chartOpts...)
			}
		}
		p.widgets = append(p.widgets, w)
		p.byID[id] = w
		p.trace.Printf("found box %s type %q", id, typ)
	})
}

// Widgets returns the boxes in document order.
func (p *Page) Widgets() []*Widget {
	return append([]*Widget(nil), p.widgets...)
}

// Widget looks a box up by id.
func (p *Page) Widget(id string) (*Widget, bool) {
	w, ok := p.byID[id]
	return w, ok
}

// Tooltip is the page's shared tooltip.
func (p *Page) Tooltip() *tooltip.Tooltip { return p.tip }

// Refreshes lists the refresh elements stamped by the last Render.
func (p *Page) Refreshes() []Refresh {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Refresh(nil), p.refresh...)
}

// Close stops every animation and the tooltip.
func (p *Page) Close() {
	for _, w := range p.widgets {
		if w.chart != nil {
			w.chart.Cancel()
		}
	}
	p.tip.Stop()
}

// HTML writes the current frame of every chart into the document and
// returns it.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.widgets {
		p.sync(w)
	}
	p.syncTooltip()
	html, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("error serializing dashboard: %w", err)
	}
	return html, nil
}

// WriteHTML writes HTML to w.
func (p *Page) WriteHTML(w io.Writer) error {
	html, err := p.HTML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}
