package dashboard

import (
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/agnivade/levenshtein"

	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/format"
	"github.com/buffos/go-datadash/internal/surface"
	"github.com/buffos/go-datadash/internal/tooltip"
)

// Box attributes.
const (
	attrPrefix  = "datadash-"
	attrType    = attrPrefix + "type"
	attrTitle   = attrPrefix + "title"
	attrContent = attrPrefix + "content"
	attrPre     = attrPrefix + "prefix"
	attrSuf     = attrPrefix + "suffix"
	attrFormat  = attrPrefix + "format"
	attrData    = attrPrefix + "data"
	attrColor   = attrPrefix + "color"
	attrWidth   = attrPrefix + "width"
	attrHeight  = attrPrefix + "height"
	attrID      = attrPrefix + "id"
	attrRefresh = attrPrefix + "refresh"
	attrTooltip = attrPrefix + "tooltip"

	dataInitial     = "data-initial-content"
	dataInitialized = "data-initialized"
	dataWidgetID    = "data-widget-id"
)

// refreshType marks boxes that only show the reload time.
const refreshType = "refresh"

// Widget is one discovered box.
type Widget struct {
	ID    string
	Index int
	// Type is the lowercased datadash-type attribute; Kind is set when it
	// names a chart kind.
	Type   string
	Kind   chart.Kind
	Known  bool
	Config chart.Config
	Data   []byte

	mu  sync.Mutex
	err error

	box     *goquery.Selection
	chart   *chart.Chart
	svg     *surface.SVG
	binding *tooltip.Binding
}

// Info is the JSON view of a widget.
type Info struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Chart    bool           `json:"chart"`
	Progress float64        `json:"progress"`
	Overlay  *chart.Overlay `json:"overlay,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Chart returns the chart engine, or nil for passthrough boxes.
func (w *Widget) Chart() *chart.Chart { return w.chart }

// Canvas reports whether the widget draws on a surface.
func (w *Widget) Canvas() bool { return w.Known && w.Kind.Canvas() }

// Markup is the SVG document of the last painted frame.
func (w *Widget) Markup() string {
	if w.chart == nil {
		return ""
	}
	return w.chart.Frame().Markup
}

// HitTest tests a point in surface coordinates against the last frame.
func (w *Widget) HitTest(x, y float64) (string, bool) {
	if w.chart == nil {
		return "", false
	}
	return w.chart.HitTest(x, y)
}

func (w *Widget) Info() Info {
	in := Info{
		ID:     w.ID,
		Type:   w.Type,
		Title:  w.Config.Title,
		Width:  w.Config.Width,
		Height: w.Config.Height,
		Chart:  w.Canvas(),
	}
	if w.chart != nil {
		f := w.chart.Frame()
		in.Progress = f.Progress
		in.Overlay = &f.Overlay
	}
	if err := w.Err(); err != nil {
		in.Error = err.Error()
	}
	return in
}

// Err is the data error of the last render pass, if any.
func (w *Widget) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Widget) setErr(err error) {
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
}

// readConfig turns the box attributes into a chart configuration.
func readConfig(box *goquery.Selection, width, height float64) (string, chart.Config, bool) {
	typ := strings.ToLower(strings.TrimSpace(box.AttrOr(attrType, "")))
	kind, known := chart.ParseKind(typ)
	cfg := chart.Config{
		Kind:     kind,
		Title:    box.AttrOr(attrTitle, ""),
		Content:  box.AttrOr(attrContent, ""),
		Prefix:   box.AttrOr(attrPre, ""),
		Suffix:   box.AttrOr(attrSuf, ""),
		Format:   format.ParseCode(box.AttrOr(attrFormat, string(format.Int))),
		Color:    box.AttrOr(attrColor, ""),
		Gradient: box.HasClass("gradient"),
		Width:    attrFloat(box, attrWidth, width),
		Height:   attrFloat(box, attrHeight, height),
	}
	return typ, cfg, known
}

func attrFloat(box *goquery.Selection, name string, fallback float64) float64 {
	s, ok := box.Attr(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "px")), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// suggest returns the known type closest to typ, if it is close enough to
// be a typo.
func suggest(typ string) (string, bool) {
	if typ == "" {
		return "", false
	}
	best, dist := "", -1
	candidates := append([]string{refreshType}, kindNames()...)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(typ, c)
		if dist < 0 || d < dist {
			best, dist = c, d
		}
	}
	if dist > 2 {
		return "", false
	}
	return best, true
}

func kindNames() []string {
	names := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		names[i] = k.String()
	}
	return names
}
