package dashboard

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/buffos/go-datadash/internal/tooltip"
)

// StaticTarget is an element with a fixed datadash-tooltip text.
type StaticTarget struct {
	Index int
	Text  string
	*tooltip.Static
}

func (p *Page) discoverStatics() {
	p.doc.Find("[" + attrTooltip + "]").Each(func(i int, el *goquery.Selection) {
		text := el.AttrOr(attrTooltip, "")
		el.SetAttr("data-tooltip-index", fmt.Sprint(i))
		p.statics = append(p.statics, &StaticTarget{Index: i, Text: text, Static: p.tip.BindStatic(text)})
	})
}

// Statics returns the static tooltip targets in document order.
func (p *Page) Statics() []*StaticTarget {
	return append([]*StaticTarget(nil), p.statics...)
}

// Static returns the i-th static tooltip target.
func (p *Page) Static(i int) (*StaticTarget, bool) {
	if i < 0 || i >= len(p.statics) {
		return nil, false
	}
	return p.statics[i], true
}

func (p *Page) binding(id string) (*tooltip.Binding, error) {
	w, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("no widget %q", id)
	}
	if w.binding == nil {
		return nil, fmt.Errorf("widget %q has no chart surface", id)
	}
	return w.binding, nil
}

// PointerMove feeds a pointer move over a chart. (x, y) is relative to the
// chart surface, (pageX, pageY) is the same point on the page.
func (p *Page) PointerMove(id string, x, y, pageX, pageY float64) (string, bool, error) {
	b, err := p.binding(id)
	if err != nil {
		return "", false, err
	}
	text, ok := b.Move(x, y, pageX, pageY)
	return text, ok, nil
}

// PointerLeave feeds the pointer leaving a chart.
func (p *Page) PointerLeave(id string) error {
	b, err := p.binding(id)
	if err != nil {
		return err
	}
	b.Leave()
	return nil
}

// SetViewport updates the window the tooltip keeps inside.
func (p *Page) SetViewport(vp tooltip.Viewport) {
	p.tip.SetViewport(vp)
}
