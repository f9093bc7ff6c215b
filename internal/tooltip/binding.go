package tooltip

// HitTester maps surface-local coordinates to tooltip text.
type HitTester interface {
	HitTest(x, y float64) (string, bool)
}

// Binding connects one chart surface to the shared tooltip.
type Binding struct {
	tip *Tooltip
	hit HitTester
}

// Bind returns the pointer handler of a chart.
func (t *Tooltip) Bind(hit HitTester) *Binding {
	return &Binding{tip: t, hit: hit}
}

// Move handles a pointer move. (x, y) is the pointer relative to the
// surface, (pageX, pageY) the same point in page coordinates.
func (b *Binding) Move(x, y, pageX, pageY float64) (string, bool) {
	b.tip.CancelHide()
	text, ok := b.hit.HitTest(x, y)
	if ok && text != "" {
		b.tip.Show(text, pageX, pageY)
		return text, true
	}
	b.tip.Hide()
	return "", false
}

// Leave handles the pointer leaving the surface: the tooltip hides after
// the debounce delay.
func (b *Binding) Leave() {
	b.tip.HideAfter(b.tip.HideDelay())
}

// Static shows a fixed text for as long as the pointer is over an element.
type Static struct {
	tip  *Tooltip
	Text string
}

// BindStatic returns the handler of an element with a fixed tooltip.
func (t *Tooltip) BindStatic(text string) *Static {
	return &Static{tip: t, Text: text}
}

// Enter and Move show the text at the pointer.
func (s *Static) Enter(pageX, pageY float64) { s.tip.Show(s.Text, pageX, pageY) }
func (s *Static) Move(pageX, pageY float64) { s.tip.Show(s.Text, pageX, pageY) }

// Leave hides at once.
func (s *Static) Leave() { s.tip.Hide() }
