// inspect.go
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/buffos/go-datadash/internal/dashboard"
)

var (
	colorHeader = lipgloss.Color("#89b4fa")
	colorMuted  = lipgloss.Color("#7f849c")
	colorOK     = lipgloss.Color("#a6e3a1")
	colorWarn   = lipgloss.Color("#f9e2af")
	colorError  = lipgloss.Color("#f38ba8")
)

type column struct {
	title string
	width int
}

var inspectColumns = []column{
	{"ID", 12}, {"TYPE", 8}, {"TITLE", 20}, {"SIZE", 9}, {"STATUS", 0},
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <page.html>",
		Short: "List the widget boxes of a page and how they render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.loadPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()
			fmt.Fprint(cmd.OutOrStdout(), inspectTable(page))
			return nil
		},
	}
}

func cell(text string, width int, style lipgloss.Style) string {
	if width == 0 {
		return style.Render(text)
	}
	if len([]rune(text)) > width-1 {
		text = string([]rune(text)[:width-2]) + "…"
	}
	return style.Width(width).Render(text)
}

// inspectTable renders one row per widget, with the legend swatches of
// pie, donut and radar charts on the lines below their row.
func inspectTable(page *dashboard.Page) string {
	var b strings.Builder
	head := lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	for _, c := range inspectColumns {
		b.WriteString(cell(c.title, c.width, head))
	}
	b.WriteString("\n")

	plain := lipgloss.NewStyle()
	muted := lipgloss.NewStyle().Foreground(colorMuted)
	for _, w := range page.Widgets() {
		in := w.Info()
		status, style := widgetStatus(w)
		b.WriteString(cell(in.ID, inspectColumns[0].width, plain))
		b.WriteString(cell(in.Type, inspectColumns[1].width, plain))
		b.WriteString(cell(in.Title, inspectColumns[2].width, plain))
		b.WriteString(cell(fmt.Sprintf("%.0fx%.0f", in.Width, in.Height), inspectColumns[3].width, muted))
		b.WriteString(cell(status, 0, style))
		b.WriteString("\n")

		if in.Overlay == nil {
			continue
		}
		for _, it := range in.Overlay.Legend {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render("■")
			fmt.Fprintf(&b, "%s%s %s %s\n", strings.Repeat(" ", inspectColumns[0].width), swatch, it.Label, muted.Render(it.Value))
		}
	}
	return b.String()
}

func widgetStatus(w *dashboard.Widget) (string, lipgloss.Style) {
	switch {
	case w.Err() != nil:
		return w.Err().Error(), lipgloss.NewStyle().Foreground(colorError)
	case w.Chart() == nil && w.Type == "refresh":
		return "refresh", lipgloss.NewStyle().Foreground(colorMuted)
	case w.Chart() == nil:
		return "passthrough", lipgloss.NewStyle().Foreground(colorWarn)
	case !w.Canvas():
		return "text " + w.Chart().Overlay().Text, lipgloss.NewStyle().Foreground(colorOK)
	}
	return "ok", lipgloss.NewStyle().Foreground(colorOK)
}
