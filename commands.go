// commands.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/dashboard"
	"github.com/buffos/go-datadash/internal/format"
	"github.com/buffos/go-datadash/internal/server"
)

// loadPage reads a dashboard file and renders it settled.
func (a *app) loadPage(ctx context.Context, path string) (*dashboard.Page, error) {
	log.Printf("Reading page file: %s", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading page file '%s': %w", path, err)
	}
	page, err := dashboard.LoadBytes(src, a.cfg.PageOptions(a.logger)...)
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d widget boxes.", len(page.Widgets()))
	if err := page.Render(ctx, nil); err != nil {
		page.Close()
		return nil, err
	}
	return page, nil
}

func (a *app) renderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render <page.html>",
		Short: "Render every widget of a page and write the resulting HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.loadPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()

			w, closeOut, err := openOutput(cmd, out)
			if err != nil {
				return err
			}
			if err := page.WriteHTML(w); err != nil {
				closeOut()
				return fmt.Errorf("failed to write HTML output: %w", err)
			}
			log.Println("Successfully generated HTML output.")
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func (a *app) framesCmd() *cobra.Command {
	var (
		widgetID string
		outDir   string
		kind     string
		fps      int
	)
	cmd := &cobra.Command{
		Use:   "frames <page.html>",
		Short: "Export every animation frame of the page's charts as SVG or PNG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind = strings.ToLower(kind)
			if kind != "svg" && kind != "png" {
				return fmt.Errorf("unsupported frame format '%s'. Supported formats: svg, png", kind)
			}
			if fps <= 0 {
				fps = a.cfg.Animation.FPS
			}
			log.Printf("Reading page file: %s", args[0])
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading page file '%s': %w", args[0], err)
			}
			// one chart at a time keeps the frame callbacks sequential
			opts := append(a.cfg.PageOptions(a.logger), dashboard.WithConcurrency(1))
			page, err := dashboard.LoadBytes(src, opts...)
			if err != nil {
				return err
			}
			defer page.Close()
			if _, ok := page.Widget(widgetID); widgetID != "" && !ok {
				return fmt.Errorf("no widget %q in %s", widgetID, args[0])
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("error creating output directory '%s': %w", outDir, err)
			}

			var writeErr error
			total := 0
			for _, w := range page.Widgets() {
				if !w.Canvas() || (widgetID != "" && w.ID != widgetID) {
					continue
				}
				w := w
				n := 0
				w.OnFrame(func(chart.Frame) {
					name := filepath.Join(outDir, fmt.Sprintf("%s-%03d.%s", w.ID, n, kind))
					n++
					total++
					if err := writeFrame(w, kind, name); err != nil && writeErr == nil {
						writeErr = err
					}
				})
			}

			drv := anim.NewVirtual(fps)
			log.Printf("Exporting %s frames at %d fps (%d per chart).", kind, fps, len(drv.Steps(a.cfg.Animation.Duration)))
			if err := page.Render(cmd.Context(), drv); err != nil {
				return err
			}
			if writeErr != nil {
				return writeErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", total, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&widgetID, "widget", "w", "", "Only export this widget id")
	cmd.Flags().StringVarP(&outDir, "out", "d", "frames", "Output directory")
	cmd.Flags().StringVarP(&kind, "format", "f", "svg", "Frame format: svg or png")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (default: animation.fps)")
	return cmd
}

func writeFrame(w *dashboard.Widget, kind, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("error creating frame file '%s': %w", name, err)
	}
	defer f.Close()
	if kind == "png" {
		return w.WritePNG(f)
	}
	svg, err := w.SVG()
	if err != nil {
		return err
	}
	_, err = f.WriteString(svg)
	return err
}

func (a *app) probeCmd() *cobra.Command {
	var pageX, pageY float64
	cmd := &cobra.Command{
		Use:   "probe <page.html> <widget> <x> <y>",
		Short: "Hit-test a point on a settled chart and show the tooltip it would get",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[2], err)
			}
			y, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[3], err)
			}
			page, err := a.loadPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()

			if !cmd.Flags().Changed("page-x") {
				pageX = x
			}
			if !cmd.Flags().Changed("page-y") {
				pageY = y
			}
			text, ok, err := page.PointerMove(args[1], x, y, pageX, pageY)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "no match")
				return nil
			}
			st := page.Tooltip().State()
			fmt.Fprintf(out, "%s (tooltip at %.0f, %.0f)\n", text, st.Left, st.Top)
			return nil
		},
	}
	cmd.Flags().Float64Var(&pageX, "page-x", 0, "Pointer x on the page (default: x)")
	cmd.Flags().Float64Var(&pageY, "page-y", 0, "Pointer y on the page (default: y)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <page.html>",
		Short: "Serve a dashboard live with streamed animation and tooltips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading page file '%s': %w", args[0], err)
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv, err := server.New(a.cfg, src, a.logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", args[0], addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")
	return cmd
}

func formatCmd() *cobra.Command {
	var code, prefix, suffix, date string
	cmd := &cobra.Command{
		Use:   "format <value>",
		Short: "Parse a value and format it with a format code",
		Long: "Parse a value the way widget attributes are parsed and print it formatted.\n" +
			"Codes: " + strings.Join(codeNames(), ", ") + "\n" +
			"With --date the value is read as a date and printed with the given pattern\n" +
			"(dd/mm/yyyy, mm/dd/yyyy or yyyy-mm-dd).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("date") {
				t, ok := format.ParseDate(args[0])
				if !ok {
					return fmt.Errorf("'%s' is not a date", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), prefix+format.FormatDate(t, date)+suffix)
				return nil
			}
			c := format.ParseCode(code)
			v := format.ParseValue(format.String(args[0]), c)
			fmt.Fprintln(cmd.OutOrStdout(), format.FormatValue(v, c, prefix, suffix))
			return nil
		},
	}
	cmd.Flags().StringVarP(&code, "code", "c", string(format.Int), "Format code")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Text before the number")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Text after the number")
	cmd.Flags().StringVar(&date, "date", "", "Read the value as a date and print it with this pattern")
	return cmd
}

func codeNames() []string {
	names := make([]string, len(format.Codes))
	for i, c := range format.Codes {
		names[i] = string(c)
	}
	return names
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "datadash", version)
		},
	}
}
