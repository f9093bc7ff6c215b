// createImage.go
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"
)

func (a *app) snapshotCmd() *cobra.Command {
	var (
		out      string
		imgType  string
		selector string
	)
	cmd := &cobra.Command{
		Use:   "snapshot <page.html>",
		Short: "Render a page and screenshot it in a headless browser (png or jpg)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if imgType == "" {
				imgType = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			if imgType == "" {
				imgType = "png"
			}
			if imgType != "png" && imgType != "jpg" && imgType != "jpeg" {
				return fmt.Errorf("unsupported image format '%s'. Supported formats: png, jpg/jpeg", imgType)
			}

			page, err := a.loadPage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer page.Close()
			html, err := page.HTML()
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd, out)
			if err != nil {
				return err
			}
			if err := a.generateImage(cmd.Context(), html, selector, imgType, w); err != nil {
				closeOut()
				return fmt.Errorf("error generating %s: %w", imgType, err)
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&imgType, "format", "f", "", "Image format: png, jpg or jpeg (default: from -o, else png)")
	cmd.Flags().StringVar(&selector, "selector", ".datadash", "Element to capture; empty captures the whole page")
	return cmd
}

// generateImage loads html into a headless browser sized to the snapshot
// viewport and screenshots selector, or the full page.
func (a *app) generateImage(ctx context.Context, html, selector, imgType string, outputWriter io.Writer) error {
	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	log.Println("Created data URI for dashboard HTML.")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.WindowSize(a.cfg.Snapshot.Width, a.cfg.Snapshot.Height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelTimeout()

	var screenshotBuf []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(a.cfg.Snapshot.Width), int64(a.cfg.Snapshot.Height)),
		chromedp.Navigate(dataURI),
	}
	if selector != "" {
		tasks = append(tasks,
			chromedp.WaitVisible(selector, chromedp.ByQuery),
			chromedp.Screenshot(selector, &screenshotBuf, chromedp.ByQuery),
		)
	} else {
		tasks = append(tasks, chromedp.FullScreenshot(&screenshotBuf, 100))
	}

	log.Println("Running chromedp tasks (navigate and screenshot)...")
	if err := chromedp.Run(timeoutCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	log.Println("Chromedp tasks completed successfully.")

	if len(screenshotBuf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}
	return encodeScreenshot(screenshotBuf, imgType, a.cfg.Snapshot.Quality, outputWriter)
}

// encodeScreenshot writes a PNG screenshot as-is, or re-encodes it as JPEG.
func encodeScreenshot(buf []byte, imgType string, quality int, w io.Writer) error {
	switch imgType {
	case "png":
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case "jpg", "jpeg":
		img, err := png.Decode(bytes.NewReader(buf))
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", err)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("internal error: unsupported image format '%s'", imgType)
	}
	log.Printf("Successfully encoded %s image.", strings.ToUpper(imgType))
	return nil
}
