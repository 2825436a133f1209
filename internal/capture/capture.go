// Package capture screenshots rendered scene pages with headless Chrome.
package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type Options struct {
	Width  int64
	Height int64
	// Settle is how long to wait after load for the page's scripts to draw.
	Settle  time.Duration
	Timeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:   1280,
		Height:  800,
		Settle:  time.Second,
		Timeout: 30 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Settle < 0 {
		o.Settle = d.Settle
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	return o
}

// FileURL turns a local path into an absolute file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// PNG loads target (a URL or a local file path) and returns a PNG of the page.
func PNG(ctx context.Context, target string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	if u, err := url.Parse(target); err != nil || u.Scheme == "" {
		resolved, err := FileURL(target)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
		}
		target = resolved
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	browserCtx, cancel := chromedp.NewContext(timeoutCtx)
	defer cancel()

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(opts.Width, opts.Height),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(opts.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", target, err)
	}
	return shot, nil
}

// ToFile captures target and writes the PNG to out.
func ToFile(ctx context.Context, target, out string, opts Options) error {
	shot, err := PNG(ctx, target, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, shot, 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot: %w", err)
	}
	return nil
}
