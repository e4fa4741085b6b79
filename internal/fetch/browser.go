// Package fetch - browser.go provides headless browser rendering for SPA job boards.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/apply-assistant/internal/logging"
)

// DefaultBrowserTimeout bounds a single headless render.
const DefaultBrowserTimeout = 30 * time.Second

// expandDescriptionJS clicks a "show more" toggle if the page has one.
const expandDescriptionJS = `(() => {
	const b = document.querySelector('button.show-more-less-html__button, button[aria-label*="more"]');
	if (b) { b.click(); return true; }
	return false;
})()`

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, log logging.Logger) (string, error) {
	if log == nil {
		log = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	log.Debug("starting headless browser", logging.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var (
		html     string
		expanded bool
	)

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Job boards render the description after the initial load.
		chromedp.Sleep(3*time.Second),
		// "Show more" toggles hide most of the description on LinkedIn.
		chromedp.Evaluate(expandDescriptionJS, &expanded),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.Debug("rendered page",
		logging.String("url", url),
		logging.Int("bytes", len(html)),
		logging.Bool("expanded", expanded))

	return html, nil
}

// browserRenderer adapts WithBrowser to the Renderer signature.
func browserRenderer(log logging.Logger, timeout time.Duration) Renderer {
	return func(ctx context.Context, url string) (string, error) {
		html, err := WithBrowser(ctx, url, timeout, log)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", url, err)
		}
		return html, nil
	}
}
