// Package fetch - browser.go provides headless browser rendering for
// client-rendered boards. Ashby and Workday postings ship as empty
// shells over HTTP, so detection needs the rendered DOM.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider a
// plain HTTP fetch conclusive. Shorter pages are likely SPA shells.
const MinContentLength = 500

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// dismissBannerScript clicks the first consent button it can find.
// Matching by text happens here because :contains is not valid CSS.
const dismissBannerScript = `(() => {
	const byAttr = document.querySelector('button[id*="accept" i], button[class*="accept" i]');
	if (byAttr) { byAttr.click(); return true; }
	for (const b of document.querySelectorAll('button')) {
		const t = (b.textContent || '').trim().toLowerCase();
		if (t === 'ok' || t === 'accept' || t === 'accept all') { b.click(); return true; }
	}
	return false;
})()`

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

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

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Board scripts render the posting after load
		chromedp.Sleep(3*time.Second),
		// Try to dismiss cookie banners so the HTML carries the posting,
		// not a consent overlay - don't fail if there is none
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Evaluate(dismissBannerScript, nil).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}
