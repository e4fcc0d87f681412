// Package fetch retrieves job pages over plain HTTP, with a headless
// browser fallback for ATS boards that render entirely client side.
// Detection diagnostics use it to see the same markup the agent would.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ApplyAgent/1.0)"

// maxBodyBytes caps how much of a response is read. Job pages are far
// smaller; the cap guards against a board streaming garbage.
const maxBodyBytes = 4 << 20

// ErrBlocked means the board refused the plain HTTP request. LinkedIn
// answers bot-looking traffic with status 999, most others with 403;
// the browser fetch usually still gets through.
var ErrBlocked = errors.New("board blocked the request")

// ErrGone means the posting has been taken down.
var ErrGone = errors.New("posting no longer exists")

// Page is one fetched job page.
type Page struct {
	URL        string
	HTML       string
	StatusCode int
}

// URL retrieves a job page over plain HTTP. Non-2xx statuses come back
// as errors, classified where the status says something useful about
// the posting itself.
func URL(ctx context.Context, urlStr string) (*Page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", urlStr, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html")

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", urlStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", urlStr, err)
	}

	page := &Page{URL: urlStr, HTML: string(body), StatusCode: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusOK:
		return page, nil
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == 999:
		return page, fmt.Errorf("%s: %w", urlStr, ErrBlocked)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return page, fmt.Errorf("%s: %w", urlStr, ErrGone)
	default:
		return page, fmt.Errorf("%s: HTTP status %d", urlStr, resp.StatusCode)
	}
}

// noiseSelector matches chrome that never carries posting content.
var noiseSelector = strings.Join([]string{
	"nav", "footer", "header", "script", "style", "noscript",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup",
}, ", ")

// ExtractMainText parses HTML and returns the posting's body text. The
// first matching content selector wins; a page matching none falls back
// to its whole body, which is usually enough for the length heuristic.
func ExtractMainText(html string, contentSelectors []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if match := doc.Find(selector); match.Length() > 0 {
			content = match.First()
			break
		}
	}

	return collapseLines(content.Text()), nil
}

// JobPostingSelectors returns selectors covering where the major ATS
// boards put the posting body.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// collapseLines trims every line and drops the empty ones, which is
// what goquery's Text() output needs after element removal.
func collapseLines(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
