// Package screenshot saves full-page evidence shots of application
// outcomes, locally and optionally mirrored to S3.
package screenshot

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultDir is where evidence shots land when no directory is configured.
const DefaultDir = "data/apply_screenshots"

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// Capturer writes full-page PNGs named <tag>_<timestamp>.png. A nil
// Mirror keeps shots local only.
type Capturer struct {
	Dir    string
	Mirror *Mirror
}

// NewCapturer creates the output directory up front so a failed
// application never also fails on mkdir.
func NewCapturer(dir string, mirror *Mirror) (*Capturer, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating screenshot directory: %w", err)
	}
	return &Capturer{Dir: dir, Mirror: mirror}, nil
}

// Capture saves a full-page shot of the current state and returns the
// local path. Mirror failures are logged, not returned: the local file is
// the evidence that matters.
func (c *Capturer) Capture(page playwright.Page, tag string) (string, error) {
	name := Filename(tag, time.Now())
	path := filepath.Join(c.Dir, name)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("capturing screenshot: %w", err)
	}
	log.Printf("📸 Screenshot saved: %s", name)

	if c.Mirror != nil {
		if url, err := c.Mirror.Upload(path, name); err != nil {
			log.Printf("⚠️ Screenshot mirror failed: %v", err)
		} else {
			log.Printf("📸 Screenshot mirrored: %s", url)
		}
	}
	return path, nil
}

// Filename builds <slug>_<YYYYMMDD_HHMMSS>.png from an arbitrary tag.
func Filename(tag string, now time.Time) string {
	slug := unsafeChars.ReplaceAllString(strings.ToLower(tag), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "shot"
	}
	return fmt.Sprintf("%s_%s.png", slug, now.Format("20060102_150405"))
}
