// Package browser owns the Playwright lifecycle for application runs: a
// persistent headful context so ATS logins survive between cycles, and a
// file lock so two agents never drive the same profile at once.
package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/playwright-community/playwright-go"
)

const (
	defaultProfileDir = ".pw-session-apply"
	viewportWidth     = 1280
	viewportHeight    = 800
)

// Options configures a browser session. Zero values fall back to the
// defaults used in production: headful WebKit with the shared profile
// under the home directory.
type Options struct {
	// UserDataDir is the persistent profile directory. Empty means
	// ~/.pw-session-apply.
	UserDataDir string
	// Headless runs the browser without a window. Applications are
	// normally driven headful so a human can take over mid-form.
	Headless bool
}

// Session wraps a persistent browser context plus the process-level lock
// guarding its profile directory.
type Session struct {
	pw      *playwright.Playwright
	context playwright.BrowserContext
	lock    *flock.Flock
}

// NewSession acquires the profile lock and launches a persistent context.
// WebKit is preferred because the scraping profile was built there;
// Chromium is the fallback when the WebKit driver is unavailable.
func NewSession(opts Options) (*Session, error) {
	dir := opts.UserDataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, defaultProfileDir)
	}

	lock := flock.New(dir + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring profile lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("profile %s is in use by another apply run", dir)
	}

	pw, err := playwright.Run()
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(opts.Headless),
		Viewport: &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	}

	context, err := pw.WebKit.LaunchPersistentContext(dir, launchOpts)
	if err != nil {
		log.Printf("⚠️ WebKit persistent context failed: %v, falling back to Chromium", err)
		context, err = pw.Chromium.LaunchPersistentContext(dir, launchOpts)
		if err != nil {
			pw.Stop()
			lock.Unlock()
			return nil, fmt.Errorf("launching persistent context: %w", err)
		}
	}
	log.Println("🖥️ Browser launched in headful mode")

	return &Session{pw: pw, context: context, lock: lock}, nil
}

// NewPage opens a fresh tab in the persistent context.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return page, nil
}

// ExpectNewTab runs trigger and returns the tab it opened. ATS apply
// buttons open the form in a new tab; the caller drives that tab and
// keeps the job listing tab untouched.
func (s *Session) ExpectNewTab(trigger func() error, timeout time.Duration) (playwright.Page, error) {
	page, err := s.context.ExpectPage(trigger, playwright.BrowserContextExpectPageOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for new tab: %w", err)
	}
	return page, nil
}

// Close shuts the context down and releases the profile lock. Runs that
// want the window left open for manual review simply skip calling it.
func (s *Session) Close() error {
	var firstErr error
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			firstErr = err
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
