// Package driver takes a filled application form through submission: it
// finds the submit control, escalates through click strategies until the
// page reacts, and classifies what the ATS did with the application.
package driver

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// State tracks how far a submission attempt has progressed.
type State string

const (
	// StateFilled means the form is filled but not yet checked
	StateFilled State = "filled"
	// StateValidated means the pre-submission field scan ran
	StateValidated State = "validated"
	// StateSubmitting means a click strategy has fired
	StateSubmitting State = "submitting"
	// StateSucceeded means the ATS confirmed the application
	StateSucceeded State = "succeeded"
	// StateFailed means no confirmation appeared
	StateFailed State = "failed"
)

// submitSelectors is the probe order for the submit control, most
// specific first so "Submit Application" beats a bare type=submit.
var submitSelectors = []string{
	`button:has-text("Submit Application")`,
	`button[type="submit"]`,
	`input[type="submit"]`,
	`button:has-text("Submit")`,
	`[role="button"]:has-text("Submit")`,
}

// clicker is the slice of locator behavior the click ladder needs.
type clicker interface {
	click() error
	forceClick() error
	scriptClick() error
	doubleClick() error
}

// locatorClicker adapts a live locator to the ladder.
type locatorClicker struct {
	loc playwright.Locator
}

func (c locatorClicker) click() error {
	return c.loc.Click()
}

func (c locatorClicker) forceClick() error {
	return c.loc.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
}

func (c locatorClicker) scriptClick() error {
	_, err := c.loc.Evaluate("element => element.click()", nil)
	return err
}

func (c locatorClicker) doubleClick() error {
	return c.loc.Dblclick()
}

type strategy struct {
	name  string
	click func(clicker) error
}

// ladder is the escalation order. Normal clicks fail on overlays, force
// clicks fail on detached handles, script clicks bypass hit testing
// entirely, and a double click has unstuck at least one React form.
var ladder = []strategy{
	{"normal click", clicker.click},
	{"force click", clicker.forceClick},
	{"script click", clicker.scriptClick},
	{"double click", clicker.doubleClick},
}

// Driver is a single submission attempt's state machine.
type Driver struct {
	state  State
	settle time.Duration
}

// New starts an attempt in the filled state with the production settle
// period between click strategies.
func New() *Driver {
	return &Driver{state: StateFilled, settle: 3 * time.Second}
}

// State reports the attempt's current stage.
func (d *Driver) State() State {
	return d.state
}

// ValidateForm scans for fields the ATS has flagged as invalid and
// returns their names. Advisory only: some ATS frontends mark untouched
// optional fields invalid, so a non-empty result never aborts the run.
func (d *Driver) ValidateForm(page playwright.Page) []string {
	flagged := page.Locator(`[aria-invalid="true"], .required.error, [class*="required"][class*="error"]`)
	count, err := flagged.Count()
	if err != nil || count == 0 {
		d.state = StateValidated
		return nil
	}

	log.Printf("⚠️ Found %d required field errors", count)
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		field := flagged.Nth(i)
		name, _ := field.GetAttribute("name")
		if name == "" {
			name, _ = field.GetAttribute("id")
		}
		if name == "" {
			name = "unknown"
		}
		log.Printf("   - Required field error: %s", name)
		names = append(names, name)
	}
	d.state = StateValidated
	return names
}

// FindSubmitControl returns the first matching submit control, or nil
// when the form has none visible.
func (d *Driver) FindSubmitControl(page playwright.Page) (playwright.Locator, error) {
	for _, sel := range submitSelectors {
		loc := page.Locator(sel).First()
		count, err := loc.Count()
		if err != nil {
			return nil, fmt.Errorf("probing submit control %q: %w", sel, err)
		}
		if count > 0 {
			text, _ := loc.TextContent()
			log.Printf("🔍 Found submit button with selector '%s': '%s'", sel, text)
			return loc, nil
		}
	}
	return nil, nil
}

// Ready checks that the submit control can actually be clicked. When it
// cannot, the visible validation errors come back as the reason.
func (d *Driver) Ready(page playwright.Page, button playwright.Locator) (bool, []string) {
	if err := button.ScrollIntoViewIfNeeded(); err != nil {
		log.Printf("⚠️ Could not scroll submit button into view: %v", err)
	}

	visible, _ := button.IsVisible()
	enabled, _ := button.IsEnabled()
	disabled, _ := button.GetAttribute("disabled")
	log.Printf("🔍 Submit button state: visible=%t, enabled=%t, disabled=%q", visible, enabled, disabled)

	if visible && enabled && disabled == "" {
		return true, nil
	}

	log.Println("⚠️ Submit button not ready for clicking")
	var reasons []string
	flagged := page.Locator(`[class*="error"], [aria-invalid="true"]`)
	if count, err := flagged.Count(); err == nil && count > 0 {
		log.Println("🚫 Form has validation errors:")
		for i := 0; i < count; i++ {
			if text, err := flagged.Nth(i).TextContent(); err == nil && text != "" {
				log.Printf("   - %s", text)
				reasons = append(reasons, text)
			}
		}
	}
	return false, reasons
}

// Submit walks the click ladder until the page navigates away from the
// form. Returns whether the URL moved; confirmation still needs
// ClassifyOutcome because some ATS flows confirm in place.
func (d *Driver) Submit(page playwright.Page, button playwright.Locator) bool {
	d.state = StateSubmitting
	startURL := page.URL()
	log.Printf("📍 Pre-submission URL: %s", startURL)

	settle := func() { page.WaitForTimeout(float64(d.settle.Milliseconds())) }
	return runLadder(locatorClicker{loc: button}, startURL, page.URL, settle)
}

// runLadder fires strategies in order, settling after each attempt and
// stopping as soon as the page leaves startURL. A strategy that errors
// moves straight to the next one without settling.
func runLadder(button clicker, startURL string, currentURL func() string, settle func()) bool {
	for _, s := range ladder {
		log.Printf("🖱️ Attempting %s on submit button...", s.name)
		if err := s.click(button); err != nil {
			log.Printf("⚠️ %s failed: %v", s.name, err)
			continue
		}
		settle()

		url := currentURL()
		log.Printf("📍 URL after %s: %s", s.name, url)
		if url != startURL {
			log.Printf("✅ URL changed after %s", s.name)
			return true
		}
		log.Printf("⚠️ URL unchanged after %s", s.name)
	}
	return false
}
