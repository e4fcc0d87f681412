package driver

import (
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Outcome is the classified result of a submission attempt.
type Outcome struct {
	State  State
	Errors []string
}

// Succeeded reports whether the ATS confirmed the application.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// urlSuccessTokens are confirmation words ATS platforms put in their
// post-submission URLs.
var urlSuccessTokens = []string{"thank", "success", "confirmation", "submitted"}

// successSelectors match on-page confirmation: visible phrasing first,
// then the class markers Ashby and Greenhouse render confirmations with.
var successSelectors = []string{
	"text=thank you",
	"text=received",
	"text=submitted",
	"text=application sent",
	"text=your application was successfully submitted",
	`[class*="success"]`,
	`[class*="confirmation"]`,
}

// errorSelectors match visible rejection or validation feedback.
var errorSelectors = []string{
	`[role="alert"]`,
	".error",
	`[class*="error"]`,
}

// URLIndicatesSuccess reports whether a URL carries a confirmation token.
func URLIndicatesSuccess(url string) bool {
	lower := strings.ToLower(url)
	for _, token := range urlSuccessTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// ClassifyOutcome decides whether the submission landed. The URL is
// checked first, then on-page confirmation; only when neither shows up
// does the page get scanned for error feedback to report.
func (d *Driver) ClassifyOutcome(page playwright.Page) Outcome {
	finalURL := page.URL()
	log.Printf("🌐 Final URL: %s", finalURL)

	if URLIndicatesSuccess(finalURL) || hasAny(page, successSelectors) {
		log.Println("✅ Application submission detected - SUCCESS!")
		d.state = StateSucceeded
		return Outcome{State: StateSucceeded}
	}

	log.Println("⚠️ No submission success indicators found")
	errors := visibleErrors(page)
	if len(errors) > 0 {
		log.Println("❌ Form submission errors found:")
		for _, text := range errors {
			log.Printf("   - %s", text)
		}
	}
	d.state = StateFailed
	return Outcome{State: StateFailed, Errors: errors}
}

// AwaitCompletion polls for an outcome after a click that did not move
// the URL: slow ATS frontends submit via XHR and confirm in place. A URL
// change or confirmation marker succeeds, visible errors fail, and the
// deadline fails with no error detail.
func (d *Driver) AwaitCompletion(page playwright.Page, startURL string, timeout time.Duration) Outcome {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if url := page.URL(); url != startURL {
			log.Printf("✅ URL changed: %s → %s", startURL, url)
			d.state = StateSucceeded
			return Outcome{State: StateSucceeded}
		}
		if hasAny(page, successSelectors) {
			d.state = StateSucceeded
			return Outcome{State: StateSucceeded}
		}
		if errors := visibleErrors(page); len(errors) > 0 {
			log.Printf("⚠️ Error indicator found: %s", errors[0])
			d.state = StateFailed
			return Outcome{State: StateFailed, Errors: errors}
		}
		page.WaitForTimeout(500)
	}

	log.Println("⏳ Submission timeout reached")
	d.state = StateFailed
	return Outcome{State: StateFailed, Errors: []string{"submission timeout reached"}}
}

func hasAny(page playwright.Page, selectors []string) bool {
	for _, sel := range selectors {
		if count, err := page.Locator(sel).First().Count(); err == nil && count > 0 {
			log.Printf("✅ Success indicator found: %s", sel)
			return true
		}
	}
	return false
}

func visibleErrors(page playwright.Page) []string {
	var texts []string
	for _, sel := range errorSelectors {
		loc := page.Locator(sel)
		count, err := loc.Count()
		if err != nil {
			continue
		}
		for i := 0; i < count; i++ {
			if text, err := loc.Nth(i).TextContent(); err == nil {
				if trimmed := strings.TrimSpace(text); trimmed != "" {
					texts = append(texts, trimmed)
				}
			}
		}
	}
	return texts
}
