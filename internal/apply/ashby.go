package apply

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/jonathan/apply-agent/internal/answers"
	"github.com/jonathan/apply-agent/internal/ats"
	"github.com/jonathan/apply-agent/internal/driver"
	"github.com/jonathan/apply-agent/internal/fields"
	"github.com/jonathan/apply-agent/internal/screenshot"
	"github.com/jonathan/apply-agent/internal/types"
)

// completionWait bounds the in-place confirmation poll after a click
// that did not navigate.
const completionWait = 10 * time.Second

// AshbyFiller drives Ashby-hosted application forms end to end: contact
// fields, resume upload, screening questions, submission.
type AshbyFiller struct {
	profile   Profile
	questions *questionHandler
	shots     *screenshot.Capturer
}

// NewAshbyFiller wires the filler's collaborators.
func NewAshbyFiller(profile Profile, answerer *answers.Answerer, shots *screenshot.Capturer) *AshbyFiller {
	return &AshbyFiller{
		profile:   profile,
		questions: &questionHandler{answerer: answerer},
		shots:     shots,
	}
}

// Apply fills and submits the form on page. The result's Error explains
// a false Success; screenshots record both outcomes.
func (f *AshbyFiller) Apply(ctx context.Context, page playwright.Page, job types.JobRecord) types.ApplicationResult {
	log.Println("🎯 Applying via Ashby")

	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	page.WaitForTimeout(2000)

	fields.LogInventory(page)
	f.logFormErrors(page)

	filled := f.fillBasicInfo(page, job)
	log.Printf("📊 Form filling summary: %d fields successfully filled", filled)

	f.questions.HandleAll(ctx, page, job)

	d := driver.New()
	d.ValidateForm(page)
	// Let the form settle before going for the submit control.
	page.WaitForTimeout(1000)

	button, err := d.FindSubmitControl(page)
	if err != nil || button == nil {
		log.Println("❌ No submit button found with any selector")
		fields.LogInventory(page)
		shot := f.capture(page, "no_submit_btn_"+job.JobID)
		return types.ApplicationResult{Error: "no submit button found", ScreenshotPath: shot}
	}

	ready, reasons := d.Ready(page, button)
	if !ready {
		shot := f.capture(page, "submit_blocked_"+job.JobID)
		return types.ApplicationResult{
			Error:          blockedError(reasons),
			ScreenshotPath: shot,
		}
	}

	if driver.RecaptchaPresent(page) {
		if err := driver.SolveRecaptcha(page); err != nil {
			log.Printf("❌ reCAPTCHA handling error: %v", err)
		}
	}

	startURL := page.URL()
	changed := d.Submit(page, button)

	var outcome driver.Outcome
	if changed {
		outcome = d.ClassifyOutcome(page)
	} else {
		outcome = d.AwaitCompletion(page, startURL, completionWait)
		if !outcome.Succeeded() {
			outcome = d.ClassifyOutcome(page)
		}
	}

	if outcome.Succeeded() {
		shot := f.capture(page, "success_"+job.JobID)
		return types.ApplicationResult{Success: true, ScreenshotPath: shot}
	}

	shot := f.capture(page, "submission_failed_"+job.JobID)
	return types.ApplicationResult{
		Error:          failureError(outcome),
		ScreenshotPath: shot,
	}
}

// fillBasicInfo fills the contact fields and uploads the resume,
// returning how many landed.
func (f *AshbyFiller) fillBasicInfo(page playwright.Page, job types.JobRecord) int {
	filled := 0

	// Name and email are read back after filling; Ashby re-renders its
	// system fields and can drop a value mid-fill.
	if f.fillVerified(page, fields.RoleFullName, f.profile.FullName, "Name") {
		filled++
	}
	if f.fillVerified(page, fields.RoleEmail, f.profile.Email, "Email") {
		filled++
	}
	if f.fill(page, fields.RolePhone, f.profile.Phone, "Phone") {
		filled++
	}
	if f.fill(page, fields.RoleLinkedIn, f.profile.LinkedIn, "LinkedIn") {
		filled++
	}

	if f.profile.Website != "" {
		utm := UTMLink(f.profile.Website, string(ats.VendorAshby), job.Company, job.Title)
		if f.fill(page, fields.RolePortfolio, utm, "Portfolio") {
			log.Printf("✅ Portfolio field filled with UTM link")
			filled++
		}
	}

	if f.uploadResume(page, job.ResumePath) {
		filled++
	}
	return filled
}

func (f *AshbyFiller) fill(page playwright.Page, role fields.Role, value, name string) bool {
	if value == "" {
		return false
	}
	loc, err := fields.Resolve(page, ats.VendorAshby, role)
	if err != nil || loc == nil {
		log.Printf("⚠️ %s field not found", name)
		return false
	}

	if err := loc.ScrollIntoViewIfNeeded(); err != nil {
		log.Printf("⚠️ %s field not reachable: %v", name, err)
		return false
	}
	// Clear any prefill before writing.
	if err := loc.Fill(""); err != nil {
		log.Printf("⚠️ %s field could not be cleared: %v", name, err)
		return false
	}
	if err := loc.Fill(value); err != nil {
		log.Printf("⚠️ %s field could not be filled: %v", name, err)
		return false
	}
	log.Printf("✅ %s field filled", name)
	return true
}

func (f *AshbyFiller) fillVerified(page playwright.Page, role fields.Role, value, name string) bool {
	if !f.fill(page, role, value, name) {
		return false
	}
	loc, err := fields.Resolve(page, ats.VendorAshby, role)
	if err != nil || loc == nil {
		return false
	}
	got, err := loc.InputValue()
	if err != nil || got != value {
		log.Printf("⚠️ %s field validation failed: expected %q, got %q", name, value, got)
		return false
	}
	log.Printf("✅ %s field filled and validated", name)
	return true
}

func (f *AshbyFiller) uploadResume(page playwright.Page, resumePath string) bool {
	if resumePath == "" {
		return false
	}
	if _, err := os.Stat(resumePath); err != nil {
		log.Printf("⚠️ Resume file not found at %s", resumePath)
		return false
	}

	input, err := fields.Resolve(page, ats.VendorAshby, fields.RoleResume)
	if err != nil || input == nil {
		log.Println("⚠️ Resume upload input not found")
		return false
	}

	log.Printf("📄 Uploading resume from: %s", resumePath)
	if err := input.SetInputFiles(resumePath); err != nil {
		log.Printf("⚠️ Resume upload failed: %v", err)
		return false
	}
	page.WaitForTimeout(2000)

	// Ashby shows the uploaded file name once the upload lands.
	confirmed := page.Locator(`a:has-text(".pdf"), [class*="file"], [class*="upload"]`)
	if count, err := confirmed.Count(); err == nil && count > 0 {
		log.Println("✅ Resume upload validated")
		return true
	}
	log.Println("⚠️ Resume upload may have failed - no confirmation found")
	return false
}

func (f *AshbyFiller) logFormErrors(page playwright.Page) {
	errs := page.Locator(`[role="alert"], .error, .warning, [class*="error"]`)
	count, err := errs.Count()
	if err != nil || count == 0 {
		return
	}
	for i := 0; i < count; i++ {
		if text, err := errs.Nth(i).TextContent(); err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				log.Printf("⚠️ Form error detected: %s", trimmed)
			}
		}
	}
}

func (f *AshbyFiller) capture(page playwright.Page, tag string) string {
	if f.shots == nil {
		return ""
	}
	path, err := f.shots.Capture(page, tag)
	if err != nil {
		log.Printf("Screenshot error: %v", err)
		return ""
	}
	return path
}

func blockedError(reasons []string) string {
	if len(reasons) == 0 {
		return "submit button not ready for clicking"
	}
	return fmt.Sprintf("submit blocked: %s", strings.Join(reasons, "; "))
}

func failureError(outcome driver.Outcome) string {
	if len(outcome.Errors) == 0 {
		return "no submission success indicators found"
	}
	return strings.Join(outcome.Errors, "; ")
}
