package apply

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/jonathan/apply-agent/internal/ats"
	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/notify"
	"github.com/jonathan/apply-agent/internal/observability"
	"github.com/jonathan/apply-agent/internal/schedule"
	"github.com/jonathan/apply-agent/internal/screenshot"
	"github.com/jonathan/apply-agent/internal/types"
)

// easyApplyATS marks LinkedIn's in-page flow, which has no external ATS
// form to hand off to and is not automated.
const easyApplyATS = "linkedin_easy"

// JobSource is the tracker surface the engine drives a cycle against.
type JobSource interface {
	ListJobs(ctx context.Context) ([]types.JobRecord, error)
	MarkApplying(ctx context.Context, row int) error
	RecordStatus(ctx context.Context, row int, status, atsType, errMsg string) error
	CountAppliedToday(ctx context.Context, now time.Time) (int, error)
}

// AttemptLog durably records attempts outside the sheet. Optional.
type AttemptLog interface {
	RecordAttempt(ctx context.Context, job types.JobRecord, result types.ApplicationResult) error
}

// EngineOptions wires an engine's collaborators.
type EngineOptions struct {
	Jobs        JobSource
	Fillers     Registry
	Gate        *Gate
	Notifier    *notify.Notifier
	Screenshots *screenshot.Capturer
	Attempts    AttemptLog
	Browser     browser.Options
	// DefaultResume is uploaded when a tracker row carries no tailored
	// resume of its own.
	DefaultResume string
	// Printer renders verbose job and outcome summaries. Nil disables them.
	Printer *observability.Printer
}

// Engine runs application cycles: gate, pick, drive, record.
type Engine struct {
	jobs          JobSource
	fillers       Registry
	gate          *Gate
	notifier      *notify.Notifier
	shots         *screenshot.Capturer
	attempts      AttemptLog
	browserOpts   browser.Options
	defaultResume string
	printer       *observability.Printer
	session       *browser.Session
	stats         types.SessionStats
}

// NewEngine builds an engine. The browser session starts lazily on the
// first cycle that actually has a job to apply to.
func NewEngine(opts EngineOptions) *Engine {
	return &Engine{
		jobs:          opts.Jobs,
		fillers:       opts.Fillers,
		gate:          opts.Gate,
		notifier:      opts.Notifier,
		shots:         opts.Screenshots,
		attempts:      opts.Attempts,
		browserOpts:   opts.Browser,
		defaultResume: opts.DefaultResume,
		printer:       opts.Printer,
	}
}

// Stats returns the session counters accumulated so far.
func (e *Engine) Stats() types.SessionStats {
	return e.stats
}

// Close shuts the browser session down and prints the final session
// summary. Continuous runs skip it so the window stays open for
// inspection.
func (e *Engine) Close() error {
	if e.printer != nil {
		e.printer.PrintStats(&e.stats)
	}
	if e.session == nil {
		return nil
	}
	return e.session.Close()
}

// RunCycle performs at most one application attempt: it checks the gate,
// picks the best eligible job, drives its form, and records the outcome
// everywhere it needs to land.
func (e *Engine) RunCycle(ctx context.Context) error {
	count, err := e.jobs.CountAppliedToday(ctx, time.Now())
	if err != nil {
		log.Printf("⚠️ Could not count today's applications: %v", err)
		count = 0
	}
	if ok, reason := e.gate.CanApplyNow(count); !ok {
		log.Printf("⏸️ Cannot apply: %s", reason)
		return nil
	}

	jobs, err := e.jobs.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("listing jobs: %w", err)
	}
	job, ok := NextJob(jobs)
	if !ok {
		log.Println("📭 No jobs ready to apply")
		return nil
	}
	if job.ResumePath == "" {
		job.ResumePath = e.defaultResume
	}

	log.Printf("🎯 Applying to: %s at %s", job.Title, job.Company)
	if e.printer != nil {
		e.printer.PrintQueue(jobs)
		e.printer.PrintJob(&job)
	}
	if err := e.jobs.MarkApplying(ctx, job.SheetRow); err != nil {
		log.Printf("Failed to update sheet: %v", err)
	}
	e.stats.Attempted++

	session, err := e.ensureSession()
	if err != nil {
		return err
	}
	page, err := session.NewPage()
	if err != nil {
		return err
	}

	result := e.applyToJob(ctx, session, page, job)
	log.Println("ℹ️ Keeping browser open for inspection after submit.")
	if e.printer != nil {
		e.printer.PrintResult(&result)
	}

	e.recordOutcome(ctx, job, result)
	return nil
}

// RunContinuous cycles until ctx is canceled, logging session stats
// every ten attempts.
func (e *Engine) RunContinuous(ctx context.Context, interval time.Duration) error {
	log.Printf("🚀 Starting auto-apply service (interval: %s)", interval)
	return schedule.Every(ctx, interval, "apply", func(ctx context.Context) error {
		if err := e.RunCycle(ctx); err != nil {
			return err
		}
		if e.stats.Attempted > 0 && e.stats.Attempted%10 == 0 {
			log.Printf("📊 Session stats: attempted=%d successful=%d failed=%d unsupported_ats=%d",
				e.stats.Attempted, e.stats.Successful, e.stats.Failed, e.stats.UnsupportedATS)
		}
		return nil
	})
}

func (e *Engine) ensureSession() (*browser.Session, error) {
	if e.session != nil {
		return e.session, nil
	}
	session, err := browser.NewSession(e.browserOpts)
	if err != nil {
		return nil, fmt.Errorf("starting browser session: %w", err)
	}
	e.session = session
	return session, nil
}

// applyToJob navigates to the listing and routes to the right filler,
// either directly when the listing already is the ATS form, or through
// the Apply button's new tab.
func (e *Engine) applyToJob(ctx context.Context, session *browser.Session, page playwright.Page, job types.JobRecord) types.ApplicationResult {
	result := types.ApplicationResult{
		ATSType:     string(ats.VendorUnknown),
		AttemptedAt: time.Now(),
	}

	log.Printf("📍 Navigating to: %s", job.JobURL)
	if _, err := page.Goto(job.JobURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		log.Printf("domcontentloaded failed: %v, trying load instead...", err)
		if _, err := page.Goto(job.JobURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(10000),
		}); err != nil {
			result.Error = fmt.Sprintf("navigation failed: %v", err)
			result.ScreenshotPath = e.capture(page, job.JobID)
			return result
		}
	}
	page.WaitForTimeout(3000)

	// Some tracker rows point straight at the ATS form instead of a
	// LinkedIn listing.
	content, _ := page.Content()
	if vendor := ats.Detect(page.URL(), content); vendor != ats.VendorUnknown {
		log.Printf("🔍 Detected ATS on initial page: %s", vendor)
		if filler, ok := e.fillers.Lookup(vendor); ok {
			result.ATSType = string(vendor)
			e.runFiller(ctx, filler, page, job, &result)
			return result
		}
	}

	easy := page.Locator(`button:has-text("Easy Apply")`).First()
	if count, err := easy.Count(); err == nil && count > 0 {
		result.ATSType = easyApplyATS
		result.Error = fmt.Sprintf("Unsupported ATS: %s", easyApplyATS)
		e.stats.UnsupportedATS++
		return result
	}

	applyBtn := page.Locator(`button:has-text("Apply")`).First()
	if count, err := applyBtn.Count(); err != nil || count == 0 {
		applyBtn = page.Locator(`a:has-text("Apply")`).First()
		if count, err := applyBtn.Count(); err != nil || count == 0 {
			shot := e.capture(page, "no_apply_btn_"+job.JobID)
			log.Printf("⚠️ Screenshot saved due to missing apply button: %s", shot)
			result.Error = "No apply button found"
			result.ScreenshotPath = shot
			return result
		}
	}

	formTab, err := session.ExpectNewTab(func() error { return applyBtn.Click() }, 10*time.Second)
	if err != nil {
		result.Error = fmt.Sprintf("apply click opened no form tab: %v", err)
		result.ScreenshotPath = e.capture(page, job.JobID)
		return result
	}
	formTab.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	formTab.WaitForTimeout(3000)

	formContent, _ := formTab.Content()
	vendor := ats.Detect(formTab.URL(), formContent)
	log.Printf("🔍 Detected ATS: %s", vendor)
	result.ATSType = string(vendor)

	if filler, ok := e.fillers.Lookup(vendor); ok {
		e.runFiller(ctx, filler, formTab, job, &result)
	} else {
		result.Error = fmt.Sprintf("Unsupported ATS: %s", vendor)
		e.stats.UnsupportedATS++
	}

	if !result.Success && result.ScreenshotPath == "" {
		result.ScreenshotPath = e.capture(formTab, job.JobID)
	}

	if err := formTab.Close(); err != nil {
		log.Printf("⚠️ Could not close form tab: %v", err)
	}
	return result
}

func (e *Engine) runFiller(ctx context.Context, filler Filler, page playwright.Page, job types.JobRecord, result *types.ApplicationResult) {
	r := filler.Apply(ctx, page, job)
	result.Success = r.Success
	result.Error = r.Error
	result.ScreenshotPath = r.ScreenshotPath
}

func (e *Engine) recordOutcome(ctx context.Context, job types.JobRecord, result types.ApplicationResult) {
	e.stats.RecordOutcome(&result)

	if result.Success {
		if err := e.jobs.RecordStatus(ctx, job.SheetRow, types.StatusApplied, result.ATSType, ""); err != nil {
			log.Printf("Failed to update sheet: %v", err)
		}
		log.Println("✅ Application successful!")
	} else {
		if err := e.jobs.RecordStatus(ctx, job.SheetRow, types.StatusFailed, result.ATSType, result.Error); err != nil {
			log.Printf("Failed to update sheet: %v", err)
		}
		if err := e.notifier.Send(ctx, notify.ApplicationFailed(job, result.ATSType, result.Error)); err != nil {
			log.Printf("Telegram notification error: %v", err)
		}
	}

	if e.attempts != nil {
		if err := e.attempts.RecordAttempt(ctx, job, result); err != nil {
			log.Printf("Failed to record attempt: %v", err)
		}
	}
}

func (e *Engine) capture(page playwright.Page, tag string) string {
	if e.shots == nil {
		return ""
	}
	path, err := e.shots.Capture(page, tag)
	if err != nil {
		log.Printf("Screenshot error: %v", err)
		return ""
	}
	return path
}
