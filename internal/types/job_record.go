// Package types provides type definitions for structured data shared across the apply-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Job status values as they appear in the tracker sheet.
const (
	StatusReady    = "Ready"
	StatusUnknown  = "unknown" // legacy rows written before the scraper set an explicit status
	StatusApplying = "Applying"
	StatusApplied  = "Applied"
	StatusFailed   = "Failed"
)

// JobRecord is one row of the tracker sheet: a scraped job plus the
// fit analysis the classification pipeline attached to it. The scraper
// and classifier are external systems; this struct is the contract.
type JobRecord struct {
	SheetRow        int         `json:"sheet_row"` // 1-based row in the tracker, header is row 1
	JobID           string      `json:"job_id"`
	Company         string      `json:"company"`
	Title           string      `json:"title"`
	JobURL          string      `json:"job_url"`
	Status          string      `json:"status"`
	PostedTime      string      `json:"posted_time"` // free text from the job board, e.g. "3 days ago"
	ResumePath      string      `json:"resume_path,omitempty"`
	CoverLetterPath string      `json:"cover_letter_path,omitempty"`
	Fit             FitAnalysis `json:"fit"`
}

// FitAnalysis is the classifier's verdict on a job, consumed here for
// prioritization and for grounding generated answers.
type FitAnalysis struct {
	Score      float64 `json:"score"` // 0-10
	WhyGoodFit string  `json:"why_good_fit,omitempty"`
}

// Eligible reports whether the row is waiting for an application attempt.
func (j *JobRecord) Eligible() bool {
	return j.Status == StatusReady || j.Status == StatusUnknown
}
