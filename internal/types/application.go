package types

import "time"

// ApplicationResult captures the outcome of one application attempt.
type ApplicationResult struct {
	Success        bool      `json:"success"`
	ATSType        string    `json:"ats_type"`
	Error          string    `json:"error,omitempty"`
	ScreenshotPath string    `json:"screenshot_path,omitempty"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// SessionStats accumulates counters over one agent session.
type SessionStats struct {
	Attempted      int `json:"attempted"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	UnsupportedATS int `json:"unsupported_ats"`
}

// RecordOutcome folds one application result into the session counters.
func (s *SessionStats) RecordOutcome(r *ApplicationResult) {
	if r.Success {
		s.Successful++
	} else {
		s.Failed++
	}
}
