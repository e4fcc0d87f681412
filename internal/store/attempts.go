package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/apply-agent/internal/types"
)

// Attempt is one application attempt record
type Attempt struct {
	ID             uuid.UUID `json:"id"`
	JobID          string    `json:"job_id"`
	Company        string    `json:"company"`
	Title          string    `json:"title"`
	JobURL         string    `json:"job_url"`
	ATSType        string    `json:"ats_type"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	ScreenshotPath string    `json:"screenshot_path,omitempty"`
	AttemptedAt    time.Time `json:"attempted_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func newAttempt(job types.JobRecord, result types.ApplicationResult) Attempt {
	return Attempt{
		JobID:          job.JobID,
		Company:        job.Company,
		Title:          job.Title,
		JobURL:         job.JobURL,
		ATSType:        result.ATSType,
		Success:        result.Success,
		ErrorMessage:   result.Error,
		ScreenshotPath: result.ScreenshotPath,
		AttemptedAt:    result.AttemptedAt,
	}
}

// RecordAttempt inserts one attempt record. Nil stores drop the record
// silently so unpersisted runs stay cheap.
func (s *Store) RecordAttempt(ctx context.Context, job types.JobRecord, result types.ApplicationResult) error {
	if s == nil {
		return nil
	}
	a := newAttempt(job, result)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO application_attempts
		     (job_id, company, title, job_url, ats_type, success, error_message, screenshot_path, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.JobID, a.Company, a.Title, a.JobURL, a.ATSType, a.Success, a.ErrorMessage, a.ScreenshotPath, a.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// ListAttempts retrieves recent attempts, newest first
func (s *Store) ListAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, company, title, job_url, ats_type, success,
		        COALESCE(error_message, ''), COALESCE(screenshot_path, ''), attempted_at, created_at
		 FROM application_attempts ORDER BY attempted_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.JobID, &a.Company, &a.Title, &a.JobURL, &a.ATSType,
			&a.Success, &a.ErrorMessage, &a.ScreenshotPath, &a.AttemptedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// ListAttemptsForJob retrieves every attempt against one job, oldest first,
// so repeated failures against a posting can be reviewed in order
func (s *Store) ListAttemptsForJob(ctx context.Context, jobID string) ([]Attempt, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, company, title, job_url, ats_type, success,
		        COALESCE(error_message, ''), COALESCE(screenshot_path, ''), attempted_at, created_at
		 FROM application_attempts WHERE job_id = $1 ORDER BY attempted_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.JobID, &a.Company, &a.Title, &a.JobURL, &a.ATSType,
			&a.Success, &a.ErrorMessage, &a.ScreenshotPath, &a.AttemptedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// CountAttemptsToday counts attempts made today, successful or not.
// The daily application cap reads the sheet, not this; the count here is
// for reporting.
func (s *Store) CountAttemptsToday(ctx context.Context) (int, error) {
	if s == nil {
		return 0, nil
	}
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM application_attempts WHERE attempted_at::date = CURRENT_DATE`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}
