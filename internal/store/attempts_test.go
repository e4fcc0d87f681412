package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/apply-agent/internal/types"
)

func TestNewAttempt_MapsJobAndResult(t *testing.T) {
	attemptedAt := time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC)
	job := types.JobRecord{
		JobID:   "4021337",
		Company: "Acme",
		Title:   "Backend Engineer",
		JobURL:  "https://jobs.example.com/4021337",
	}
	result := types.ApplicationResult{
		Success:        false,
		ATSType:        "ashby",
		Error:          "no submit button found",
		ScreenshotPath: "data/apply_screenshots/no_submit_btn_4021337_20250616_143000.png",
		AttemptedAt:    attemptedAt,
	}

	a := newAttempt(job, result)

	assert.Equal(t, "4021337", a.JobID)
	assert.Equal(t, "Acme", a.Company)
	assert.Equal(t, "Backend Engineer", a.Title)
	assert.Equal(t, "https://jobs.example.com/4021337", a.JobURL)
	assert.Equal(t, "ashby", a.ATSType)
	assert.False(t, a.Success)
	assert.Equal(t, "no submit button found", a.ErrorMessage)
	assert.Equal(t, result.ScreenshotPath, a.ScreenshotPath)
	assert.Equal(t, attemptedAt, a.AttemptedAt)
}

func TestNilStore_AllMethodsAreNoOps(t *testing.T) {
	var s *Store
	ctx := context.Background()

	assert.NoError(t, s.RecordAttempt(ctx, types.JobRecord{}, types.ApplicationResult{}))

	attempts, err := s.ListAttempts(ctx, 10)
	assert.NoError(t, err)
	assert.Nil(t, attempts)

	attempts, err = s.ListAttemptsForJob(ctx, "123")
	assert.NoError(t, err)
	assert.Nil(t, attempts)

	count, err := s.CountAttemptsToday(ctx)
	assert.NoError(t, err)
	assert.Zero(t, count)

	s.Close()
}
