package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-agent/internal/types"
)

func TestNextJob_PicksHighestPriority(t *testing.T) {
	jobs := []types.JobRecord{
		{SheetRow: 2, JobID: "a", Status: types.StatusReady, PostedTime: "3 weeks ago", Fit: types.FitAnalysis{Score: 7.0}},
		{SheetRow: 3, JobID: "b", Status: types.StatusReady, PostedTime: "2 hours ago", Fit: types.FitAnalysis{Score: 8.5}},
		{SheetRow: 4, JobID: "c", Status: types.StatusReady, PostedTime: "1 day ago", Fit: types.FitAnalysis{Score: 6.0}},
	}

	job, ok := NextJob(jobs)
	require.True(t, ok)
	assert.Equal(t, "b", job.JobID)
}

func TestNextJob_RecencyBreaksTies(t *testing.T) {
	jobs := []types.JobRecord{
		{SheetRow: 2, JobID: "stale", Status: types.StatusReady, PostedTime: "2 weeks ago", Fit: types.FitAnalysis{Score: 8.0}},
		{SheetRow: 3, JobID: "fresh", Status: types.StatusReady, PostedTime: "5 hours ago", Fit: types.FitAnalysis{Score: 8.0}},
	}

	job, ok := NextJob(jobs)
	require.True(t, ok)
	assert.Equal(t, "fresh", job.JobID)
}

func TestNextJob_SkipsIneligibleRows(t *testing.T) {
	jobs := []types.JobRecord{
		{SheetRow: 2, JobID: "done", Status: types.StatusApplied, Fit: types.FitAnalysis{Score: 9.9}},
		{SheetRow: 3, JobID: "inflight", Status: types.StatusApplying, Fit: types.FitAnalysis{Score: 9.5}},
		{SheetRow: 4, JobID: "failed", Status: types.StatusFailed, Fit: types.FitAnalysis{Score: 9.0}},
		{SheetRow: 5, JobID: "waiting", Status: types.StatusReady, PostedTime: "1 day ago", Fit: types.FitAnalysis{Score: 5.0}},
	}

	job, ok := NextJob(jobs)
	require.True(t, ok)
	assert.Equal(t, "waiting", job.JobID)
}

func TestNextJob_LegacyUnknownStatusIsEligible(t *testing.T) {
	jobs := []types.JobRecord{
		{SheetRow: 2, JobID: "legacy", Status: types.StatusUnknown, PostedTime: "1 day ago", Fit: types.FitAnalysis{Score: 5.0}},
	}

	job, ok := NextJob(jobs)
	require.True(t, ok)
	assert.Equal(t, "legacy", job.JobID)
}

func TestNextJob_IdenticalPriorityKeepsSheetOrder(t *testing.T) {
	jobs := []types.JobRecord{
		{SheetRow: 2, JobID: "first", Status: types.StatusReady, PostedTime: "1 day ago", Fit: types.FitAnalysis{Score: 7.0}},
		{SheetRow: 3, JobID: "second", Status: types.StatusReady, PostedTime: "1 day ago", Fit: types.FitAnalysis{Score: 7.0}},
	}

	job, ok := NextJob(jobs)
	require.True(t, ok)
	assert.Equal(t, "first", job.JobID)
}

func TestNextJob_NoEligibleJobs(t *testing.T) {
	_, ok := NextJob([]types.JobRecord{
		{SheetRow: 2, Status: types.StatusApplied},
	})
	assert.False(t, ok)

	_, ok = NextJob(nil)
	assert.False(t, ok)
}
