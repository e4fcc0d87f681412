package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/apply-agent/internal/types"
)

// ListJobs decodes every data row of the main sheet. Filtering and
// prioritization happen in the apply engine; the tracker only reports
// what the scraper wrote.
func (c *Client) ListJobs(ctx context.Context) ([]types.JobRecord, error) {
	rows, err := c.readRange(ctx, c.mainSheet, "A:Z")
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	jobs := make([]types.JobRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// Sheet rows are 1-based and the header occupies row 1.
		jobs = append(jobs, decodeJob(row, idx, i+2))
	}
	return jobs, nil
}

// MarkApplying flags a row as in flight so a concurrent run skips it.
func (c *Client) MarkApplying(ctx context.Context, row int) error {
	return c.RecordStatus(ctx, row, types.StatusApplying, "", "")
}

// RecordStatus writes an attempt's outcome back to the row: status and
// ATS columns always, the applied date only on success, and a note that
// carries the error when there is one.
func (c *Client) RecordStatus(ctx context.Context, row int, status, atsType, errMsg string) error {
	now := time.Now()

	note := fmt.Sprintf("Applied: %s", now.Format(time.RFC3339))
	if errMsg != "" {
		note = fmt.Sprintf("Error: %s", errMsg)
	}

	writes := []struct {
		col   string
		value string
	}{
		{colStatus, status},
		{colATS, atsType},
		{colNotes, note},
	}
	if status == types.StatusApplied {
		writes = append(writes, struct {
			col   string
			value string
		}{colAppliedDate, now.Format("2006-01-02")})
	}

	for _, w := range writes {
		cell := fmt.Sprintf("%s%d", w.col, row)
		if err := c.writeCell(ctx, c.mainSheet, cell, w.value); err != nil {
			return err
		}
	}
	return nil
}

// CountAppliedToday counts rows whose application landed on now's date.
// The sheet is authoritative so restarts and parallel machines share one
// daily budget.
func (c *Client) CountAppliedToday(ctx context.Context, now time.Time) (int, error) {
	rows, err := c.readRange(ctx, c.mainSheet, "A:Z")
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, nil
	}

	idx := headerIndex(rows[0])
	today := now.Format("2006-01-02")
	count := 0
	for _, row := range rows[1:] {
		if field(row, idx, headerStatus) != types.StatusApplied {
			continue
		}
		if appliedOn(field(row, idx, headerAppliedDate)) == today {
			count++
		}
	}
	return count, nil
}

// appliedOn extracts the date part of an Applied Date cell, which older
// rows wrote as a full timestamp.
func appliedOn(value string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
