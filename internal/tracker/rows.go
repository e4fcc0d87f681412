package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/apply-agent/internal/types"
)

// Column headers the agent reads. The scraper owns the sheet layout, so
// rows are decoded by header name rather than position.
const (
	headerJobID       = "Job ID"
	headerCompany     = "Company"
	headerTitle       = "Title"
	headerJobURL      = "Job URL"
	headerStatus      = "Status"
	headerPostedTime  = "Posted Time"
	headerScore       = "Score"
	headerWhyGoodFit  = "Why Good Fit"
	headerResumeLink  = "Resume Link"
	headerCoverLetter = "Cover Letter Link"
	headerAppliedDate = "Applied Date"
)

// Cells the agent writes, fixed by the sheet layout.
const (
	colStatus      = "F"
	colATS         = "J"
	colAppliedDate = "P"
	colNotes       = "Q"
)

// headerIndex maps header names to their column positions.
func headerIndex(header []interface{}) map[string]int {
	idx := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cellString(cell))
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// field returns the named column's value for a row, tolerating short rows.
func field(row []interface{}, idx map[string]int, header string) string {
	i, ok := idx[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(cellString(row[i]))
}

// decodeJob converts one sheet row into a JobRecord. sheetRow is the
// 1-based spreadsheet row the record came from, used for later writes.
func decodeJob(row []interface{}, idx map[string]int, sheetRow int) types.JobRecord {
	score, err := strconv.ParseFloat(field(row, idx, headerScore), 64)
	if err != nil {
		score = 0
	}

	return types.JobRecord{
		SheetRow:        sheetRow,
		JobID:           field(row, idx, headerJobID),
		Company:         field(row, idx, headerCompany),
		Title:           field(row, idx, headerTitle),
		JobURL:          field(row, idx, headerJobURL),
		Status:          field(row, idx, headerStatus),
		PostedTime:      field(row, idx, headerPostedTime),
		ResumePath:      field(row, idx, headerResumeLink),
		CoverLetterPath: field(row, idx, headerCoverLetter),
		Fit: types.FitAnalysis{
			Score:      score,
			WhyGoodFit: field(row, idx, headerWhyGoodFit),
		},
	}
}
