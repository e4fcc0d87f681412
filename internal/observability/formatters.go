// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/apply-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of the job about to be applied to.
func (p *Printer) PrintJob(job *types.JobRecord) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Row:      %d\n", job.SheetRow))
	if job.PostedTime != "" {
		sb.WriteString(fmt.Sprintf("Posted:   %s\n", job.PostedTime))
	}
	sb.WriteString(fmt.Sprintf("Fit:      %.1f/10\n", job.Fit.Score))

	if job.Fit.WhyGoodFit != "" {
		why := job.Fit.WhyGoodFit
		if len(why) > 50 {
			why = why[:47] + "..."
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Why:      %s\n", why))
	}

	p.printBox("NEXT JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQueue outputs the top eligible jobs waiting for an attempt.
func (p *Printer) PrintQueue(jobs []types.JobRecord) {
	eligible := make([]types.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if job.Eligible() {
			eligible = append(eligible, job)
		}
	}
	if len(eligible) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs waiting: %d\n\n", len(eligible)))

	count := min(len(eligible), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := eligible[i]
		title := job.Title
		if len(title) > 35 {
			title = title[:32] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %s · fit %.1f\n", job.Company, job.Fit.Score))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(eligible) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(eligible)-maxItemsToShow))
	}

	p.printBox("APPLICATION QUEUE", sb.String())
}

// PrintResult outputs the outcome of one application attempt.
func (p *Printer) PrintResult(result *types.ApplicationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Success {
		sb.WriteString("Outcome:  ✅ submitted\n")
	} else {
		sb.WriteString("Outcome:  ❌ failed\n")
	}
	sb.WriteString(fmt.Sprintf("ATS:      %s\n", result.ATSType))

	if result.Error != "" {
		errText := result.Error
		if len(errText) > 45 {
			errText = errText[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Error:    %s\n", errText))
	}
	if result.ScreenshotPath != "" {
		sb.WriteString(fmt.Sprintf("Shot:     %s\n", result.ScreenshotPath))
	}

	p.printBox("APPLICATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs the session counters.
func (p *Printer) PrintStats(stats *types.SessionStats) {
	if stats == nil || stats.Attempted == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Attempted:    %d\n", stats.Attempted))
	sb.WriteString(fmt.Sprintf("Successful:   %d\n", stats.Successful))
	sb.WriteString(fmt.Sprintf("Failed:       %d\n", stats.Failed))
	sb.WriteString(fmt.Sprintf("Unsupported:  %d\n", stats.UnsupportedATS))
	sb.WriteString(fmt.Sprintf("Success rate: %.0f%%", float64(stats.Successful)/float64(stats.Attempted)*100))

	p.printBox("SESSION STATS", sb.String())
}
