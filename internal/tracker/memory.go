package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/jonathan/apply-agent/internal/answers"
)

// memoryTab is where remembered question-answer pairs live. The tab is
// created on first use; humans edit it freely between runs.
const memoryTab = "QA Memory"

var memoryHeader = []interface{}{"Question", "Answer", "Context", "Use Count", "Last Used"}

// EnsureMemoryTab creates the QA Memory tab with its header row when the
// spreadsheet does not have one yet.
func (c *Client) EnsureMemoryTab(ctx context.Context) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to inspect spreadsheet: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties.Title == memoryTab {
			return nil
		}
	}

	if err := c.writeLimiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: memoryTab,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: int64(len(memoryHeader)),
					},
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create %s tab: %w", memoryTab, err)
	}

	return c.writeRange(ctx, memoryTab, "A1:E1", [][]interface{}{memoryHeader})
}

// LoadAnswers reads the remembered pairs, keyed for the answer bank. A
// missing tab is created and yields an empty memory rather than an error.
func (c *Client) LoadAnswers(ctx context.Context) (map[string]string, error) {
	rows, err := c.readRange(ctx, memoryTab, "A:E")
	if err != nil {
		log.Printf("Could not load Q&A memory: %v", err)
		if ensureErr := c.EnsureMemoryTab(ctx); ensureErr != nil {
			return nil, ensureErr
		}
		return map[string]string{}, nil
	}
	if len(rows) < 2 {
		return map[string]string{}, nil
	}

	idx := headerIndex(rows[0])
	loaded := make(map[string]string)
	for _, row := range rows[1:] {
		question := field(row, idx, "Question")
		answer := field(row, idx, "Answer")
		if question == "" || answer == "" {
			continue
		}
		loaded[answers.CanonicalKey(question)] = answer
	}
	log.Printf("Loaded %d Q&A pairs from memory", len(loaded))
	return loaded, nil
}

// AppendAnswer persists one new pair with the job it was first used for.
func (c *Client) AppendAnswer(ctx context.Context, question, answer, jobContext string) error {
	return c.appendRow(ctx, memoryTab, "A:E", []interface{}{
		question,
		answer,
		jobContext,
		1,
		time.Now().Format(time.RFC3339),
	})
}
