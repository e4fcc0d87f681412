// Package tracker reads and writes the job tracking spreadsheet: the
// main tab of scraped jobs the agent works through, and the QA Memory
// tab where answers to application questions accumulate.
package tracker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Sheets API for one spreadsheet. Writes go through a
// limiter tuned to the per-user write quota so a busy cycle never trips
// API backoff mid-application.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	mainSheet     string
	writeLimiter  *rate.Limiter
}

// NewClient connects with a service account and resolves the first tab
// as the main job sheet.
func NewClient(ctx context.Context, credentialsPath, spreadsheetID string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		mainSheet:     meta.Sheets[0].Properties.Title,
		writeLimiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// rangeName builds quoted A1 notation so tab titles with spaces work.
func rangeName(sheet, ref string) string {
	return fmt.Sprintf("'%s'!%s", sheet, ref)
}

func (c *Client) readRange(ctx context.Context, sheet, ref string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeName(sheet, ref)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rangeName(sheet, ref), err)
	}
	return resp.Values, nil
}

func (c *Client) writeCell(ctx context.Context, sheet, cell string, value interface{}) error {
	return c.writeRange(ctx, sheet, cell, [][]interface{}{{value}})
}

func (c *Client) writeRange(ctx context.Context, sheet, ref string, values [][]interface{}) error {
	if err := c.writeLimiter.Wait(ctx); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeName(sheet, ref), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", ref, err)
	}
	return nil
}

func (c *Client) appendRow(ctx context.Context, sheet, ref string, row []interface{}) error {
	if err := c.writeLimiter.Wait(ctx); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeName(sheet, ref), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", sheet, err)
	}
	return nil
}
