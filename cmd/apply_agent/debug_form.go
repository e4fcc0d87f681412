package main

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"

	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/fields"
)

var debugFormCmd = &cobra.Command{
	Use:   "debug-form",
	Short: "Open an ATS form and dump its field inventory",
	Long:  "Opens the given application form in the persistent browser profile and logs every input, select and textarea with its identifying attributes. Useful when a filler misses fields on a new board layout.",
	RunE:  runDebugForm,
}

var (
	debugFormURL      string
	debugFormProfile  string
	debugFormHeadless bool
)

func init() {
	debugFormCmd.Flags().StringVarP(&debugFormURL, "url", "u", "", "Application form URL to inspect")
	debugFormCmd.Flags().StringVar(&debugFormProfile, "profile", "", "Browser profile directory (defaults to ~/.pw-session-apply)")
	debugFormCmd.Flags().BoolVar(&debugFormHeadless, "headless", false, "Run the browser without a window")

	debugFormCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(debugFormCmd)
}

func runDebugForm(cmd *cobra.Command, args []string) error {
	session, err := browser.NewSession(browser.Options{
		UserDataDir: debugFormProfile,
		Headless:    debugFormHeadless,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer func() { _ = session.Close() }()

	page, err := session.NewPage()
	if err != nil {
		return err
	}

	if _, err := page.Goto(debugFormURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to open %s: %w", debugFormURL, err)
	}
	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})

	fields.LogInventory(page)
	return nil
}
