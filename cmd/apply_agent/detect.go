package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-agent/internal/ats"
	"github.com/jonathan/apply-agent/internal/fetch"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect which ATS serves a job posting URL",
	Long:  "Fetch a job posting and report the applicant tracking system behind it. Falls back to a headless browser when the page is a client-side shell with no useful static HTML.",
	RunE:  runDetect,
}

var (
	detectURLStr     string
	detectUseBrowser bool
	detectVerbose    bool
)

func init() {
	detectCmd.Flags().StringVarP(&detectURLStr, "url", "u", "", "Job posting URL to inspect")
	detectCmd.Flags().BoolVar(&detectUseBrowser, "use-browser", false, "Force the headless browser fetch (requires Chrome)")
	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Print detailed debug information")

	detectCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// A URL match alone settles most hosted boards without a fetch
	if vendor := ats.DetectURL(detectURLStr); vendor != ats.VendorUnknown && !detectUseBrowser {
		fmt.Fprintf(os.Stdout, "Detected ATS: %s\n", vendor)
		return nil
	}

	page, err := fetch.URL(ctx, detectURLStr)
	if err != nil {
		if errors.Is(err, fetch.ErrBlocked) {
			return fmt.Errorf("board blocked the plain HTTP fetch; retry with --use-browser")
		}
		return fmt.Errorf("failed to fetch posting: %w", err)
	}

	html := page.HTML
	text, err := fetch.ExtractMainText(html, fetch.JobPostingSelectors())
	if err != nil {
		return fmt.Errorf("failed to extract page text: %w", err)
	}

	// SPA shells carry no markers in their static HTML; render them first
	if detectUseBrowser || fetch.ShouldUseBrowser(text) {
		if detectVerbose {
			fmt.Fprintf(os.Stdout, "Static HTML too thin (%d chars), rendering with browser...\n", len(text))
		}
		rendered, err := fetch.WithBrowser(ctx, detectURLStr, 30*time.Second, detectVerbose)
		if err != nil {
			return fmt.Errorf("browser fetch failed: %w", err)
		}
		html = rendered
	}

	vendor := ats.Detect(detectURLStr, html)
	fmt.Fprintf(os.Stdout, "Detected ATS: %s\n", vendor)
	if !ats.Known(vendor) {
		fmt.Fprintf(os.Stdout, "No known ATS markers found; the posting may use a custom or unsupported system\n")
	}

	return nil
}
