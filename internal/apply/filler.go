package apply

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"github.com/jonathan/apply-agent/internal/ats"
	"github.com/jonathan/apply-agent/internal/types"
)

// Filler drives one ATS vendor's application form on an already-loaded
// page. Implementations fill Success, Error and ScreenshotPath; the
// engine stamps the rest.
type Filler interface {
	Apply(ctx context.Context, page playwright.Page, job types.JobRecord) types.ApplicationResult
}

// Registry maps vendors to their fillers. Vendors the agent can detect
// but not yet drive simply have no entry.
type Registry map[ats.Vendor]Filler

// Lookup returns the filler for a vendor, if one is registered.
func (r Registry) Lookup(vendor ats.Vendor) (Filler, bool) {
	f, ok := r[vendor]
	return f, ok
}
