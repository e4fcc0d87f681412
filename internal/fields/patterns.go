// Package fields locates standard application form inputs across ATS
// vendors through one declarative pattern table instead of per-vendor
// lookup code.
package fields

import (
	"fmt"

	"github.com/jonathan/apply-agent/internal/ats"
)

// Role names a kind of form input the agent knows how to fill.
type Role string

const (
	// RoleFullName is the applicant name input
	RoleFullName Role = "full_name"
	// RoleEmail is the email input
	RoleEmail Role = "email"
	// RolePhone is the phone number input
	RolePhone Role = "phone"
	// RoleLinkedIn is the LinkedIn profile URL input
	RoleLinkedIn Role = "linkedin"
	// RolePortfolio is the portfolio or personal website input
	RolePortfolio Role = "portfolio"
	// RoleResume is the resume file upload input
	RoleResume Role = "resume"
	// RoleLocation is the current location input
	RoleLocation Role = "location"
)

// Match is how a pattern compares an attribute value.
type Match string

const (
	// MatchExact requires the attribute to equal the value
	MatchExact Match = "exact"
	// MatchContains requires the attribute to contain the value,
	// case-insensitively
	MatchContains Match = "contains"
)

// Pattern describes one way a role's input tends to be written in markup.
// Base defaults to "input"; an empty Attr matches the base element alone.
type Pattern struct {
	Base  string
	Attr  string
	Match Match
	Value string
}

// Selector compiles the pattern to a Playwright CSS selector.
func (p Pattern) Selector() string {
	base := p.Base
	if base == "" {
		base = "input"
	}
	if p.Attr == "" {
		return base
	}
	if p.Match == MatchContains {
		return fmt.Sprintf(`%s[%s*="%s" i]`, base, p.Attr, p.Value)
	}
	return fmt.Sprintf(`%s[%s="%s"]`, base, p.Attr, p.Value)
}

const fileInput = `input[type="file"]`

// defaultPatterns is the vendor-neutral table. Order inside each role is
// the probe order: attribute names first, then placeholder text, then
// input type, most specific first.
var defaultPatterns = map[Role][]Pattern{
	RoleFullName: {
		{Attr: "name", Match: MatchExact, Value: "name"},
		{Attr: "placeholder", Match: MatchContains, Value: "name"},
	},
	RoleEmail: {
		{Attr: "name", Match: MatchExact, Value: "email"},
		{Attr: "type", Match: MatchExact, Value: "email"},
	},
	RolePhone: {
		{Attr: "name", Match: MatchExact, Value: "phone"},
		{Attr: "type", Match: MatchExact, Value: "tel"},
		{Attr: "placeholder", Match: MatchContains, Value: "phone"},
	},
	RoleLinkedIn: {
		{Attr: "name", Match: MatchExact, Value: "linkedin"},
		{Attr: "placeholder", Match: MatchContains, Value: "linkedin"},
	},
	RolePortfolio: {
		{Attr: "name", Match: MatchExact, Value: "portfolio"},
		{Attr: "name", Match: MatchExact, Value: "website"},
		{Attr: "placeholder", Match: MatchContains, Value: "portfolio"},
		{Attr: "placeholder", Match: MatchContains, Value: "website"},
	},
	RoleResume: {
		{Base: fileInput, Attr: "name", Match: MatchExact, Value: "resume"},
		{Base: fileInput},
	},
	RoleLocation: {
		{Attr: "name", Match: MatchExact, Value: "location"},
		{Attr: "placeholder", Match: MatchContains, Value: "location"},
	},
}

// vendorPatterns holds sparse per-vendor overrides, probed before the
// defaults. Ashby uses reserved _systemfield_* names for its core fields.
var vendorPatterns = map[ats.Vendor]map[Role][]Pattern{
	ats.VendorAshby: {
		RoleFullName: {{Attr: "name", Match: MatchExact, Value: "_systemfield_name"}},
		RoleEmail:    {{Attr: "name", Match: MatchExact, Value: "_systemfield_email"}},
		RoleResume:   {{Base: fileInput, Attr: "id", Match: MatchExact, Value: "_systemfield_resume"}},
	},
}

// Selectors returns the full probe order for a role under a vendor:
// vendor overrides first, then the neutral table.
func Selectors(vendor ats.Vendor, role Role) []string {
	patterns := append([]Pattern{}, vendorPatterns[vendor][role]...)
	patterns = append(patterns, defaultPatterns[role]...)

	selectors := make([]string, 0, len(patterns))
	for _, p := range patterns {
		selectors = append(selectors, p.Selector())
	}
	return selectors
}
