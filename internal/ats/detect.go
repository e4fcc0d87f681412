// Package ats identifies which applicant tracking system serves a job page.
package ats

import "strings"

// Vendor represents a known applicant tracking system.
type Vendor string

const (
	// VendorAshby is the Ashby ATS
	VendorAshby Vendor = "ashby"
	// VendorGreenhouse is the Greenhouse ATS
	VendorGreenhouse Vendor = "greenhouse"
	// VendorWorkday is the Workday ATS
	VendorWorkday Vendor = "workday"
	// VendorLever is the Lever ATS
	VendorLever Vendor = "lever"
	// VendorBambooHR is the BambooHR ATS
	VendorBambooHR Vendor = "bamboohr"
	// VendorUnknown is an unrecognized ATS
	VendorUnknown Vendor = "unknown"
)

// urlRule maps URL substrings to a vendor. Rules are evaluated in order
// and the first hit wins, so more specific hosts must come first.
type urlRule struct {
	vendor Vendor
	tokens []string
}

var urlRules = []urlRule{
	{VendorAshby, []string{"ashbyhq.com"}},
	{VendorGreenhouse, []string{"greenhouse.io", "boards.greenhouse"}},
	{VendorWorkday, []string{"myworkdayjobs.com"}},
	{VendorLever, []string{"lever.co"}},
	{VendorBambooHR, []string{"bamboohr.com"}},
}

// contentMarkers are distinctive strings that confirm a vendor from page
// content when the URL gives nothing away (white-label career sites,
// embedded boards). Markers are domain-derived on purpose: a posting that
// merely mentions a vendor by name must not confirm it.
var contentMarkers = []urlRule{
	{VendorAshby, []string{"ashbyhq"}},
	{VendorGreenhouse, []string{"greenhouse.io"}},
	{VendorWorkday, []string{"myworkdayjobs"}},
	{VendorLever, []string{"lever.co"}},
	{VendorBambooHR, []string{"bamboohr"}},
}

// DetectURL identifies the ATS from the page URL alone.
func DetectURL(pageURL string) Vendor {
	lower := strings.ToLower(pageURL)
	for _, rule := range urlRules {
		for _, token := range rule.tokens {
			if strings.Contains(lower, token) {
				return rule.vendor
			}
		}
	}
	return VendorUnknown
}

// Detect identifies the ATS from the page URL, falling back to page
// content only when the URL matches nothing. A URL match always wins:
// a Greenhouse board that name-drops Ashby in a posting is still
// Greenhouse. Returns VendorUnknown when neither signal is conclusive;
// detection never fails.
func Detect(pageURL, content string) Vendor {
	if v := DetectURL(pageURL); v != VendorUnknown {
		return v
	}
	if content == "" {
		return VendorUnknown
	}
	lower := strings.ToLower(content)
	for _, rule := range contentMarkers {
		for _, marker := range rule.tokens {
			if strings.Contains(lower, marker) {
				return rule.vendor
			}
		}
	}
	return VendorUnknown
}

// Known reports whether v is a recognized vendor.
func Known(v Vendor) bool {
	return v != VendorUnknown && v != ""
}
