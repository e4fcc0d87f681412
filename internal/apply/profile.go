// Package apply orchestrates application attempts: gating them against
// daily limits, picking the next job from the tracker, and driving the
// right ATS form filler for it.
package apply

import (
	"fmt"
	"regexp"
	"strings"
)

// Profile is the applicant identity filled into application forms.
type Profile struct {
	FullName string
	Email    string
	Phone    string
	LinkedIn string
	// Website is the portfolio base URL; per-job UTM parameters are
	// appended so form fills show up in site analytics.
	Website string
}

// roleSlugMax keeps campaign names readable when titles run long.
const roleSlugMax = 20

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// UTMLink tags the portfolio URL with the job it was submitted for. The
// medium is the ATS vendor, the campaign identifies company and role.
func UTMLink(baseURL, medium, company, title string) string {
	roleSlug := slugify(title)
	if len(roleSlug) > roleSlugMax {
		roleSlug = roleSlug[:roleSlugMax]
	}
	return fmt.Sprintf("%s?utm_source=job_app&utm_medium=%s&utm_campaign=%s-%s",
		baseURL, medium, slugify(company), roleSlug)
}
