package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Vendor
	}{
		{"ashby job page", "https://jobs.ashbyhq.com/acme/12345", VendorAshby},
		{"greenhouse boards", "https://boards.greenhouse.io/acme/jobs/678", VendorGreenhouse},
		{"greenhouse embedded", "https://careers.acme.com?gh=boards.greenhouse", VendorGreenhouse},
		{"workday", "https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", VendorWorkday},
		{"lever", "https://jobs.lever.co/acme/abc-def", VendorLever},
		{"bamboohr", "https://acme.bamboohr.com/careers/42", VendorBambooHR},
		{"uppercase host", "https://JOBS.ASHBYHQ.COM/acme/1", VendorAshby},
		{"unrelated", "https://www.linkedin.com/jobs/view/123", VendorUnknown},
		{"empty", "", VendorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectURL(tt.url))
		})
	}
}

func TestDetect_URLWinsOverContent(t *testing.T) {
	// A Greenhouse board whose posting mentions Ashby (the product, not
	// the domain) must still be detected as Greenhouse.
	url := "https://boards.greenhouse.io/acme/jobs/678"
	content := "<html><body>We migrated our hiring process from ashby last year.</body></html>"

	assert.Equal(t, VendorGreenhouse, Detect(url, content))
}

func TestDetect_WorkdayURLIgnoresContent(t *testing.T) {
	url := "https://acme.wd1.myworkdayjobs.com/External/job/123"

	// Content is irrelevant once the URL matches.
	assert.Equal(t, VendorWorkday, Detect(url, ""))
	assert.Equal(t, VendorWorkday, Detect(url, "powered by greenhouse.io and lever.co"))
}

func TestDetect_ContentFallback(t *testing.T) {
	neutral := "https://careers.acme.com/open-roles/backend"

	tests := []struct {
		name    string
		content string
		want    Vendor
	}{
		{"ashby domain marker", `<script src="https://jobs.ashbyhq.com/embed.js"></script>`, VendorAshby},
		{"bare product name does not confirm", "Our recruiting runs on Ashby.", VendorUnknown},
		{"greenhouse marker", `<iframe src="https://boards.greenhouse.io/embed/job_app"></iframe>`, VendorGreenhouse},
		{"workday marker", "redirecting to acme.wd5.myworkdayjobs.com", VendorWorkday},
		{"lever marker", `<a href="https://jobs.lever.co/acme">Apply</a>`, VendorLever},
		{"bamboohr marker", "hosted by BambooHR", VendorBambooHR},
		{"empty content", "", VendorUnknown},
		{"no markers", "<html><body>Join us!</body></html>", VendorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(neutral, tt.content))
		})
	}
}

func TestDetect_ContentOrderPrefersAshby(t *testing.T) {
	// When several markers appear, the fixed vendor order decides.
	content := "ashbyhq greenhouse.io myworkdayjobs"
	assert.Equal(t, VendorAshby, Detect("https://careers.acme.com", content))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(VendorAshby))
	assert.True(t, Known(VendorBambooHR))
	assert.False(t, Known(VendorUnknown))
	assert.False(t, Known(Vendor("")))
}
