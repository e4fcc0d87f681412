package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCommand_MissingURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "detect")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestDetectCommand_InvalidURL(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "detect", "--url", "not-a-url")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid URL")
}

// Hosted boards are recognized from the URL alone, so these cases need no
// network access.
func TestDetectCommand_HostedBoards(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tests := []struct {
		name   string
		url    string
		vendor string
	}{
		{
			name:   "Ashby hosted board",
			url:    "https://jobs.ashbyhq.com/acme/12345-backend-engineer",
			vendor: "ashby",
		},
		{
			name:   "Greenhouse hosted board",
			url:    "https://boards.greenhouse.io/acme/jobs/12345",
			vendor: "greenhouse",
		},
		{
			name:   "Lever hosted board",
			url:    "https://jobs.lever.co/acme/12345",
			vendor: "lever",
		},
		{
			name:   "Workday hosted board",
			url:    "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/12345",
			vendor: "workday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, "detect", "--url", tt.url)
			output, err := cmd.CombinedOutput()

			assert.NoError(t, err, "detect should succeed: %s", string(output))
			assert.Contains(t, string(output), "Detected ATS: "+tt.vendor)
		})
	}
}
