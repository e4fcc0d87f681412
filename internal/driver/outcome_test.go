package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLIndicatesSuccess(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "thank you page",
			url:      "https://jobs.ashbyhq.com/acme/form/thank-you",
			expected: true,
		},
		{
			name:     "confirmation path",
			url:      "https://boards.greenhouse.io/acme/confirmation",
			expected: true,
		},
		{
			name:     "submitted query parameter",
			url:      "https://jobs.lever.co/acme/apply?state=submitted",
			expected: true,
		},
		{
			name:     "uppercase token still matches",
			url:      "https://jobs.ashbyhq.com/acme/SUCCESS",
			expected: true,
		},
		{
			name:     "form URL is not success",
			url:      "https://jobs.ashbyhq.com/acme/application",
			expected: false,
		},
		{
			name:     "empty URL",
			url:      "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, URLIndicatesSuccess(tt.url))
		})
	}
}

func TestOutcomeSucceeded(t *testing.T) {
	assert.True(t, Outcome{State: StateSucceeded}.Succeeded())
	assert.False(t, Outcome{State: StateFailed}.Succeeded())
	assert.False(t, Outcome{State: StateSubmitting}.Succeeded())
}
