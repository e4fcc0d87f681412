package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePostedAge(t *testing.T) {
	tests := []struct {
		name   string
		posted string
		want   int
	}{
		{"hours are today", "5 hours ago", 0},
		{"one hour", "1 hour ago", 0},
		{"days", "3 days ago", 3},
		{"single day", "1 day ago", 1},
		{"day without number", "posted a day ago", 1},
		{"weeks", "2 weeks ago", 14},
		{"week without number", "about a week ago", 7},
		{"months are old", "2 months ago", 30},
		{"empty is old", "", 30},
		{"garbage is old", "recently", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePostedAge(tt.posted))
		})
	}
}

func TestPriority_FreshGoodFitBeatsStaleGreatFit(t *testing.T) {
	fresh := Priority(8, ParsePostedAge("2 days ago"))
	stale := Priority(9, ParsePostedAge("2 months ago"))

	assert.InDelta(t, 8.0, fresh, 1e-9)
	assert.InDelta(t, 6.3, stale, 1e-9)
	assert.Greater(t, fresh, stale)
}

func TestPriority_StalenessCapped(t *testing.T) {
	// Beyond the horizon all staleness is equal.
	assert.Equal(t, Priority(5, 10), Priority(5, 400))
}

func TestPriority_RecencyBreaksTies(t *testing.T) {
	newer := Priority(7, 1)
	older := Priority(7, 4)
	assert.Greater(t, newer, older)
}
