// Package ranking orders tracker jobs by how worthwhile an application
// attempt is right now.
package ranking

import (
	"regexp"
	"strconv"
	"strings"
)

// Weights for the priority score components.
const (
	fitWeight     = 0.7
	recencyWeight = 0.3
)

// recencyHorizonDays caps how much staleness can penalize a job. Anything
// older contributes zero recency.
const recencyHorizonDays = 10

var leadingInt = regexp.MustCompile(`(\d+)`)

// ParsePostedAge converts a job board's free-text posting age ("3 days
// ago", "2 weeks ago", "5 hours ago") into whole days. Unparseable or
// unfamiliar phrasing is treated as old.
func ParsePostedAge(posted string) int {
	lower := strings.ToLower(posted)
	switch {
	case strings.Contains(lower, "hour"):
		return 0
	case strings.Contains(lower, "day"):
		if m := leadingInt.FindString(lower); m != "" {
			n, _ := strconv.Atoi(m)
			return n
		}
		return 1
	case strings.Contains(lower, "week"):
		if m := leadingInt.FindString(lower); m != "" {
			n, _ := strconv.Atoi(m)
			return n * 7
		}
		return 7
	default:
		return 30
	}
}

// Priority scores a job for application ordering. Fit dominates, recency
// breaks ties: a fresh 8/10 outranks a month-old 9/10.
func Priority(fitScore float64, postedDays int) float64 {
	days := postedDays
	if days > recencyHorizonDays {
		days = recencyHorizonDays
	}
	return fitScore*fitWeight + float64(recencyHorizonDays-days)*recencyWeight
}
