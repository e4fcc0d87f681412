package apply

import (
	"github.com/jonathan/apply-agent/internal/ranking"
	"github.com/jonathan/apply-agent/internal/types"
)

// NextJob picks the highest-priority row still waiting for an attempt.
// Ties keep sheet order, so reruns are deterministic.
func NextJob(jobs []types.JobRecord) (types.JobRecord, bool) {
	var best types.JobRecord
	bestPriority := -1.0
	found := false

	for _, job := range jobs {
		if !job.Eligible() {
			continue
		}
		priority := ranking.Priority(job.Fit.Score, ranking.ParsePostedAge(job.PostedTime))
		if !found || priority > bestPriority {
			best = job
			bestPriority = priority
			found = true
		}
	}
	return best, found
}
