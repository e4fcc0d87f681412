package apply

import (
	"fmt"
	"time"
)

// Business hours window for polite submission timing, local time.
const (
	businessHoursStart = 9
	businessHoursEnd   = 18
)

// Limits configures how aggressively the agent applies.
type Limits struct {
	// MaxDailyApplications caps successful applications per calendar day.
	MaxDailyApplications int
	// BusinessHoursOnly restricts attempts to working hours so
	// applications do not land timestamped 3am.
	BusinessHoursOnly bool
}

// Gate decides whether an application attempt may start right now.
type Gate struct {
	limits Limits
	now    func() time.Time
}

// NewGate builds a gate over the configured limits.
func NewGate(limits Limits) *Gate {
	return &Gate{limits: limits, now: time.Now}
}

// CanApplyNow checks the daily budget and the clock. dailyCount is
// today's applied total from the tracker, which stays authoritative so
// parallel machines share one budget. The returned reason is loggable
// as-is.
func (g *Gate) CanApplyNow(dailyCount int) (bool, string) {
	if dailyCount >= g.limits.MaxDailyApplications {
		return false, fmt.Sprintf("Daily limit reached (%d)", g.limits.MaxDailyApplications)
	}

	if g.limits.BusinessHoursOnly {
		hour := g.now().Hour()
		if hour < businessHoursStart || hour > businessHoursEnd {
			return false, "Outside business hours"
		}
	}

	return true, "OK"
}
