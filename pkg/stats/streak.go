package stats

import (
	"slices"
	"time"
)

// Result holds the current and longest streak in days. Current never
// exceeds Longest.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak derives the current and longest runs of consecutive calendar
// days that contain at least one completed session. sessions may be unordered
// and may hold several sessions per day; it is not modified.
//
// The current streak is the run that ends on the most recent completed day,
// and only counts while that day is today or yesterday relative to now.
func ComputeStreak(sessions []Session, now time.Time) Result {
	days := make([]int, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed() {
			days = append(days, dayNumber(s.ScheduledTime))
		}
	}
	if len(days) == 0 {
		return Result{}
	}

	// Most recent first.
	slices.Sort(days)
	slices.Reverse(days)

	var (
		run      = 1
		current  = 1
		longest  = 0
		anchored = true // still inside the run that starts at the most recent day
		last     = days[0]
	)
	for _, day := range days[1:] {
		diff := last - day
		switch {
		case diff == 0:
			continue
		case diff == 1:
			run++
			if anchored {
				current = run
			}
		default:
			longest = max(longest, run)
			run = 1
			anchored = false
		}
		last = day
	}
	longest = max(longest, run)

	if dayNumber(now)-days[0] > 1 {
		current = 0
	}

	return Result{Current: current, Longest: longest}
}
