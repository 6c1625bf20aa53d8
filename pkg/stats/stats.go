package stats

import "time"

type DayData struct {
	Date      time.Time
	Completed int
}

type WeekCount struct {
	Start     time.Time
	Completed int
}

// DailyCounts returns completed-session counts for the last n calendar days
// ending on now's day, oldest first.
func DailyCounts(sessions []Session, n int, now time.Time) []DayData {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	days := make([]DayData, n)
	for i := range days {
		y, m, d := today.Date()
		days[i].Date = time.Date(y, m, d-(n-1-i), 0, 0, 0, 0, today.Location())
	}

	for _, s := range sessions {
		if !s.Completed() {
			continue
		}
		ago := DaysBetween(today, s.ScheduledTime)
		if ago < 0 || ago >= n {
			continue
		}
		days[n-1-ago].Completed++
	}
	return days
}

// WeeklyCounts buckets completed sessions into the last n Monday-aligned
// weeks ending with the week containing now, oldest first.
func WeeklyCounts(sessions []Session, n int, now time.Time) []WeekCount {
	if n <= 0 {
		return nil
	}
	current := WeekStart(now)
	weeks := make([]WeekCount, n)
	for i := range weeks {
		y, m, d := current.Date()
		weeks[i].Start = time.Date(y, m, d-7*(n-1-i), 0, 0, 0, 0, current.Location())
	}

	for _, s := range sessions {
		if !s.Completed() {
			continue
		}
		diff := DaysBetween(current, WeekStart(s.ScheduledTime))
		if diff < 0 || diff/7 >= n {
			continue
		}
		weeks[n-1-diff/7].Completed++
	}
	return weeks
}

func CalculateWeeklyAverage(days []DayData) float64 {
	if len(days) == 0 {
		return 0
	}
	var total int
	for _, d := range days {
		total += d.Completed
	}
	return float64(total) / float64(len(days))
}

// CompletionRate is the share of sessions that were completed, ignoring
// cancelled ones. It returns 0 when nothing is eligible.
func CompletionRate(sessions []Session) float64 {
	var eligible, completed int
	for _, s := range sessions {
		switch s.Status {
		case StatusCancelled:
			continue
		case StatusCompleted:
			completed++
		}
		eligible++
	}
	if eligible == 0 {
		return 0
	}
	return float64(completed) / float64(eligible)
}
