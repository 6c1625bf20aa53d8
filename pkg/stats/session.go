package stats

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a scheduled session.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusMissed    Status = "missed"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusMissed}

// ParseStatus converts user or stored input into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

// Session is a single booked session. Only completed sessions count
// towards streaks.
type Session struct {
	ID            string
	Title         string
	ScheduledTime time.Time
	Status        Status
}

func (s Session) Completed() bool {
	return s.Status == StatusCompleted
}
