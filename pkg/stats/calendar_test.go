package stats

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "monday morning",
			input:    time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "midweek",
			input:    time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "saturday",
			input:    time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday belongs to previous monday",
			input:    time.Date(2024, 1, 7, 23, 59, 59, 999, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monday midnight",
			input:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "across year boundary",
			input:    time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday new year",
			input:    time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2022, 12, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "leap day",
			input:    time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeekStart(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if result.Weekday() != time.Monday {
				t.Errorf("WeekStart(%v) fell on %v", tt.input, result.Weekday())
			}
		})
	}
}

func TestWeekStartKeepsLocation(t *testing.T) {
	// 23:30 on Sunday in UTC+5 is still Sunday locally, even though it is
	// already Sunday 18:30 in UTC.
	almaty := time.FixedZone("UTC+5", 5*60*60)
	input := time.Date(2024, 1, 7, 23, 30, 0, 0, almaty)

	result := WeekStart(input)
	expected := time.Date(2024, 1, 1, 0, 0, 0, 0, almaty)
	if !result.Equal(expected) {
		t.Errorf("WeekStart = %v, want %v", result, expected)
	}
	if result.Location() != almaty {
		t.Errorf("WeekStart changed location to %v", result.Location())
	}
}

func TestWeekStartIdempotentAndZeroed(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 24*60; i++ {
		x := start.Add(time.Duration(i) * 37 * time.Minute)
		once := WeekStart(x)
		twice := WeekStart(once)
		if !once.Equal(twice) {
			t.Fatalf("WeekStart not idempotent for %v: %v != %v", x, once, twice)
		}
		if h, m, s := once.Clock(); h != 0 || m != 0 || s != 0 || once.Nanosecond() != 0 {
			t.Fatalf("WeekStart(%v) = %v, want zeroed time of day", x, once)
		}
		if once.After(x) {
			t.Fatalf("WeekStart(%v) = %v is after its input", x, once)
		}
	}
}

func TestWeekEnd(t *testing.T) {
	input := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	end := WeekEnd(input)
	if end.Weekday() != time.Sunday {
		t.Errorf("WeekEnd fell on %v, want Sunday", end.Weekday())
	}
	if y, m, d := end.Date(); y != 2024 || m != time.January || d != 7 {
		t.Errorf("WeekEnd = %v, want 2024-01-07", end)
	}
	if !WeekStart(end).Equal(WeekStart(input)) {
		t.Errorf("WeekEnd %v left the week of %v", end, input)
	}
}

func TestStartOfDay(t *testing.T) {
	input := time.Date(2024, 5, 17, 23, 59, 59, 999999999, time.UTC)
	result := StartOfDay(input)
	expected := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	if !result.Equal(expected) {
		t.Errorf("StartOfDay = %v, want %v", result, expected)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		a, b     time.Time
		expected int
	}{
		{"same instant", time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC), 0},
		{"same day different times", time.Date(2024, 1, 4, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 4, 0, 1, 0, 0, time.UTC), 0},
		{"two minutes apart across midnight", time.Date(2024, 1, 5, 0, 1, 0, 0, time.UTC), time.Date(2024, 1, 4, 23, 59, 0, 0, time.UTC), 1},
		{"reversed", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), -3},
		{"across leap day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 2},
		{"before epoch", time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC), time.Date(1969, 12, 30, 12, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DaysBetween(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2024-03-10 is 23 hours long in New York.
	a := time.Date(2024, 3, 11, 0, 0, 0, 0, ny)
	b := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	if got := DaysBetween(a, b); got != 2 {
		t.Errorf("DaysBetween across spring forward = %d, want 2", got)
	}

	// 2024-11-03 is 25 hours long.
	a = time.Date(2024, 11, 4, 0, 0, 0, 0, ny)
	b = time.Date(2024, 11, 3, 0, 0, 0, 0, ny)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween across fall back = %d, want 1", got)
	}
}
