package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/aayushbajaj/attend/pkg/stats"
)

func TestImportYAML(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	doc := `
sessions:
  - title: Morning yoga
    scheduled_time: 2024-01-01T07:30:00Z
    status: completed
  - title: Morning yoga
    scheduled_time: "2024-01-02 07:30"
    status: completed
  - title: Swim
    scheduled_time: 2024-01-04
    status: Completed
  - title: Swim
    scheduled_time: 2024-01-03
    status: missed
`
	n, err := store.ImportYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ImportYAML failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 imported sessions, got %d", n)
	}

	result, err := store.GetStreak(time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	expected := stats.Result{Current: 1, Longest: 2}
	if result != expected {
		t.Errorf("GetStreak() = %+v, want %+v", result, expected)
	}
}

func TestImportYAMLRejectsBatch(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "malformed timestamp",
			doc: `
sessions:
  - title: ok
    scheduled_time: 2024-01-01T07:30:00Z
    status: completed
  - title: broken
    scheduled_time: last tuesday
    status: completed
`,
		},
		{
			name: "missing timestamp",
			doc: `
sessions:
  - title: ok
    status: completed
`,
		},
		{
			name: "unknown status",
			doc: `
sessions:
  - title: ok
    scheduled_time: 2024-01-01
    status: attended
`,
		},
		{
			name: "unknown field",
			doc: `
sessions:
  - title: ok
    when: 2024-01-01
    status: completed
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := newTestStore(t)
			defer cleanup()

			if _, err := store.ImportYAML(strings.NewReader(tt.doc)); err == nil {
				t.Fatal("Expected ImportYAML to fail")
			}

			sessions, err := store.ListSessions()
			if err != nil {
				t.Fatalf("ListSessions failed: %v", err)
			}
			if len(sessions) != 0 {
				t.Errorf("Expected nothing imported, got %d sessions", len(sessions))
			}
		})
	}
}

func TestImportYAMLEmpty(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	n, err := store.ImportYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ImportYAML failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 imported sessions, got %d", n)
	}
}

func TestParseTime(t *testing.T) {
	plus5 := time.FixedZone("UTC+5", 5*60*60)

	tests := []struct {
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"2024-01-04T07:30:00Z", time.Date(2024, 1, 4, 12, 30, 0, 0, plus5), false},
		{"2024-01-04T07:30:00+05:00", time.Date(2024, 1, 4, 7, 30, 0, 0, plus5), false},
		{"2024-01-04T07:30", time.Date(2024, 1, 4, 7, 30, 0, 0, plus5), false},
		{"2024-01-04 07:30", time.Date(2024, 1, 4, 7, 30, 0, 0, plus5), false},
		{" 2024-01-04 ", time.Date(2024, 1, 4, 0, 0, 0, 0, plus5), false},
		{"04/01/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseTime(tt.input, plus5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
