package storage

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aayushbajaj/attend/pkg/stats"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var inputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC3339 timestamps, or a local date with an optional
// HH:MM time which is interpreted in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339, YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}

type importFile struct {
	Sessions []importEntry `yaml:"sessions"`
}

type importEntry struct {
	Title         string `yaml:"title"`
	ScheduledTime string `yaml:"scheduled_time"`
	Status        string `yaml:"status"`
}

// ImportYAML reads a document of the form
//
//	sessions:
//	  - title: Morning yoga
//	    scheduled_time: 2024-01-01T07:30:00Z
//	    status: completed
//
// Every entry is validated before anything is written, and the batch is
// stored in a single transaction. It returns the number of sessions added.
func (s *Store) ImportYAML(r io.Reader) (int, error) {
	var doc importFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("decoding import: %w", err)
	}

	sessions := make([]stats.Session, 0, len(doc.Sessions))
	for i, e := range doc.Sessions {
		if e.ScheduledTime == "" {
			return 0, fmt.Errorf("session %d: missing scheduled_time", i+1)
		}
		at, err := ParseTime(e.ScheduledTime, s.loc)
		if err != nil {
			return 0, fmt.Errorf("session %d: %w", i+1, err)
		}
		status, err := stats.ParseStatus(e.Status)
		if err != nil {
			return 0, fmt.Errorf("session %d: %w", i+1, err)
		}
		sessions = append(sessions, stats.Session{
			ID:            uuid.NewString(),
			Title:         e.Title,
			ScheduledTime: at,
			Status:        status,
		})
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, sess := range sessions {
		if err := insertSession(tx, sess); err != nil {
			return 0, fmt.Errorf("importing %q: %w", sess.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(sessions), nil
}
