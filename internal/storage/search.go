package storage

import (
	"github.com/aayushbajaj/attend/pkg/stats"
	"github.com/sahilm/fuzzy"
)

type sessionTitles []stats.Session

func (t sessionTitles) String(i int) string { return t[i].Title }
func (t sessionTitles) Len() int            { return len(t) }

// SearchSessions fuzzy-matches query against session titles, best match
// first. An empty query returns every session, most recent first.
func (s *Store) SearchSessions(query string) ([]stats.Session, error) {
	sessions, err := s.ListSessions()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return sessions, nil
	}

	matches := fuzzy.FindFrom(query, sessionTitles(sessions))
	result := make([]stats.Session, 0, len(matches))
	for _, m := range matches {
		result = append(result, sessions[m.Index])
	}
	return result, nil
}
