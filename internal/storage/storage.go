package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aayushbajaj/attend/pkg/stats"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("session not found")

// timeLayout keeps a fixed-width fraction so stored UTC timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists sessions in SQLite. Calendar days are derived in loc.
type Store struct {
	db  *sql.DB
	loc *time.Location
}

// New opens attend.db inside dataDir, creating the directory if needed.
func New(dataDir string, loc *time.Location) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return Open(filepath.Join(dataDir, "attend.db"), loc)
}

// Open opens the database at dbPath and applies the schema.
func Open(dbPath string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.Local
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, loc: loc}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		scheduled_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		date TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status, date);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Location is the zone used for calendar days.
func (s *Store) Location() *time.Location {
	return s.loc
}

// AddSession stores a new session and returns it with its generated id.
func (s *Store) AddSession(title string, at time.Time, status stats.Status) (stats.Session, error) {
	if _, err := stats.ParseStatus(string(status)); err != nil {
		return stats.Session{}, err
	}

	sess := stats.Session{
		ID:            uuid.NewString(),
		Title:         title,
		ScheduledTime: at.In(s.loc),
		Status:        status,
	}
	if err := insertSession(s.db, sess); err != nil {
		return stats.Session{}, fmt.Errorf("adding session: %w", err)
	}
	return sess, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertSession(db execer, sess stats.Session) error {
	_, err := db.Exec(
		"INSERT INTO sessions (id, title, scheduled_time, status, date) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.Title, sess.ScheduledTime.UTC().Format(timeLayout), string(sess.Status),
		sess.ScheduledTime.Format("2006-01-02"),
	)
	return err
}

func (s *Store) GetSession(id string) (stats.Session, error) {
	row := s.db.QueryRow(
		"SELECT id, title, scheduled_time, status FROM sessions WHERE id = ?", id,
	)
	sess, err := s.scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, err
}

// SetStatus moves a session to a new status.
func (s *Store) SetStatus(id string, status stats.Status) error {
	if _, err := stats.ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE sessions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("updating session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ListSessions returns every session, most recent first.
func (s *Store) ListSessions() ([]stats.Session, error) {
	rows, err := s.db.Query(
		"SELECT id, title, scheduled_time, status FROM sessions ORDER BY scheduled_time DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanSessions(rows)
}

// ListSessionsBetween returns sessions whose calendar day lies in [from, to],
// most recent first.
func (s *Store) ListSessionsBetween(from, to time.Time) ([]stats.Session, error) {
	rows, err := s.db.Query(
		`SELECT id, title, scheduled_time, status FROM sessions
		 WHERE date >= ? AND date <= ? ORDER BY scheduled_time DESC`,
		from.In(s.loc).Format("2006-01-02"), to.In(s.loc).Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanSessions(rows)
}

// GetStreak computes the streak over every stored session.
func (s *Store) GetStreak(now time.Time) (stats.Result, error) {
	sessions, err := s.ListSessions()
	if err != nil {
		return stats.Result{}, err
	}
	return stats.ComputeStreak(sessions, now.In(s.loc)), nil
}

// GetWeeklyCounts returns completed-session counts for the last n weeks.
func (s *Store) GetWeeklyCounts(weeks int, now time.Time) ([]stats.WeekCount, error) {
	if weeks <= 0 {
		return nil, nil
	}
	now = now.In(s.loc)
	from := stats.WeekStart(now).AddDate(0, 0, -7*(weeks-1))
	sessions, err := s.ListSessionsBetween(from, stats.WeekEnd(now))
	if err != nil {
		return nil, err
	}
	return stats.WeeklyCounts(sessions, weeks, now), nil
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSession decodes one row. Stored timestamps that fail to parse are
// reported here so they never reach streak computation.
func (s *Store) scanSession(row scanner) (stats.Session, error) {
	var (
		sess      stats.Session
		scheduled string
		status    string
	)
	if err := row.Scan(&sess.ID, &sess.Title, &scheduled, &status); err != nil {
		return stats.Session{}, err
	}

	t, err := time.Parse(timeLayout, scheduled)
	if err != nil {
		return stats.Session{}, fmt.Errorf("session %s: parsing scheduled_time %q: %w", sess.ID, scheduled, err)
	}
	sess.ScheduledTime = t.In(s.loc)

	st, err := stats.ParseStatus(status)
	if err != nil {
		return stats.Session{}, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	sess.Status = st

	return sess, nil
}

func (s *Store) scanSessions(rows *sql.Rows) ([]stats.Session, error) {
	var sessions []stats.Session
	for rows.Next() {
		sess, err := s.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
