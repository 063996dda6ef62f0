// Package storage persists scores and finished runs in SQLite through the
// pure-Go modernc.org/sqlite driver, so no CGO toolchain is needed.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// sessionPragmas are applied to every connection. The SSH server writes
// from many sessions, so writers wait on the lock instead of failing.
const sessionPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);`,

	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		score INTEGER NOT NULL,
		claimed_tiles INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		elapsed_secs REAL NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		difficulty TEXT NOT NULL DEFAULT '',
		snapshot_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(game_id, id DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(game_id, score DESC);`,
}

// Store is a handle on the scores database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens the database at dbPath, creating the file and its directory
// when missing, and migrates the schema. A leading ~ is the home directory.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+sessionPragmas)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := db.Ping(); err != nil {
		s.Close()
		return nil, fmt.Errorf("storage: connect %s: %w", path, err)
	}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand %s: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}

// migrate runs the steps past the database's user_version, one transaction
// per step.
func (s *Store) migrate() error {
	var done int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&done); err != nil {
		return err
	}
	for step := done; step < len(migrations); step++ {
		if err := s.inTx(func(tx *sql.Tx) error {
			if _, err := tx.Exec(migrations[step]); err != nil {
				return fmt.Errorf("step %d: %w", step+1, err)
			}
			// PRAGMA does not take bound parameters.
			_, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", step+1))
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn in a transaction, committing only if it succeeds.
func (s *Store) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		//nolint:errcheck // the fn error is the one worth reporting
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and decodes every row with scan.
func queryAll[T any](db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// insert runs an INSERT and returns the new row ID.
func (s *Store) insert(query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// parseTime accepts the time.Time or text datetimes the driver returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
