package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Run is one finished round with what is needed to replay it.
type Run struct {
	ID           int64
	GameID       string
	Seed         int64
	Score        int
	ClaimedTiles int
	Outcome      string  // "completed", "failed", "aborted"
	Elapsed      float64 // seconds of simulated time
	Ticks        int64
	Difficulty   string
	Hash         uint64 // final snapshot hash
	CreatedAt    time.Time
}

const runColumns = `id, game_id, seed, score, claimed_tiles, outcome, elapsed_secs, ticks, difficulty, snapshot_hash, created_at`

// SaveRun records run and returns the new row ID. The hash is stored as
// hex text because SQLite integers are signed.
func (s *Store) SaveRun(run Run) (int64, error) {
	id, err := s.insert(
		`INSERT INTO runs
		 (game_id, seed, score, claimed_tiles, outcome, elapsed_secs, ticks, difficulty, snapshot_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GameID, run.Seed, run.Score, run.ClaimedTiles, run.Outcome,
		run.Elapsed, run.Ticks, run.Difficulty, fmt.Sprintf("%016x", run.Hash),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first. An empty gameID
// covers every mode.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := queryAll(s.db, scanRun,
		`SELECT `+runColumns+` FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: recent runs: %w", err)
	}
	return runs, nil
}

// BestRun is the highest scoring run of gameID, or nil when it has none.
func (s *Store) BestRun(gameID string) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		gameID,
	))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("storage: best run of %s: %w", gameID, err)
	}
	return &run, nil
}

func scanRun(r rowScanner) (Run, error) {
	var run Run
	var hash string
	var created any
	if err := r.Scan(
		&run.ID, &run.GameID, &run.Seed, &run.Score, &run.ClaimedTiles, &run.Outcome,
		&run.Elapsed, &run.Ticks, &run.Difficulty, &hash, &created,
	); err != nil {
		return run, err
	}
	// A malformed hash reads as 0 rather than hiding the run.
	run.Hash, _ = strconv.ParseUint(hash, 16, 64)
	run.CreatedAt = parseTime(created)
	return run, nil
}
