package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one recorded score.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates the scores and runs of one mode.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Completed  int // runs that lasted the full round
	BestTiles  int
	LastPlayed time.Time
}

// SaveScore records score for gameID and returns the new row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	id, err := s.insert("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit scores of gameID, best first. Ties keep
// the earlier score ahead.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := queryAll(s.db, scanScore,
		`SELECT id, game_id, score, created_at FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: top scores of %s: %w", gameID, err)
	}
	return entries, nil
}

func scanScore(r rowScanner) (ScoreEntry, error) {
	var e ScoreEntry
	var created any
	err := r.Scan(&e.ID, &e.GameID, &e.Score, &created)
	e.CreatedAt = parseTime(created)
	return e, err
}

// HighScore is the best score of gameID, 0 when there is none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: high score of %s: %w", gameID, err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes the scores and runs of gameID together.
func (s *Store) ClearScores(gameID string) error {
	err := s.inTx(func(tx *sql.Tx) error {
		for _, table := range []string{"scores", "runs"} {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: clear %s: %w", gameID, err)
	}
	return nil
}

// GetGameStats aggregates gameID. A mode without rounds yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}

	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: score stats of %s: %w", gameID, err)
	}
	st.LastPlayed = parseTime(last)

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(outcome = 'completed'), 0), COALESCE(MAX(claimed_tiles), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&st.Completed, &st.BestTiles)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: run stats of %s: %w", gameID, err)
	}
	return st, nil
}

// GetAllGamesStats returns score stats keyed by mode, for every mode with
// at least one score. Run columns are left zero.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	all, err := queryAll(s.db, func(r rowScanner) (*GameStats, error) {
		st := &GameStats{}
		var last any
		err := r.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &last)
		st.LastPlayed = parseTime(last)
		return st, err
	}, `SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
	    FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: stats of all modes: %w", err)
	}

	stats := make(map[string]*GameStats, len(all))
	for _, st := range all {
		stats[st.GameID] = st
	}
	return stats, nil
}
