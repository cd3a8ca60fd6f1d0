// Package storage provides SQLite-based persistence for episode scores
// and training run summaries. Uses the pure-Go modernc.org/sqlite driver
// to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents the cumulative reward of one interactive episode.
type ScoreEntry struct {
	ID        int64
	EnvID     string
	Score     float64
	CreatedAt time.Time
}

// TrainingRun represents the stored summary of one training run.
type TrainingRun struct {
	ID          int64
	EnvID       string
	Policy      string
	Episodes    int
	Horizon     int
	MeanReturn  float64
	BestReturn  float64
	SuccessRate float64
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			env_id TEXT NOT NULL,
			score REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_env_id ON scores(env_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(env_id, score DESC);

		CREATE TABLE IF NOT EXISTS training_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			env_id TEXT NOT NULL,
			policy TEXT NOT NULL,
			episodes INTEGER NOT NULL,
			horizon INTEGER NOT NULL,
			mean_return REAL NOT NULL,
			best_return REAL NOT NULL,
			success_rate REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_training_runs_env_id ON training_runs(env_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new episode score for the given environment.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(envID string, score float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (env_id, score) VALUES (?, ?)",
		envID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given environment.
// Results are ordered by score descending.
func (s *Store) TopScores(envID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, env_id, score, created_at
		 FROM scores
		 WHERE env_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		envID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.EnvID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given environment.
// Returns 0 if no scores exist.
func (s *Store) HighScore(envID string) (float64, error) {
	var score sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE env_id = ?",
		envID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return score.Float64, nil
}

// ClearScores deletes all scores for the given environment.
func (s *Store) ClearScores(envID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE env_id = ?", envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveTrainingRun records the summary of a finished training run.
// Returns the ID of the inserted record.
func (s *Store) SaveTrainingRun(run TrainingRun) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO training_runs
		 (env_id, policy, episodes, horizon, mean_return, best_return, success_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.EnvID,
		run.Policy,
		run.Episodes,
		run.Horizon,
		run.MeanReturn,
		run.BestReturn,
		run.SuccessRate,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save training run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentTrainingRuns retrieves the most recent training runs for the
// given environment. An empty envID returns runs across all environments.
func (s *Store) RecentTrainingRuns(envID string, limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, env_id, policy, episodes, horizon, mean_return, best_return, success_rate, created_at
		 FROM training_runs`
	args := []any{}
	if envID != "" {
		query += " WHERE env_id = ?"
		args = append(args, envID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query training runs: %w", err)
	}
	defer rows.Close()

	var runs []TrainingRun
	for rows.Next() {
		var r TrainingRun
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.EnvID,
			&r.Policy,
			&r.Episodes,
			&r.Horizon,
			&r.MeanReturn,
			&r.BestReturn,
			&r.SuccessRate,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTimestamp handles both time.Time and string timestamps returned by
// the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
