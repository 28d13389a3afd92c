// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artemgv/ritmo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			source TEXT NOT NULL,
			mode TEXT NOT NULL,
			target_wpm INTEGER NOT NULL,
			chunks_read INTEGER NOT NULL,
			words_read INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS prediction_results (
			session_id INTEGER NOT NULL,
			word_index INTEGER NOT NULL,
			predicted TEXT NOT NULL,
			actual TEXT NOT NULL,
			loss REAL NOT NULL,
			PRIMARY KEY (session_id, word_index)
		);`,
		`CREATE TABLE IF NOT EXISTS positions (
			source TEXT PRIMARY KEY,
			chunk_index INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_results_session ON prediction_results(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its prediction results.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, results []model.PredictionResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, source, mode, target_wpm, chunks_read, words_read, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.Source,
		rec.Mode,
		rec.TargetWPM,
		rec.ChunksRead,
		rec.WordsRead,
		rec.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(results) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO prediction_results (session_id, word_index, predicted, actual, loss)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range results {
			if _, err := stmt.ExecContext(ctx, id, r.WordIndex, r.Predicted, r.Actual, r.Loss); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, target_wpm, words_read, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.TargetWPM, &agg.WordsRead, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// PredictionStatsForSessions aggregates prediction accuracy across sessions.
func (s *Store) PredictionStatsForSessions(ctx context.Context, sessionIDs []int64) (model.PredictionStats, error) {
	if len(sessionIDs) == 0 {
		return model.PredictionStats{}, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(CASE WHEN loss = 0 THEN 1 ELSE 0 END), 0), COALESCE(AVG(loss), 0)
		FROM prediction_results
		WHERE session_id IN (%s)`, strings.Join(placeholders, ","))

	var stats model.PredictionStats
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.TotalWords, &stats.ExactMatches, &stats.AverageLoss); err != nil {
		return model.PredictionStats{}, err
	}
	return stats, nil
}

// SavePosition records the last chunk index reached in a source.
func (s *Store) SavePosition(ctx context.Context, source string, chunkIndex int) error {
	if source == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO positions (source, chunk_index, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET chunk_index = excluded.chunk_index, updated_at = excluded.updated_at`,
		source, chunkIndex, time.Now().Format(time.RFC3339Nano))
	return err
}

// GetPosition returns the saved chunk index for a source, or 0 if none.
func (s *Store) GetPosition(ctx context.Context, source string) (int, error) {
	var idx int
	err := s.db.QueryRowContext(ctx,
		`SELECT chunk_index FROM positions WHERE source = ?`, source).Scan(&idx)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return idx, nil
}
