// Package store handles SQLite persistence of per-character statistics.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/gallop/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session character data.
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
			finished_at TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_char_stats (
			session_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_char_stats_char ON session_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a finished test and its per-character counts.
func (s *Store) InsertSession(ctx context.Context, rec model.ResultRecord, chars []model.CharStats) (int64, error) {
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
		`INSERT INTO sessions (finished_at, duration_s, elapsed_ms, correct, incorrect)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.FinishedAt.Format(time.RFC3339Nano),
		rec.DurationSec,
		rec.ElapsedMs,
		rec.CorrectChars,
		rec.MistakeChars,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(chars) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_char_stats (session_id, char, correct, incorrect)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cs := range chars {
			if _, err = stmt.ExecContext(ctx, id, cs.Char, cs.Correct, cs.Incorrect); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns stored sessions ordered oldest first, optionally
// limited to the most recent N.
func (s *Store) ListSessions(ctx context.Context, last int) ([]model.SessionRow, error) {
	query := `SELECT id, finished_at, correct, incorrect, elapsed_ms
		FROM sessions
		ORDER BY finished_at ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRow
	for rows.Next() {
		var row model.SessionRow
		var finishedAt string
		if err := rows.Scan(&row.SessionID, &finishedAt, &row.Correct, &row.Incorrect, &row.ElapsedMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		row.FinishedAt = parsed
		sessions = append(sessions, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 && len(sessions) > last {
		sessions = sessions[len(sessions)-last:]
	}
	return sessions, nil
}

// CharAggregates sums character counts over the most recent sessions.
// A window of zero or less aggregates over all sessions.
func (s *Store) CharAggregates(ctx context.Context, window int) ([]model.CharAggregate, error) {
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY finished_at DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct) AS correct, SUM(cs.incorrect) AS incorrect
	FROM session_char_stats cs
	JOIN recent_sessions r ON r.id = cs.session_id
	GROUP BY cs.char`

	limit := window
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unlimited.
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
