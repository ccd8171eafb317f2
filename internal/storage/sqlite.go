// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// DefaultLimit is the number of rows returned when a caller asks for none.
const DefaultLimit = 10

const timeLayout = "2006-01-02 15:04:05"

// ErrNoScores is returned by queries that need at least one stored game.
var ErrNoScores = errors.New("storage: no scores recorded")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db   *sql.DB
	keep int
}

// Option configures a Store.
type Option func(*Store)

// WithKeep limits the table to the best n games. Extra rows are pruned when
// the store opens and after every save. n <= 0 keeps everything.
func WithKeep(n int) Option {
	return func(s *Store) { s.keep = n }
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	path, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SQLite serialises anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	for _, opt := range opts {
		opt(store)
	}

	ctx := context.Background()
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	if _, err := store.Prune(ctx, store.keep); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_name ON scores(name, score DESC);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records a finished game and prunes the table to the configured size.
func (s *Store) Save(ctx context.Context, rec core.ScoreRecord) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (name, score, level, lines, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.Name, int64(rec.Score), int64(rec.Level), int64(rec.Lines), at.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	if _, err := s.Prune(ctx, s.keep); err != nil {
		return err
	}
	return nil
}

// TopN retrieves the best n games, highest score first. Ties go to the
// more recent game.
func (s *Store) TopN(ctx context.Context, n int) ([]core.ScoreRecord, error) {
	if n <= 0 {
		n = DefaultLimit
	}
	return s.query(ctx,
		`SELECT name, score, level, lines, created_at
		 FROM scores
		 ORDER BY score DESC, created_at DESC, id DESC
		 LIMIT ?`,
		n,
	)
}

// PersonalBest retrieves the best n games of one player.
func (s *Store) PersonalBest(ctx context.Context, name string, n int) ([]core.ScoreRecord, error) {
	if n <= 0 {
		n = DefaultLimit
	}
	return s.query(ctx,
		`SELECT name, score, level, lines, created_at
		 FROM scores
		 WHERE name = ?
		 ORDER BY score DESC, created_at DESC, id DESC
		 LIMIT ?`,
		name, n,
	)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]core.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []core.ScoreRecord
	for rows.Next() {
		var (
			rec                 core.ScoreRecord
			score, level, lines int64
			createdAt           any
		)
		if err := rows.Scan(&rec.Name, &score, &level, &lines, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Score = uint64(score)
		rec.Level = uint(level)
		rec.Lines = uint(lines)
		rec.At = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and text values, depending on how the
// driver decoded the DATETIME column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// HighScore returns the highest stored score, or ErrNoScores.
func (s *Store) HighScore(ctx context.Context) (uint64, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, ErrNoScores
	}
	return uint64(score.Int64), nil
}

// Prune deletes every game outside the best keep and returns how many rows
// were removed. keep <= 0 is a no-op.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, created_at DESC, id DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned rows: %w", err)
	}
	return n, nil
}

// Clear deletes all scores.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all stored games.
type Stats struct {
	Games      int
	HighScore  uint64
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats      Stats
		high       int64
		lastPlayed any
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(lines), 0)
		 FROM scores`,
	).Scan(&stats.Games, &high, &stats.AvgScore, &stats.TotalLines)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.HighScore = uint64(high)

	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM scores ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return &stats, nil
}
